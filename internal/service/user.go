// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/udukunda1/usersvc/internal/metrics"
	"github.com/udukunda1/usersvc/internal/model"
	"github.com/udukunda1/usersvc/internal/repository"
	"github.com/udukunda1/usersvc/internal/validation"
)

// Service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("a user with this email already exists")
)

// UserService handles user business logic.
type UserService struct {
	repo    *repository.Repository
	newID   IDGenerator
	now     func() time.Time
	metrics metrics.Recorder

	// createMu serializes the email check and the insert.
	createMu sync.Mutex
}

// Option customizes a UserService.
type Option func(*UserService)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *UserService) {
		s.now = now
	}
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, newID IDGenerator, recorder metrics.Recorder, opts ...Option) *UserService {
	if newID == nil {
		newID = NewUUID
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	s := &UserService{
		repo:    repo,
		newID:   newID,
		now:     time.Now,
		metrics: recorder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUserInput defines input for creating a user.
// Values are as decoded from JSON; nil means the field was absent or null.
type CreateUserInput struct {
	Name  any
	Email any
}

// CreateUser validates input and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	start := s.now()
	defer func() {
		s.metrics.ObserveCreateDuration(s.now().Sub(start))
	}()

	if input.Name == nil || input.Email == nil {
		s.metrics.IncUserRejected(metrics.RejectMissingFields)
		return nil, validation.ErrMissingFields
	}

	name, err := validation.ValidateName(input.Name)
	if err != nil {
		s.metrics.IncUserRejected(metrics.RejectInvalidName)
		return nil, err
	}

	email, err := validation.ValidateEmail(input.Email)
	if err != nil {
		s.metrics.IncUserRejected(metrics.RejectInvalidEmail)
		return nil, err
	}
	email = validation.NormalizeEmail(email)

	s.createMu.Lock()
	defer s.createMu.Unlock()

	_, err = s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.IncUserRejected(metrics.RejectDuplicateEmail)
		return nil, ErrEmailExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &model.User{
		ID:        s.newID(),
		Name:      name,
		Email:     email,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncUserRejected(metrics.RejectDuplicateEmail)
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncUserLookup(false)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	s.metrics.IncUserLookup(true)
	return user, nil
}

// ListUsers returns every stored user in insertion order.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Count returns the number of stored users.
func (s *UserService) Count() int {
	return s.repo.Count()
}

package repository

import (
	"context"
	"errors"

	"github.com/udukunda1/usersvc/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrIDExists     = errors.New("user id already exists")
)

// CreateUser inserts a new user. The email uniqueness check runs under the
// same lock as the insert.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return ErrIDExists
	}
	if r.findByEmailLocked(user.Email) != nil {
		return ErrEmailExists
	}

	stored := *user
	r.users[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	found := *user
	return &found, nil
}

// GetUserByEmail returns the first user, in insertion order, whose stored
// email equals email exactly. Callers pass the normalized form.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.findByEmailLocked(email)
	if user == nil {
		return nil, ErrUserNotFound
	}

	found := *user
	return &found, nil
}

// ListUsers returns all users in insertion order.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.order))
	for _, id := range r.order {
		user := *r.users[id]
		users = append(users, &user)
	}

	return users, nil
}

func (r *Repository) findByEmailLocked(email string) *model.User {
	for _, id := range r.order {
		if user := r.users[id]; user.Email == email {
			return user
		}
	}
	return nil
}

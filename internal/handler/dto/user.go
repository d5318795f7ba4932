// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/udukunda1/usersvc/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
// Fields stay untyped so that an absent field, a null, and a value of the
// wrong type can be told apart during validation.
type CreateUserRequest struct {
	Name  any `json:"name"`
	Email any `json:"email"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: model.FormatTimestamp(user.CreatedAt),
	}
}

// ToUserListResponse converts a slice of User models to a JSON array body.
func ToUserListResponse(users []*model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *ToUserResponse(user)
	}
	return responses
}

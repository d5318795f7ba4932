// Package repository provides the in-memory user store.
// Data lives for the lifetime of the process only.
package repository

import (
	"sync"

	"github.com/udukunda1/usersvc/internal/model"
)

// Repository holds user records keyed by ID, remembering insertion order.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*model.User
	order []string
}

// New creates an empty Repository.
func New() *Repository {
	return &Repository{
		users: make(map[string]*model.User),
		order: make([]string, 0),
	}
}

// Count returns the number of stored records.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

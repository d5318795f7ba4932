package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/udukunda1/usersvc/internal/config"
)

// IDGenerator returns a fresh unique identifier.
type IDGenerator func() string

// NewUUID generates a random UUIDv4.
func NewUUID() string {
	return uuid.NewString()
}

// NewULID generates a monotonic, lexically sortable ULID.
func NewULID() string {
	return ulid.Make().String()
}

// NewIDGenerator returns the generator for the configured ID format.
func NewIDGenerator(format string) (IDGenerator, error) {
	switch format {
	case config.IDFormatUUID, "":
		return NewUUID, nil
	case config.IDFormatULID:
		return NewULID, nil
	default:
		return nil, fmt.Errorf("unknown id format %q", format)
	}
}

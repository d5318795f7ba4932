// Package model defines domain entities for the application.
package model

import "time"

// TimestampLayout is the wire format for timestamps: ISO-8601 UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// User is a stored user record. Records are created once and never updated.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// FormatTimestamp renders t in TimestampLayout, converted to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

package security

import (
	"github.com/google/uuid"
)

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateUserID creates a new UUID for a user account
func GenerateUserID() string {
	return uuid.New().String()
}

// IsUUID reports whether s is a well-formed UUID
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}

package models

import (
	"github.com/google/uuid"
)

// ID represents a unique identifier
type ID string

// GenerateUUID creates a new UUID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset
func (id ID) IsZero() bool {
	return id == ""
}

package assets

import "github.com/google/uuid"

// ID is the stable 128-bit identifier assigned to an asset at import time.
// It serializes to TOML/manifest form as its canonical UUID string.
type ID = uuid.UUID

// NewID generates a fresh random ID.
func NewID() ID {
	return uuid.New()
}

// ParseID parses an ID from its string form.
func ParseID(s string) (ID, error) {
	return uuid.Parse(s)
}

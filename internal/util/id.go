// Package util provides utility functions for the greenhouse simulation.
package util

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator provides thread-safe UUIDv7 generation.
// UUIDv7 values sort by creation time, so trays seeded later get larger IDs.
type IDGenerator struct {
	mu sync.Mutex
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewID generates a new UUIDv7 identifier from this generator.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uuid.NewV7()
	if err != nil {
		// Entropy failure; fall back to a random identifier.
		id = uuid.New()
	}
	return id.String()
}

// ShortID returns the last eight characters of an ID for compact display.
// The leading blocks of a UUIDv7 are a timestamp and repeat across IDs
// generated within the same minute.
func ShortID(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[len(s)-8:]
}

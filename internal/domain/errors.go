package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when a load yields no sheets at all.
var ErrEmptyInput = errors.New("empty input: no sheets supplied")

// SchemaError reports a structurally required column that is absent from the merged table.
type SchemaError struct {
	Column    string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: required column %q not found (columns: %s)",
		e.Column, strings.Join(e.Available, ", "))
}

// ColumnCollisionError is returned by the normalizer when collisions are configured to be fatal.
type ColumnCollisionError struct {
	Collisions []Collision
}

func (e *ColumnCollisionError) Error() string {
	parts := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		parts = append(parts, fmt.Sprintf("%q and %q -> %s", c.Kept, c.Dropped, c.Canonical))
	}
	return "column collision: " + strings.Join(parts, "; ")
}

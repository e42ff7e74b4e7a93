package collision

import (
	"fmt"

	"github.com/arloliu/movekit/errs"
)

// Tracker tracks field names and their hash IDs while a schema is assembled.
// It rejects duplicate names and flags hash collisions between distinct names.
type Tracker struct {
	names        map[uint64]string // ID → name
	ordered      []string          // Names in insertion order
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[uint64]string),
		ordered: make([]string, 0),
	}
}

// TrackField records a field name with its hash ID.
//
// Returns ErrInvalidFieldName for an empty name and ErrDuplicateField when
// the same name is tracked twice. Two distinct names with the same ID are
// not an error; the collision flag is set instead and callers must resolve
// fields by name.
func (t *Tracker) TrackField(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidFieldName
	}

	if existing, ok := t.names[id]; ok {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateField, name)
		}
		t.hasCollision = true
	}

	t.names[id] = name
	t.ordered = append(t.ordered, name)

	return nil
}

// HasCollision returns true if two distinct names shared an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.ordered
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.ordered)
}

// Reset clears all tracked names and the collision flag.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}
	t.ordered = t.ordered[:0]
	t.hasCollision = false
}

// Package schema defines the fixed field layout shared by every row of a
// trajectory, together with typed values, rows and columns.
//
// A Schema is validated once at construction: field names are unique and
// non-empty, kinds are known, and categorical fields carry a dictionary.
// Schemas are immutable; Append returns an extended copy.
package schema

import (
	"fmt"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/collision"
	"github.com/arloliu/movekit/internal/hash"
)

// Schema is an ordered, validated list of fields.
type Schema struct {
	fields       []Field
	ids          []uint64
	byName       map[string]int
	hasCollision bool
}

// New validates fields and builds a schema.
//
// Returns:
//   - *Schema: the schema
//   - error: ErrInvalidFieldName, ErrDuplicateField or ErrFieldKindMismatch
func New(fields ...Field) (*Schema, error) {
	tracker := collision.NewTracker()
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		ids:    make([]uint64, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if err := s.add(tracker, f); err != nil {
			return nil, err
		}
	}
	s.hasCollision = tracker.HasCollision()

	return s, nil
}

// MustNew is like New but panics on error. Intended for tests and static schemas.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}

	return s
}

func (s *Schema) add(tracker *collision.Tracker, f Field) error {
	if !f.Kind.Valid() {
		return fmt.Errorf("%w: field %q has unknown kind %d", errs.ErrFieldKindMismatch, f.Name, f.Kind)
	}
	if f.Kind == format.KindCategorical && f.Dict == nil {
		return fmt.Errorf("%w: categorical field %q has no dictionary", errs.ErrFieldKindMismatch, f.Name)
	}
	if f.Kind == format.KindTimestamp && f.Unit == 0 {
		f.Unit = format.UnitSecond
	}

	id := hash.ID(f.Name)
	if err := tracker.TrackField(f.Name, id); err != nil {
		return err
	}

	s.byName[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
	s.ids = append(s.ids, id)

	return nil
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the field at index i. It panics if i is out of range.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)

	return out
}

// ID returns the xxHash64 ID of field i's name.
func (s *Schema) ID(i int) uint64 {
	return s.ids[i]
}

// HasCollision reports whether two field names hash to the same ID.
// Snapshot decoding resolves fields by name when it does.
func (s *Schema) HasCollision() bool {
	return s.hasCollision
}

// Index returns the index of the named field.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Check returns ErrFieldIndexOutOfRange unless 0 <= i < Len().
func (s *Schema) Check(i int) error {
	if i < 0 || i >= len(s.fields) {
		return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrFieldIndexOutOfRange, i, len(s.fields))
	}

	return nil
}

// Require returns the field at i after checking its index and kind.
func (s *Schema) Require(i int, kinds ...format.FieldKind) (Field, error) {
	if err := s.Check(i); err != nil {
		return Field{}, err
	}
	f := s.fields[i]
	if len(kinds) == 0 {
		return f, nil
	}
	for _, k := range kinds {
		if f.Kind == k {
			return f, nil
		}
	}

	return Field{}, fmt.Errorf("%w: field %q is %s", errs.ErrFieldKindMismatch, f.Name, f.Kind)
}

// Append returns a new schema with f added after the existing fields.
func (s *Schema) Append(f Field) (*Schema, error) {
	fields := make([]Field, 0, len(s.fields)+1)
	fields = append(fields, s.fields...)
	fields = append(fields, f)

	return New(fields...)
}

// Names returns the field names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}

	return names
}

// Equal reports whether both schemas have the same field names, kinds and units.
func (s *Schema) Equal(other *Schema) bool {
	if s == other {
		return true
	}
	if other == nil || len(s.fields) != len(other.fields) {
		return false
	}
	for i, f := range s.fields {
		o := other.fields[i]
		if f.Name != o.Name || f.Kind != o.Kind || f.Unit != o.Unit {
			return false
		}
	}

	return true
}

// CheckRow validates that row matches the schema's arity and field kinds.
func (s *Schema) CheckRow(row Row) error {
	if len(row) != len(s.fields) {
		return fmt.Errorf("%w: row has %d values, schema has %d fields", errs.ErrSchemaMismatch, len(row), len(s.fields))
	}
	for i, v := range row {
		if v.Kind() != s.fields[i].Kind {
			return fmt.Errorf("%w: field %q expects %s, got %s", errs.ErrSchemaMismatch, s.fields[i].Name, s.fields[i].Kind, v.Kind())
		}
	}

	return nil
}

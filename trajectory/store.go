// Package trajectory stores ordered sequences of fixed-schema rows.
//
// Two layouts implement the same Store contract:
//
//   - Tabular keeps a slice of rows (row-major), natural for insertion and
//     row-wise traversal.
//   - Columnar keeps one slice per field (column-major), natural for whole
//     column replacement and for column-wise algorithms.
//
// Callers pick a layout at construction time and may convert between them
// with ToColumnar and ToTabular. Every column of a store has the same
// length, and a rejected mutation never changes the store.
//
// Stores are not safe for concurrent mutation. Concurrent readers may share
// a store as long as no goroutine calls ReplaceColumn or Insert at the same time.
package trajectory

import (
	"fmt"
	"iter"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/schema"
)

// Store is the layout-independent trajectory contract.
type Store interface {
	// Schema returns the store's schema.
	Schema() *schema.Schema
	// Layout returns the physical layout.
	Layout() format.Layout
	// Len returns the row count in O(1).
	Len() int
	// Value returns the value of field in row. It panics if either index is out of range.
	Value(row, field int) schema.Value
	// Row returns row i. The returned row must not be modified.
	Row(i int) schema.Row
	// Column returns the whole column of field. Tabular stores materialize it;
	// columnar stores return their own column, which must not be modified.
	Column(field int) (schema.Column, error)
	// ReplaceColumn swaps in a new column of the same kind and length.
	ReplaceColumn(field int, col schema.Column) error
	// AppendColumn returns a new store of the same layout with one more field.
	// The receiver is unchanged and the new store takes ownership of col.
	AppendColumn(field schema.Field, col schema.Column) (Store, error)
	// Insert places rows immediately before pos after validating timestamp
	// order on tsField.
	Insert(pos int, rows []schema.Row, tsField int) error
	// All iterates rows first to last.
	All() iter.Seq2[int, schema.Row]
	// Backward iterates rows last to first.
	Backward() iter.Seq2[int, schema.Row]
	// Generation returns a counter bumped whenever field's values change.
	Generation(field int) uint64
}

// New builds a store of the given layout from columns.
func New(layout format.Layout, s *schema.Schema, cols []schema.Column) (Store, error) {
	switch layout {
	case format.LayoutTabular:
		return NewTabularFromColumns(s, cols)
	case format.LayoutColumnar:
		return NewColumnar(s, cols)
	default:
		return nil, fmt.Errorf("unknown layout %d", layout)
	}
}

// FromRows builds a store of the given layout from rows.
func FromRows(layout format.Layout, s *schema.Schema, rows []schema.Row) (Store, error) {
	switch layout {
	case format.LayoutTabular:
		return NewTabular(s, rows)
	case format.LayoutColumnar:
		return NewColumnarFromRows(s, rows)
	default:
		return nil, fmt.Errorf("unknown layout %d", layout)
	}
}

// Fields returns a cursor over one column of s.
func Fields(s Store, field int) (*FieldCursor, error) {
	if err := s.Schema().Check(field); err != nil {
		return nil, err
	}

	return &FieldCursor{store: s, field: field}, nil
}

// checkReplace validates a column replacement against s.
func checkReplace(s Store, field int, col schema.Column) error {
	f, err := s.Schema().Require(field)
	if err != nil {
		return err
	}
	if col == nil {
		return fmt.Errorf("%w: nil column for %q", errs.ErrLengthMismatch, f.Name)
	}
	if col.Kind() != f.Kind {
		return fmt.Errorf("%w: field %q is %s, column is %s", errs.ErrFieldKindMismatch, f.Name, f.Kind, col.Kind())
	}
	if col.Len() != s.Len() {
		return fmt.Errorf("%w: column has %d values, store has %d rows", errs.ErrLengthMismatch, col.Len(), s.Len())
	}

	return nil
}

// checkAppend validates an appended column and returns the extended schema.
func checkAppend(s Store, field schema.Field, col schema.Column) (*schema.Schema, error) {
	if col == nil || col.Len() != s.Len() {
		n := 0
		if col != nil {
			n = col.Len()
		}

		return nil, fmt.Errorf("%w: column has %d values, store has %d rows", errs.ErrLengthMismatch, n, s.Len())
	}
	if col.Kind() != field.Kind {
		return nil, fmt.Errorf("%w: field %q is %s, column is %s", errs.ErrFieldKindMismatch, field.Name, field.Kind, col.Kind())
	}
	ext, err := s.Schema().Append(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrSchemaMismatch, err)
	}

	return ext, nil
}

// checkInsert validates inserting rows before pos in s.
//
// Inserting at the start requires the last inserted timestamp to be at most
// the timestamp at pos. Inserting at the end requires the first inserted
// timestamp to be at least the last stored one. Inserting in the middle
// requires both bounds. An empty store accepts any rows.
func checkInsert(s Store, pos int, rows []schema.Row, tsField int) error {
	if pos < 0 || pos > s.Len() {
		return fmt.Errorf("%w: insert position %d not in [0, %d]", errs.ErrRowOutOfRange, pos, s.Len())
	}
	sch := s.Schema()
	ts, err := sch.Require(tsField, format.KindTimestamp, format.KindInt64, format.KindFloat64)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if err := sch.CheckRow(row); err != nil {
			return fmt.Errorf("inserted row %d: %w", i, err)
		}
	}
	if len(rows) == 0 || s.Len() == 0 {
		return nil
	}

	first := rows[0][tsField]
	last := rows[len(rows)-1][tsField]

	if pos > 0 {
		prev := s.Value(pos-1, tsField)
		if first.Compare(prev) < 0 {
			return fmt.Errorf("%w: %s %v precedes %v at row %d", errs.ErrOrderingViolation, ts.Name, first, prev, pos-1)
		}
	}
	if pos < s.Len() {
		next := s.Value(pos, tsField)
		if last.Compare(next) > 0 {
			return fmt.Errorf("%w: %s %v follows %v at row %d", errs.ErrOrderingViolation, ts.Name, last, next, pos)
		}
	}

	return nil
}

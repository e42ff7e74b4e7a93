package trajectory

import "github.com/arloliu/movekit/schema"

// Cursor identifies a row position in a specific store. Position Len() is the
// end cursor, one past the last row.
type Cursor struct {
	store Store
	pos   int
}

// Begin returns the cursor at the first row.
func Begin(s Store) Cursor { return Cursor{store: s} }

// End returns the cursor one past the last row.
func End(s Store) Cursor { return Cursor{store: s, pos: s.Len()} }

// At returns the cursor at row i.
func At(s Store, i int) Cursor { return Cursor{store: s, pos: i} }

func (c Cursor) Store() Store { return c.store }
func (c Cursor) Pos() int     { return c.pos }

// IsBegin reports whether c is at the first row.
func (c Cursor) IsBegin() bool { return c.pos == 0 }

// IsEnd reports whether c is one past the last row.
func (c Cursor) IsEnd() bool { return c.store == nil || c.pos >= c.store.Len() }

// Row returns the row under the cursor. It panics at the end cursor.
func (c Cursor) Row() schema.Row { return c.store.Row(c.pos) }

// Prev returns the cursor one row earlier.
func (c Cursor) Prev() Cursor { return Cursor{store: c.store, pos: c.pos - 1} }

// Equal reports whether both cursors point at the same row of the same store.
func (c Cursor) Equal(o Cursor) bool {
	return c.store == o.store && c.pos == o.pos
}

// FieldCursor walks one column of a store without materializing it.
//
//	fc, _ := trajectory.Fields(store, timeField)
//	for fc.Next() {
//		ts := fc.Value()
//	}
type FieldCursor struct {
	store Store
	field int
	next  int
	cur   schema.Value
}

// Next advances to the next value and reports whether one exists.
func (fc *FieldCursor) Next() bool {
	if fc.next >= fc.store.Len() {
		return false
	}
	fc.cur = fc.store.Value(fc.next, fc.field)
	fc.next++

	return true
}

// Value returns the value at the current position.
func (fc *FieldCursor) Value() schema.Value { return fc.cur }

// Pos returns the row index of the current value, -1 before the first Next.
func (fc *FieldCursor) Pos() int { return fc.next - 1 }

// Field returns the field index the cursor walks.
func (fc *FieldCursor) Field() int { return fc.field }

// Rewind moves the cursor back by n positions, clamped at the start.
// The following Next returns the value n rows before the one it would have returned.
func (fc *FieldCursor) Rewind(n int) {
	fc.next -= n
	if fc.next < 0 {
		fc.next = 0
	}
}

// Reset moves the cursor before the first row.
func (fc *FieldCursor) Reset() {
	fc.next = 0
	fc.cur = schema.Value{}
}

// Lockstep advances one FieldCursor per field together.
type Lockstep struct {
	cursors []*FieldCursor
}

// NewLockstep returns cursors over fields of s, or over every field when none are given.
// Field indices must be valid for s.
func NewLockstep(s Store, fields ...int) *Lockstep {
	if len(fields) == 0 {
		fields = make([]int, s.Schema().Len())
		for i := range fields {
			fields[i] = i
		}
	}
	ls := &Lockstep{cursors: make([]*FieldCursor, len(fields))}
	for i, f := range fields {
		ls.cursors[i] = &FieldCursor{store: s, field: f}
	}

	return ls
}

// Next advances every cursor and reports whether a row remains.
func (ls *Lockstep) Next() bool {
	for _, fc := range ls.cursors {
		if !fc.Next() {
			return false
		}
	}

	return len(ls.cursors) > 0
}

// Pos returns the current row index.
func (ls *Lockstep) Pos() int {
	if len(ls.cursors) == 0 {
		return -1
	}

	return ls.cursors[0].Pos()
}

// Row returns the current values, one per cursor.
func (ls *Lockstep) Row() schema.Row {
	row := make(schema.Row, len(ls.cursors))
	for i, fc := range ls.cursors {
		row[i] = fc.Value()
	}

	return row
}

// Cursor returns the i-th field cursor.
func (ls *Lockstep) Cursor(i int) *FieldCursor { return ls.cursors[i] }

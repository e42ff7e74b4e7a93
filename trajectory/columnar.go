package trajectory

import (
	"iter"

	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/schema"
)

// Columnar is a column-major store: one schema.Column per field.
type Columnar struct {
	schema *schema.Schema
	cols   []schema.Column
	n      int
	gens   []uint64
}

var _ Store = (*Columnar)(nil)

// NewColumnar builds a columnar store that takes ownership of cols.
//
// Returns ErrSchemaMismatch if the columns disagree in length or kind.
func NewColumnar(s *schema.Schema, cols []schema.Column) (*Columnar, error) {
	n, err := schema.CheckColumns(s, cols)
	if err != nil {
		return nil, err
	}
	owned := make([]schema.Column, len(cols))
	copy(owned, cols)

	return &Columnar{schema: s, cols: owned, n: n, gens: make([]uint64, s.Len())}, nil
}

// NewColumnarFromRows builds a columnar store by transposing rows.
func NewColumnarFromRows(s *schema.Schema, rows []schema.Row) (*Columnar, error) {
	cols, err := schema.RowsToColumns(s, rows)
	if err != nil {
		return nil, err
	}

	return &Columnar{schema: s, cols: cols, n: len(rows), gens: make([]uint64, s.Len())}, nil
}

func (c *Columnar) Schema() *schema.Schema { return c.schema }
func (c *Columnar) Layout() format.Layout  { return format.LayoutColumnar }
func (c *Columnar) Len() int               { return c.n }

func (c *Columnar) Value(row, field int) schema.Value {
	return c.cols[field].At(row)
}

// Row assembles row i from every column.
func (c *Columnar) Row(i int) schema.Row {
	row := make(schema.Row, len(c.cols))
	for f, col := range c.cols {
		row[f] = col.At(i)
	}

	return row
}

// Column returns the stored column without copying.
func (c *Columnar) Column(field int) (schema.Column, error) {
	if err := c.schema.Check(field); err != nil {
		return nil, err
	}

	return c.cols[field], nil
}

func (c *Columnar) ReplaceColumn(field int, col schema.Column) error {
	if err := checkReplace(c, field, col); err != nil {
		return err
	}
	c.cols[field] = col
	c.gens[field]++

	return nil
}

// AppendColumn shares the existing columns with the new store. Columns are
// replaced wholesale, never edited in place, so sharing is safe.
func (c *Columnar) AppendColumn(field schema.Field, col schema.Column) (Store, error) {
	ext, err := checkAppend(c, field, col)
	if err != nil {
		return nil, err
	}
	cols := make([]schema.Column, 0, len(c.cols)+1)
	cols = append(cols, c.cols...)
	cols = append(cols, col)

	return &Columnar{schema: ext, cols: cols, n: c.n, gens: make([]uint64, ext.Len())}, nil
}

// Insert splices rows into every column. New columns are built first and
// swapped in together, so the store is untouched on failure.
func (c *Columnar) Insert(pos int, rows []schema.Row, tsField int) error {
	if err := checkInsert(c, pos, rows, tsField); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	ins, err := schema.RowsToColumns(c.schema, rows)
	if err != nil {
		return err
	}
	next := make([]schema.Column, len(c.cols))
	for f, col := range c.cols {
		if next[f], err = schema.InsertColumn(col, pos, ins[f]); err != nil {
			return err
		}
	}
	c.cols = next
	c.n += len(rows)
	bumpAll(c.gens)

	return nil
}

// All advances one cursor per field in lock-step and yields the assembled rows.
func (c *Columnar) All() iter.Seq2[int, schema.Row] {
	return func(yield func(int, schema.Row) bool) {
		ls := NewLockstep(c)
		for ls.Next() {
			if !yield(ls.Pos(), ls.Row()) {
				return
			}
		}
	}
}

func (c *Columnar) Backward() iter.Seq2[int, schema.Row] {
	return func(yield func(int, schema.Row) bool) {
		for i := c.n - 1; i >= 0; i-- {
			if !yield(i, c.Row(i)) {
				return
			}
		}
	}
}

func (c *Columnar) Generation(field int) uint64 {
	return c.gens[field]
}

package trajectory

import (
	"iter"
	"slices"

	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/schema"
)

// Tabular is a row-major store: one schema.Row per observation.
type Tabular struct {
	schema *schema.Schema
	rows   []schema.Row
	gens   []uint64
}

var _ Store = (*Tabular)(nil)

// NewTabular builds a tabular store from rows, copying each row.
//
// Returns ErrSchemaMismatch if any row does not match the schema.
func NewTabular(s *schema.Schema, rows []schema.Row) (*Tabular, error) {
	owned := make([]schema.Row, len(rows))
	for i, row := range rows {
		if err := s.CheckRow(row); err != nil {
			return nil, err
		}
		owned[i] = row.Clone()
	}

	return &Tabular{schema: s, rows: owned, gens: make([]uint64, s.Len())}, nil
}

// NewTabularFromColumns builds a tabular store by transposing cols.
//
// Returns ErrSchemaMismatch if the columns disagree in length or kind.
func NewTabularFromColumns(s *schema.Schema, cols []schema.Column) (*Tabular, error) {
	if _, err := schema.CheckColumns(s, cols); err != nil {
		return nil, err
	}

	return &Tabular{schema: s, rows: schema.ColumnsToRows(cols), gens: make([]uint64, s.Len())}, nil
}

func (t *Tabular) Schema() *schema.Schema { return t.schema }
func (t *Tabular) Layout() format.Layout  { return format.LayoutTabular }
func (t *Tabular) Len() int               { return len(t.rows) }

func (t *Tabular) Value(row, field int) schema.Value {
	return t.rows[row][field]
}

func (t *Tabular) Row(i int) schema.Row {
	return t.rows[i]
}

// Column materializes field into a new column in O(n).
func (t *Tabular) Column(field int) (schema.Column, error) {
	f, err := t.schema.Require(field)
	if err != nil {
		return nil, err
	}
	col, err := schema.MakeColumn(f.Kind, len(t.rows))
	if err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		col, _ = schema.AppendValue(col, row[field])
	}

	return col, nil
}

func (t *Tabular) ReplaceColumn(field int, col schema.Column) error {
	if err := checkReplace(t, field, col); err != nil {
		return err
	}
	for i, row := range t.rows {
		row[field] = col.At(i)
	}
	t.gens[field]++

	return nil
}

func (t *Tabular) AppendColumn(field schema.Field, col schema.Column) (Store, error) {
	ext, err := checkAppend(t, field, col)
	if err != nil {
		return nil, err
	}
	rows := make([]schema.Row, len(t.rows))
	for i, row := range t.rows {
		r := make(schema.Row, len(row), len(row)+1)
		copy(r, row)
		rows[i] = append(r, col.At(i))
	}

	return &Tabular{schema: ext, rows: rows, gens: make([]uint64, ext.Len())}, nil
}

func (t *Tabular) Insert(pos int, rows []schema.Row, tsField int) error {
	if err := checkInsert(t, pos, rows, tsField); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	owned := make([]schema.Row, len(rows))
	for i, row := range rows {
		owned[i] = row.Clone()
	}
	t.rows = slices.Insert(t.rows, pos, owned...)
	bumpAll(t.gens)

	return nil
}

func (t *Tabular) All() iter.Seq2[int, schema.Row] {
	return func(yield func(int, schema.Row) bool) {
		for i, row := range t.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

func (t *Tabular) Backward() iter.Seq2[int, schema.Row] {
	return func(yield func(int, schema.Row) bool) {
		for i := len(t.rows) - 1; i >= 0; i-- {
			if !yield(i, t.rows[i]) {
				return
			}
		}
	}
}

func (t *Tabular) Generation(field int) uint64 {
	return t.gens[field]
}

func bumpAll(gens []uint64) {
	for i := range gens {
		gens[i]++
	}
}

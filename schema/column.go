package schema

import (
	"fmt"
	"slices"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
)

// Column is a typed sequence of one field's values.
type Column interface {
	Kind() format.FieldKind
	Len() int
	At(i int) Value
}

type (
	Float64s   []float64
	Int64s     []int64
	Timestamps []int64
	Strings    []string
	Codes      []category.Code
)

var (
	_ Column = Float64s(nil)
	_ Column = Int64s(nil)
	_ Column = Timestamps(nil)
	_ Column = Strings(nil)
	_ Column = Codes(nil)
)

func (c Float64s) Kind() format.FieldKind { return format.KindFloat64 }
func (c Float64s) Len() int               { return len(c) }
func (c Float64s) At(i int) Value         { return Float(c[i]) }

func (c Int64s) Kind() format.FieldKind { return format.KindInt64 }
func (c Int64s) Len() int               { return len(c) }
func (c Int64s) At(i int) Value         { return Int(c[i]) }

func (c Timestamps) Kind() format.FieldKind { return format.KindTimestamp }
func (c Timestamps) Len() int               { return len(c) }
func (c Timestamps) At(i int) Value         { return Timestamp(c[i]) }

func (c Strings) Kind() format.FieldKind { return format.KindString }
func (c Strings) Len() int               { return len(c) }
func (c Strings) At(i int) Value         { return String(c[i]) }

func (c Codes) Kind() format.FieldKind { return format.KindCategorical }
func (c Codes) Len() int               { return len(c) }
func (c Codes) At(i int) Value         { return Categorical(c[i]) }

// MakeColumn returns an empty column of kind with capacity n.
func MakeColumn(kind format.FieldKind, n int) (Column, error) {
	switch kind {
	case format.KindFloat64:
		return make(Float64s, 0, n), nil
	case format.KindInt64:
		return make(Int64s, 0, n), nil
	case format.KindTimestamp:
		return make(Timestamps, 0, n), nil
	case format.KindString:
		return make(Strings, 0, n), nil
	case format.KindCategorical:
		return make(Codes, 0, n), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", errs.ErrFieldKindMismatch, kind)
	}
}

// AppendValue appends v to col and returns the extended column.
// It fails with ErrFieldKindMismatch if v does not match the column kind.
func AppendValue(col Column, v Value) (Column, error) {
	if v.Kind() != col.Kind() {
		return nil, fmt.Errorf("%w: cannot append %s to %s column", errs.ErrFieldKindMismatch, v.Kind(), col.Kind())
	}
	switch c := col.(type) {
	case Float64s:
		return append(c, v.Float64()), nil
	case Int64s:
		return append(c, v.Int64()), nil
	case Timestamps:
		return append(c, v.Int64()), nil
	case Strings:
		return append(c, v.Str()), nil
	case Codes:
		return append(c, v.Code()), nil
	default:
		return nil, fmt.Errorf("%w: unsupported column type %T", errs.ErrFieldKindMismatch, col)
	}
}

// BuildColumn collects values of kind into a new column.
func BuildColumn(kind format.FieldKind, values []Value) (Column, error) {
	col, err := MakeColumn(kind, len(values))
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if col, err = AppendValue(col, v); err != nil {
			return nil, err
		}
	}

	return col, nil
}

// CloneColumn returns a deep copy of col.
func CloneColumn(col Column) Column {
	switch c := col.(type) {
	case Float64s:
		return slices.Clone(c)
	case Int64s:
		return slices.Clone(c)
	case Timestamps:
		return slices.Clone(c)
	case Strings:
		return slices.Clone(c)
	case Codes:
		return slices.Clone(c)
	default:
		out, _ := MakeColumn(col.Kind(), col.Len())
		for i := range col.Len() {
			out, _ = AppendValue(out, col.At(i))
		}

		return out
	}
}

// SliceColumn returns the values of col in [from, to) as a new column.
func SliceColumn(col Column, from, to int) Column {
	switch c := col.(type) {
	case Float64s:
		return slices.Clone(c[from:to])
	case Int64s:
		return slices.Clone(c[from:to])
	case Timestamps:
		return slices.Clone(c[from:to])
	case Strings:
		return slices.Clone(c[from:to])
	case Codes:
		return slices.Clone(c[from:to])
	default:
		out, _ := MakeColumn(col.Kind(), to-from)
		for i := from; i < to; i++ {
			out, _ = AppendValue(out, col.At(i))
		}

		return out
	}
}

// InsertColumn returns a copy of col with ins spliced in before pos.
// Both columns must have the same kind.
func InsertColumn(col Column, pos int, ins Column) (Column, error) {
	if col.Kind() != ins.Kind() {
		return nil, fmt.Errorf("%w: cannot insert %s into %s column", errs.ErrFieldKindMismatch, ins.Kind(), col.Kind())
	}
	out, err := MakeColumn(col.Kind(), col.Len()+ins.Len())
	if err != nil {
		return nil, err
	}
	for i := range pos {
		out, _ = AppendValue(out, col.At(i))
	}
	for i := range ins.Len() {
		out, _ = AppendValue(out, ins.At(i))
	}
	for i := pos; i < col.Len(); i++ {
		out, _ = AppendValue(out, col.At(i))
	}

	return out, nil
}

// Float64sOf returns col as []float64 when it is a Float64s column.
func Float64sOf(col Column) ([]float64, error) {
	c, ok := col.(Float64s)
	if !ok {
		return nil, fmt.Errorf("%w: expected Float64 column, got %s", errs.ErrFieldKindMismatch, col.Kind())
	}

	return c, nil
}

// Int64sOf returns the integer payload of an Int64s or Timestamps column.
func Int64sOf(col Column) ([]int64, error) {
	switch c := col.(type) {
	case Int64s:
		return c, nil
	case Timestamps:
		return c, nil
	default:
		return nil, fmt.Errorf("%w: expected integer column, got %s", errs.ErrFieldKindMismatch, col.Kind())
	}
}

// RowsToColumns transposes rows into one column per schema field.
func RowsToColumns(s *Schema, rows []Row) ([]Column, error) {
	cols := make([]Column, s.Len())
	for i := range cols {
		col, err := MakeColumn(s.Field(i).Kind, len(rows))
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	for r, row := range rows {
		if err := s.CheckRow(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		for i, v := range row {
			cols[i], _ = AppendValue(cols[i], v)
		}
	}

	return cols, nil
}

// ColumnsToRows transposes columns into rows. Columns must be validated by
// the caller to have equal lengths.
func ColumnsToRows(cols []Column) []Row {
	if len(cols) == 0 {
		return nil
	}
	n := cols[0].Len()
	rows := make([]Row, n)
	for r := range n {
		row := make(Row, len(cols))
		for i, c := range cols {
			row[i] = c.At(r)
		}
		rows[r] = row
	}

	return rows
}

// CheckColumns validates that cols match the schema kinds and share one length.
// It returns the common length.
func CheckColumns(s *Schema, cols []Column) (int, error) {
	if len(cols) != s.Len() {
		return 0, fmt.Errorf("%w: %d columns for %d fields", errs.ErrSchemaMismatch, len(cols), s.Len())
	}
	n := 0
	for i, c := range cols {
		if c == nil {
			return 0, fmt.Errorf("%w: column %q is nil", errs.ErrSchemaMismatch, s.Field(i).Name)
		}
		if c.Kind() != s.Field(i).Kind {
			return 0, fmt.Errorf("%w: column %q is %s, field is %s", errs.ErrSchemaMismatch, s.Field(i).Name, c.Kind(), s.Field(i).Kind)
		}
		if i == 0 {
			n = c.Len()
		} else if c.Len() != n {
			return 0, fmt.Errorf("%w: column %q has %d values, expected %d", errs.ErrSchemaMismatch, s.Field(i).Name, c.Len(), n)
		}
	}

	return n, nil
}

package trajectory

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/schema"
)

// Range iterates rows [from, to) of s in order.
func Range(s Store, from, to int) iter.Seq2[int, schema.Row] {
	return func(yield func(int, schema.Row) bool) {
		for i := max(from, 0); i < min(to, s.Len()); i++ {
			if !yield(i, s.Row(i)) {
				return
			}
		}
	}
}

// ReverseRange iterates rows [from, to) of s from to-1 down to from.
func ReverseRange(s Store, from, to int) iter.Seq2[int, schema.Row] {
	return func(yield func(int, schema.Row) bool) {
		for i := min(to, s.Len()) - 1; i >= max(from, 0); i-- {
			if !yield(i, s.Row(i)) {
				return
			}
		}
	}
}

// Collect builds a store of the given layout directly from a row sequence,
// such as Range, ReverseRange or a store's All. Rows are stored in the order
// the sequence yields them.
func Collect(layout format.Layout, s *schema.Schema, seq iter.Seq2[int, schema.Row]) (Store, error) {
	switch layout {
	case format.LayoutTabular:
		t := &Tabular{schema: s, gens: make([]uint64, s.Len())}
		for _, row := range seq {
			if err := s.CheckRow(row); err != nil {
				return nil, err
			}
			t.rows = append(t.rows, row.Clone())
		}

		return t, nil
	case format.LayoutColumnar:
		cols := make([]schema.Column, s.Len())
		for i := range cols {
			col, err := schema.MakeColumn(s.Field(i).Kind, 0)
			if err != nil {
				return nil, err
			}
			cols[i] = col
		}
		n := 0
		for _, row := range seq {
			if err := s.CheckRow(row); err != nil {
				return nil, err
			}
			for i, v := range row {
				cols[i], _ = schema.AppendValue(cols[i], v)
			}
			n++
		}

		return &Columnar{schema: s, cols: cols, n: n, gens: make([]uint64, s.Len())}, nil
	default:
		return nil, fmt.Errorf("unknown layout %d", layout)
	}
}

// ToColumnar returns s in columnar layout. A columnar store is returned as is.
func ToColumnar(s Store) *Columnar {
	if c, ok := s.(*Columnar); ok {
		return c
	}
	cols := make([]schema.Column, s.Schema().Len())
	for i := range cols {
		cols[i], _ = s.Column(i)
	}

	return &Columnar{schema: s.Schema(), cols: cols, n: s.Len(), gens: make([]uint64, len(cols))}
}

// ToTabular returns s in tabular layout. A tabular store is returned as is.
func ToTabular(s Store) *Tabular {
	if t, ok := s.(*Tabular); ok {
		return t
	}
	rows := make([]schema.Row, 0, s.Len())
	for _, row := range s.All() {
		rows = append(rows, row)
	}

	return &Tabular{schema: s.Schema(), rows: rows, gens: make([]uint64, s.Schema().Len())}
}

// Select returns a new store of the same layout holding rows at indices, in
// the order given.
func Select(s Store, indices []int) (Store, error) {
	for _, i := range indices {
		if i < 0 || i >= s.Len() {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrRowOutOfRange, i, s.Len())
		}
	}

	return Collect(s.Layout(), s.Schema(), func(yield func(int, schema.Row) bool) {
		for k, i := range indices {
			if !yield(k, s.Row(i)) {
				return
			}
		}
	})
}

// SortBy returns a copy of s ordered by field, keeping the relative order of equal values.
// Strings sort lexically and categorical values by code.
func SortBy(s Store, field int) (Store, error) {
	if err := s.Schema().Check(field); err != nil {
		return nil, err
	}
	order := make([]int, s.Len())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return s.Value(a, field).Compare(s.Value(b, field))
	})

	return Select(s, order)
}

// Clone returns a deep copy of s in the same layout.
func Clone(s Store) Store {
	out, _ := Collect(s.Layout(), s.Schema(), s.All())
	return out
}

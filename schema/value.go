package schema

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/format"
)

// Value is a single typed field value.
//
// The zero Value has no kind and matches no field.
type Value struct {
	kind format.FieldKind
	num  int64
	f    float64
	s    string
}

// Float returns a float64 value.
func Float(v float64) Value { return Value{kind: format.KindFloat64, f: v} }

// Int returns an int64 value.
func Int(v int64) Value { return Value{kind: format.KindInt64, num: v} }

// Timestamp returns a timestamp value in the ticks of its field's unit.
func Timestamp(ts int64) Value { return Value{kind: format.KindTimestamp, num: ts} }

// String returns a string value.
func String(v string) Value { return Value{kind: format.KindString, s: v} }

// Categorical returns a categorical value with the given code.
func Categorical(c category.Code) Value {
	return Value{kind: format.KindCategorical, num: int64(c)}
}

// Kind returns the value's field kind.
func (v Value) Kind() format.FieldKind { return v.kind }

// Float64 returns the float payload. Zero for other kinds.
func (v Value) Float64() float64 { return v.f }

// Int64 returns the integer payload of Int64 and Timestamp values.
func (v Value) Int64() int64 { return v.num }

// Str returns the string payload. Empty for other kinds.
func (v Value) Str() string { return v.s }

// Code returns the categorical code.
func (v Value) Code() category.Code { return category.Code(v.num) } //nolint:gosec

// AsFloat returns the numeric view of v: the float itself, the integer,
// the timestamp ticks or the categorical code. Strings return zero.
func (v Value) AsFloat() float64 {
	if v.kind == format.KindFloat64 {
		return v.f
	}

	return float64(v.num)
}

// Compare orders v against o. Categorical values compare by code.
// It panics if the kinds differ.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		panic(fmt.Sprintf("schema: compare %s with %s", v.kind, o.kind))
	}
	switch v.kind {
	case format.KindFloat64:
		return cmp.Compare(v.f, o.f)
	case format.KindString:
		return strings.Compare(v.s, o.s)
	default:
		return cmp.Compare(v.num, o.num)
	}
}

// Diff returns the signed distance v - o. Categorical values subtract codes.
// It panics for strings and for mismatched kinds.
func (v Value) Diff(o Value) float64 {
	if v.kind != o.kind {
		panic(fmt.Sprintf("schema: diff %s with %s", v.kind, o.kind))
	}
	switch v.kind {
	case format.KindFloat64:
		return v.f - o.f
	case format.KindString:
		panic("schema: diff is undefined for strings")
	default:
		return float64(v.num - o.num)
	}
}

// Equal reports whether v and o have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch v.kind {
	case format.KindFloat64:
		return fmt.Sprintf("%g", v.f)
	case format.KindString:
		return v.s
	case format.KindCategorical:
		return fmt.Sprintf("#%d", v.num)
	default:
		return fmt.Sprintf("%d", v.num)
	}
}

// Row is one observation: one Value per schema field.
type Row []Value

// Clone returns a copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)

	return out
}

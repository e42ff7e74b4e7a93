package schema

import (
	"strconv"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/format"
)

// Field describes one named, typed column of a schema.
type Field struct {
	Name string
	Kind format.FieldKind
	// Unit is the tick unit of a timestamp field.
	Unit format.TimeUnit
	// Dict is the shared dictionary of a categorical field.
	Dict *category.Dictionary
}

// Float64Field returns a float64 field.
func Float64Field(name string) Field {
	return Field{Name: name, Kind: format.KindFloat64}
}

// Int64Field returns an int64 field.
func Int64Field(name string) Field {
	return Field{Name: name, Kind: format.KindInt64}
}

// TimestampField returns a timestamp field counted in unit.
func TimestampField(name string, unit format.TimeUnit) Field {
	return Field{Name: name, Kind: format.KindTimestamp, Unit: unit}
}

// StringField returns a free-form string field.
func StringField(name string) Field {
	return Field{Name: name, Kind: format.KindString}
}

// CategoricalField returns a categorical field encoding through dict.
func CategoricalField(name string, dict *category.Dictionary) Field {
	return Field{Name: name, Kind: format.KindCategorical, Dict: dict}
}

// Format renders v as text. Categorical values render as their raw value
// when the field has a dictionary that knows the code.
func (f Field) Format(v Value) string {
	switch v.Kind() {
	case format.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case format.KindInt64, format.KindTimestamp:
		return strconv.FormatInt(v.Int64(), 10)
	case format.KindString:
		return v.Str()
	case format.KindCategorical:
		if f.Dict != nil {
			if raw, ok := f.Dict.Value(v.Code()); ok {
				return raw
			}
		}

		return strconv.FormatUint(uint64(v.Code()), 10)
	default:
		return ""
	}
}

// Seconds converts a timestamp value of this field to seconds.
// Non-timestamp values are returned as their numeric view.
func (f Field) Seconds(v Value) float64 {
	if v.Kind() == format.KindTimestamp {
		return f.Unit.Seconds(v.Int64())
	}

	return v.AsFloat()
}

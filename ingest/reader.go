// Package ingest reads delimited text into trajectory stores and writes
// stores back out.
//
// A Reader is given the fields to extract. With a header, each field reads the
// column of the same name (or the name set with WithColumns); without one,
// field i reads column i:
//
//	r, err := ingest.NewReader(f, []schema.Field{
//		schema.Float64Field("lat"),
//		schema.Float64Field("lon"),
//		schema.TimestampField("time", format.UnitSecond),
//		schema.CategoricalField("mode", nil),
//	}, ingest.WithRegistry(reg))
//	store, err := r.Read()
//
// Categorical fields without a dictionary are bound to the registry
// dictionary of the same name, so codes are shared across files.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/options"
	"github.com/arloliu/movekit/schema"
	"github.com/arloliu/movekit/trajectory"
)

// Reader parses delimited records into a store.
type Reader struct {
	cfg    *Config
	csv    *csv.Reader
	fields []schema.Field
}

// NewReader returns a reader extracting fields from r.
func NewReader(r io.Reader, fields []schema.Field, opts ...Option) (*Reader, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if !cfg.header && (len(cfg.columns) > 0 || cfg.passthrough) {
		return nil, errors.New("column mapping and passthrough need a header")
	}
	if cfg.registry == nil {
		cfg.registry = category.NewRegistry()
	}

	bound := make([]schema.Field, len(fields))
	for i, f := range fields {
		if f.Kind == format.KindCategorical && f.Dict == nil {
			f.Dict = cfg.registry.Dictionary(f.Name)
		}
		bound[i] = f
	}
	// Reject bad declarations before reading anything.
	if _, err := schema.New(bound...); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	cr.Comment = cfg.comment
	cr.ReuseRecord = true

	return &Reader{cfg: cfg, csv: cr, fields: bound}, nil
}

// Read consumes the input and returns the store.
// Malformed records fail with ErrInvalidRecord and name the line.
func (r *Reader) Read() (trajectory.Store, error) {
	fields := r.fields
	var index []int

	if r.cfg.header {
		header, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", errs.ErrInvalidRecord)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidRecord, err)
		}
		if fields, index, err = r.resolve(header); err != nil {
			return nil, err
		}
	} else {
		index = make([]int, len(fields))
		for i := range index {
			index[i] = i
		}
	}

	sch, err := schema.New(fields...)
	if err != nil {
		return nil, err
	}

	cols := make([]schema.Column, len(fields))
	for i, f := range fields {
		if cols[i], err = schema.MakeColumn(f.Kind, 0); err != nil {
			return nil, err
		}
	}

	for {
		rec, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidRecord, err)
		}
		line, _ := r.csv.FieldPos(0)

		for i, f := range fields {
			if index[i] >= len(rec) {
				return nil, fmt.Errorf("%w: line %d: no column %d for field %q", errs.ErrInvalidRecord, line, index[i]+1, f.Name)
			}
			if cols[i], err = r.appendCell(cols[i], f, rec[index[i]]); err != nil {
				return nil, fmt.Errorf("%w: line %d: field %q: %w", errs.ErrInvalidRecord, line, f.Name, err)
			}
		}
	}

	return trajectory.New(r.cfg.layout, sch, cols)
}

// resolve maps fields to header positions and appends passthrough fields.
func (r *Reader) resolve(header []string) ([]schema.Field, []int, error) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := position[name]; !dup {
			position[name] = i
		}
	}

	fields := make([]schema.Field, 0, len(header))
	index := make([]int, 0, len(header))
	claimed := make(map[int]bool, len(r.fields))
	for _, f := range r.fields {
		column := f.Name
		if mapped, ok := r.cfg.columns[f.Name]; ok {
			column = mapped
		}
		pos, ok := position[column]
		if !ok {
			return nil, nil, fmt.Errorf("%w: no column %q for field %q", errs.ErrSchemaMismatch, column, f.Name)
		}
		fields = append(fields, f)
		index = append(index, pos)
		claimed[pos] = true
	}

	if r.cfg.passthrough {
		for i, name := range header {
			if claimed[i] {
				continue
			}
			fields = append(fields, schema.StringField(strings.TrimSpace(name)))
			index = append(index, i)
		}
	}

	return fields, index, nil
}

func (r *Reader) appendCell(col schema.Column, f schema.Field, cell string) (schema.Column, error) {
	switch c := col.(type) {
	case schema.Float64s:
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, err
		}

		return append(c, v), nil
	case schema.Int64s:
		v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
		if err != nil {
			return nil, err
		}

		return append(c, v), nil
	case schema.Timestamps:
		v, err := r.parseTime(strings.TrimSpace(cell), f.Unit)
		if err != nil {
			return nil, err
		}

		return append(c, v), nil
	case schema.Strings:
		return append(c, strings.Clone(cell)), nil
	case schema.Codes:
		return append(c, f.Dict.Code(cell)), nil
	default:
		return nil, fmt.Errorf("%w: unsupported column %T", errs.ErrFieldKindMismatch, col)
	}
}

// parseTime reads a timestamp cell as ticks of unit.
func (r *Reader) parseTime(cell string, unit format.TimeUnit) (int64, error) {
	if r.cfg.timeLayout != "" {
		t, err := time.Parse(r.cfg.timeLayout, cell)
		if err != nil {
			return 0, err
		}

		return ticks(t, unit), nil
	}

	if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return v, nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= math.MaxInt64 {
		return 0, fmt.Errorf("timestamp %q out of range", cell)
	}

	return int64(math.Round(v)), nil
}

func ticks(t time.Time, unit format.TimeUnit) int64 {
	switch unit {
	case format.UnitMillisecond:
		return t.UnixMilli()
	case format.UnitMicrosecond:
		return t.UnixMicro()
	case format.UnitNanosecond:
		return t.UnixNano()
	default:
		return t.Unix()
	}
}

// ReadAll reads r with the given fields and options.
func ReadAll(r io.Reader, fields []schema.Field, opts ...Option) (trajectory.Store, error) {
	rd, err := NewReader(r, fields, opts...)
	if err != nil {
		return nil, err
	}

	return rd.Read()
}

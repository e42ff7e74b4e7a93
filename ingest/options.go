package ingest

import (
	"fmt"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/options"
)

// Config holds reader settings.
type Config struct {
	comma       rune
	comment     rune
	header      bool
	passthrough bool
	timeLayout  string
	columns     map[string]string
	registry    *category.Registry
	layout      format.Layout
}

// Option configures a Reader.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		comma:  ',',
		header: true,
		layout: format.LayoutColumnar,
	}
}

// WithComma sets the field delimiter.
func WithComma(r rune) Option {
	return options.New(func(c *Config) error {
		if r == 0 || r == '"' || r == '\r' || r == '\n' {
			return fmt.Errorf("invalid delimiter %q", r)
		}
		c.comma = r

		return nil
	})
}

// WithComment sets the comment character. Lines starting with it are skipped.
func WithComment(r rune) Option {
	return options.NoError(func(c *Config) {
		c.comment = r
	})
}

// WithHeader reports whether the first record names the columns. It defaults
// to true. Without a header, field i reads column i.
func WithHeader(header bool) Option {
	return options.NoError(func(c *Config) {
		c.header = header
	})
}

// WithTimeLayout parses timestamp cells with a Go time layout instead of as
// numeric epochs.
func WithTimeLayout(layout string) Option {
	return options.NoError(func(c *Config) {
		c.timeLayout = layout
	})
}

// WithColumns maps field names to header column names. Fields not in m read
// the column of the same name.
func WithColumns(m map[string]string) Option {
	return options.NoError(func(c *Config) {
		if c.columns == nil {
			c.columns = make(map[string]string, len(m))
		}
		for field, column := range m {
			c.columns[field] = column
		}
	})
}

// WithRegistry binds categorical fields that carry no dictionary to reg.
// By default a fresh registry is used.
func WithRegistry(reg *category.Registry) Option {
	return options.NoError(func(c *Config) {
		c.registry = reg
	})
}

// WithLayout selects the layout of the produced store. Columnar by default.
func WithLayout(layout format.Layout) Option {
	return options.New(func(c *Config) error {
		if layout != format.LayoutColumnar && layout != format.LayoutTabular {
			return fmt.Errorf("invalid layout %d", layout)
		}
		c.layout = layout

		return nil
	})
}

// WithPassthrough appends every header column not claimed by a field as a
// string field, so rows can be written back unchanged.
func WithPassthrough() Option {
	return options.NoError(func(c *Config) {
		c.passthrough = true
	})
}

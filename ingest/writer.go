package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/arloliu/movekit/trajectory"
)

// Write writes store as delimited text with a header row. Values are rendered
// with Field.Format, so categorical cells come out as their raw values.
func Write(w io.Writer, store trajectory.Store, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	sch := store.Schema()
	if err := cw.Write(sch.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, sch.Len())
	for i, row := range store.All() {
		for f, v := range row {
			record[f] = sch.Field(f).Format(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

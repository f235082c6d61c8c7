package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

// Writer renders a dataset to a delimited file.
type Writer struct {
	opts Options
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// Write creates (or truncates) the file at path and writes a header row of
// column names followed by one record per row. Cells render through the
// dataset defaults: Null as an empty field, Int base-10, Float in shortest
// form, String raw, Time as HH:MM:SS.
func (w *Writer) Write(ctx context.Context, path string, d *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	defer func() {
		// Ensure the file is closed even on early returns
		_ = f.Close()
	}()

	cw := csv.NewWriter(f)
	cw.Comma = w.opts.comma()

	if err := cw.Write(d.Names()); err != nil {
		return fmt.Errorf("write output %q: %w", path, err)
	}
	rec := make([]string, d.NumCols())
	for i := 0; i < d.NumRows(); i++ {
		for j := range d.Columns {
			rec[j] = d.Columns[j].Values[i].String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write output %q: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write output %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %q: %w", path, err)
	}
	return nil
}

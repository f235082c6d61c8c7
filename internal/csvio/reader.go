// Package csvio reads and writes the delimited files that bound the
// cleaning pipeline: a header row naming the columns, then one record per
// row. Cells are typed per column on load and rendered from the dataset's
// defaults on write.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

// Options control delimited-file handling.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// IndexColumn drops the leading column on load. Exports produced by
	// frame-oriented tooling carry a positional row index there; it is row
	// identity, not data. Ignored on write: output never grows one.
	IndexColumn bool
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return ','
	}
	return o.Comma
}

// Reader loads a delimited file into a dataset.
type Reader struct {
	opts Options
}

// NewReader creates a Reader with the given options.
func NewReader(opts Options) *Reader {
	return &Reader{opts: opts}
}

// Load reads the file at path into a dataset. Every record must have the
// header's field count. Column typing is per column: if every non-empty
// cell parses as a base-10 integer the column holds Int cells, else if
// every non-empty cell parses as a float it holds Float cells, otherwise
// String cells with the raw text preserved. Empty cells load as Null in
// every case.
func (r *Reader) Load(ctx context.Context, path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = r.opts.comma()

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read input %q: missing header row", path)
	}

	if r.opts.IndexColumn {
		if len(records[0]) < 2 {
			return nil, fmt.Errorf("read input %q: index column is the only column", path)
		}
		for i := range records {
			records[i] = records[i][1:]
		}
	}

	header := records[0]
	rows := records[1:]

	d := &dataset.Dataset{}
	for j, name := range header {
		raw := make([]string, len(rows))
		for i := range rows {
			raw[i] = rows[i][j]
		}
		if err := d.AppendColumn(inferColumn(name, raw)); err != nil {
			return nil, fmt.Errorf("read input %q: %w", path, err)
		}
	}
	return d, nil
}

// inferColumn types a column from its raw cells and builds its values.
func inferColumn(name string, raw []string) dataset.Column {
	isInt, isFloat := true, true
	nonEmpty := 0
	for _, s := range raw {
		if s == "" {
			continue
		}
		nonEmpty++
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isFloat = false
			}
		}
	}

	vals := make([]dataset.Value, len(raw))
	switch {
	case nonEmpty > 0 && isInt:
		for i, s := range raw {
			if s == "" {
				vals[i] = dataset.Null()
				continue
			}
			n, _ := strconv.ParseInt(s, 10, 64)
			vals[i] = dataset.Int(n)
		}
	case nonEmpty > 0 && isFloat:
		for i, s := range raw {
			if s == "" {
				vals[i] = dataset.Null()
				continue
			}
			x, _ := strconv.ParseFloat(s, 64)
			vals[i] = dataset.Float(x)
		}
	default:
		for i, s := range raw {
			if s == "" {
				vals[i] = dataset.Null()
				continue
			}
			vals[i] = dataset.String(s)
		}
	}
	return dataset.Column{Name: name, Values: vals}
}

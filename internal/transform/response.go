package transform

import (
	"fmt"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

// Normalized response indicator cells. No other states are reachable.
const (
	ResponseSuccess int64 = 1  // raw code numerically zero
	ResponseFailure int64 = 0  // raw code present and non-zero
	ResponseUnknown int64 = -1 // raw code missing
)

// NormalizeResponseCodes maps the named raw response-code column to the
// tri-state indicator, returned as a new Int-typed column under the same
// name. The zero-equivalence set is computed from the column's own distinct
// non-null values, so mixed numeric and text renderings of zero all count
// as success. Null status always wins: a missing cell is unknown no matter
// what the zero set contains. The input dataset is not modified.
func NormalizeResponseCodes(d *dataset.Dataset, column string) (dataset.Column, error) {
	if d == nil {
		return dataset.Column{}, fmt.Errorf("normalize response codes: nil dataset")
	}
	col, ok := d.Column(column)
	if !ok {
		return dataset.Column{}, fmt.Errorf("normalize response codes: no column %q", column)
	}

	zeros := make(map[dataset.Value]bool)
	for _, z := range ZeroValues(col.DistinctNonNull()) {
		zeros[z] = true
	}

	out := make([]dataset.Value, col.Len())
	for i, v := range col.Values {
		switch {
		case v.IsNull():
			out[i] = dataset.Int(ResponseUnknown)
		case zeros[v]:
			out[i] = dataset.Int(ResponseSuccess)
		default:
			out[i] = dataset.Int(ResponseFailure)
		}
	}
	return dataset.Column{Name: column, Values: out}, nil
}

package transform

import (
	"fmt"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

// Reshape projects the dataset into the delivery column order: the first
// column stays anchored, the last two move up to positions 2 and 3, and the
// middle block follows unchanged. Renames then apply wherever a name matches
// the table; names the table does not cover are left untouched, and table
// keys that match no column are ignored. Row content and row order are
// unaffected; the returned dataset shares cell storage with the input.
//
// The step applies once. Running it again on its own output reshuffles the
// columns a second time, because "last two" means the last two of whatever
// schema it is handed.
func Reshape(d *dataset.Dataset, renames map[string]string) (*dataset.Dataset, error) {
	if d == nil {
		return nil, fmt.Errorf("reshape: nil dataset")
	}
	n := d.NumCols()
	if n < 3 {
		return nil, fmt.Errorf("reshape: need at least 3 columns, have %d", n)
	}

	order := make([]int, 0, n)
	order = append(order, 0, n-2, n-1)
	for i := 1; i <= n-3; i++ {
		order = append(order, i)
	}

	out := &dataset.Dataset{}
	for _, i := range order {
		c := d.Columns[i]
		if name, ok := renames[c.Name]; ok {
			c.Name = name
		}
		if err := out.AppendColumn(c); err != nil {
			return nil, fmt.Errorf("reshape: %w", err)
		}
	}
	return out, nil
}

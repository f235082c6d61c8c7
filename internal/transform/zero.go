package transform

import (
	"strconv"
	"strings"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

// ZeroValues returns, in input order, the values that represent the number
// zero: an Int or Float cell equal to 0, or a String cell whose permissive
// numeric parse yields 0. Unparseable text and cells of any other kind are
// simply not zero-equivalent, never an error. Nulls are skipped; callers
// normally pass distinct non-null values.
func ZeroValues(values []dataset.Value) []dataset.Value {
	var zeros []dataset.Value
	for _, v := range values {
		switch v.Kind() {
		case dataset.KindInt:
			if n, _ := v.Int(); n == 0 {
				zeros = append(zeros, v)
			}
		case dataset.KindFloat:
			if f, _ := v.Float(); f == 0 {
				zeros = append(zeros, v)
			}
		case dataset.KindString:
			s, _ := v.Str()
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && f == 0 {
				zeros = append(zeros, v)
			}
		}
	}
	return zeros
}

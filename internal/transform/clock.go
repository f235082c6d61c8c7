// Package transform holds the per-column normalization routines of the
// cleaning pipeline: the encoded-clock validator and decomposer, the
// zero-equivalence detector, the response-code normalizer and the column
// reshaper. Every routine is pure with respect to its input dataset and
// reports failures as error values rather than aborting the batch.
package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

// clockDigits is the width of the HHMMSSCC layout: two decimal digits each
// for hour, minute, second and hundredths.
const clockDigits = 8

// renderClockDigits renders a cell as the digit string the HHMMSSCC layout
// is sliced from. Floats are truncated toward zero: frame-oriented exports
// store integer codes as floats once a column has gaps. Strings pass through
// raw so that per-field parsing decides their fate.
func renderClockDigits(v dataset.Value) (string, error) {
	switch v.Kind() {
	case dataset.KindInt:
		n, _ := v.Int()
		return strconv.FormatInt(n, 10), nil
	case dataset.KindFloat:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
			return "", fmt.Errorf("cannot interpret %v as an integer time code", v)
		}
		return strconv.FormatInt(int64(f), 10), nil
	case dataset.KindString:
		s, _ := v.Str()
		return s, nil
	default:
		return "", fmt.Errorf("cannot interpret %s value as a time code", v.Kind())
	}
}

func padClock(s string) string {
	if len(s) >= clockDigits {
		return s
	}
	return strings.Repeat("0", clockDigits-len(s)) + s
}

// clockFields pads the digit string and parses the four 2-character fields.
// Digits beyond the first eight are ignored, matching the slice-based layout.
func clockFields(digits string) ([4]int, error) {
	var fields [4]int
	s := padClock(digits)
	for i := range fields {
		n, err := strconv.Atoi(s[2*i : 2*i+2])
		if err != nil {
			return fields, fmt.Errorf("time code %q: field %q is not numeric", s, s[2*i:2*i+2])
		}
		fields[i] = n
	}
	return fields, nil
}

// HasClockLayout reports whether the named column's values are consistent
// with the HHMMSSCC digit layout. Values whose rendering or field parsing
// fails are left out of the range check instead of failing the verdict; the
// verdict is false when no value survives. The check bounds the observed
// range per field, so a column of one repeated valid code passes.
//
// The dataset is never mutated. A nil dataset or a missing column is a
// schema error, reported through the error return alongside a false verdict.
func HasClockLayout(d *dataset.Dataset, column string) (bool, error) {
	if d == nil {
		return false, fmt.Errorf("clock layout: nil dataset")
	}
	col, ok := d.Column(column)
	if !ok {
		return false, fmt.Errorf("clock layout: no column %q", column)
	}

	var lo, hi [4]int
	n := 0
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		digits, err := renderClockDigits(v)
		if err != nil {
			continue
		}
		fields, err := clockFields(digits)
		if err != nil {
			continue
		}
		if n == 0 {
			lo, hi = fields, fields
		} else {
			for i, f := range fields {
				if f < lo[i] {
					lo[i] = f
				}
				if f > hi[i] {
					hi[i] = f
				}
			}
		}
		n++
	}
	if n == 0 {
		return false, nil
	}

	limits := [4]int{23, 59, 59, 99}
	for i, limit := range limits {
		if lo[i] < 0 || hi[i] > limit {
			return false, nil
		}
	}
	return true, nil
}

// ParseClock converts one encoded time cell into a clock value. A null cell
// yields (nil, nil): missing stays missing, never an error. An unparseable
// or out-of-range cell yields nil and the diagnostic; the caller decides
// whether that is a warning or a stop. The hundredths field is parsed and
// then discarded, so the result carries second precision.
func ParseClock(v dataset.Value) (*civil.Time, error) {
	if v.IsNull() {
		return nil, nil
	}
	digits, err := renderClockDigits(v)
	if err != nil {
		return nil, fmt.Errorf("parse clock: %w", err)
	}
	fields, err := clockFields(digits)
	if err != nil {
		return nil, fmt.Errorf("parse clock: %w", err)
	}
	t := civil.Time{Hour: fields[0], Minute: fields[1], Second: fields[2]}
	if !t.IsValid() {
		return nil, fmt.Errorf("parse clock: %v out of range", t)
	}
	return &t, nil
}

// ParseHour extracts just the hour field, with the same null and failure
// handling as ParseClock but independent of the minute and second digits: a
// code with a plausible hour and a mangled tail still yields its hour.
func ParseHour(v dataset.Value) (*int, error) {
	if v.IsNull() {
		return nil, nil
	}
	digits, err := renderClockDigits(v)
	if err != nil {
		return nil, fmt.Errorf("parse hour: %w", err)
	}
	s := padClock(digits)
	hh, err := strconv.Atoi(s[:2])
	if err != nil {
		return nil, fmt.Errorf("parse hour: time code %q: field %q is not numeric", s, s[:2])
	}
	if hh < 0 || hh > 23 {
		return nil, fmt.Errorf("parse hour: hour %d out of range", hh)
	}
	return &hh, nil
}

package dataset

import (
	"strconv"

	"cloud.google.com/go/civil"
)

// Kind identifies the scalar type a Value carries.
type Kind int

const (
	// KindNull marks a missing cell.
	KindNull Kind = iota
	// KindInt marks a signed integer cell.
	KindInt
	// KindFloat marks a floating point cell.
	KindFloat
	// KindString marks a textual cell.
	KindString
	// KindTime marks a wall-clock time cell.
	KindTime
)

// String implements fmt.Stringer for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a single nullable cell. Every cell in a Dataset is one of the
// kinds above; the zero Value is null. Values are comparable, so they can be
// used directly as map keys when building distinct sets.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	t    civil.Time
}

// Null returns the missing-value cell.
func Null() Value {
	return Value{}
}

// Int returns an integer cell.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a floating point cell.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// String returns a textual cell.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Time returns a wall-clock time cell.
func Time(t civil.Time) Value {
	return Value{kind: KindTime, t: t}
}

// Kind returns the scalar type of the cell.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Int returns the integer payload. ok is false for any other kind.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the floating point payload. ok is false for any other kind.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Str returns the textual payload. ok is false for any other kind.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Time returns the wall-clock payload. ok is false for any other kind.
func (v Value) Time() (civil.Time, bool) {
	return v.t, v.kind == KindTime
}

// String renders the cell in its default text form: empty for null, base-10
// for integers, the shortest round-trip form for floats, the raw text for
// strings and HH:MM:SS for times. This is the rendering written to delimited
// output.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindTime:
		return v.t.String()
	default:
		return ""
	}
}

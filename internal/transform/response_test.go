package transform

import (
	"reflect"
	"testing"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

func responseDataset(vals ...dataset.Value) *dataset.Dataset {
	d, _ := dataset.New(dataset.Column{Name: "responsecode", Values: vals})
	return d
}

func TestNormalizeResponseCodes(t *testing.T) {
	tests := []struct {
		name string
		in   []dataset.Value
		want []dataset.Value
	}{
		{
			name: "zero is success, nonzero failure, null unknown",
			in:   []dataset.Value{dataset.Int(0), dataset.Int(7), dataset.Null(), dataset.Int(0)},
			want: []dataset.Value{dataset.Int(1), dataset.Int(0), dataset.Int(-1), dataset.Int(1)},
		},
		{
			name: "mixed zero renderings all succeed",
			in:   []dataset.Value{dataset.String("0.00"), dataset.Float(0), dataset.String("ERR"), dataset.Null()},
			want: []dataset.Value{dataset.Int(1), dataset.Int(1), dataset.Int(0), dataset.Int(-1)},
		},
		{
			name: "all null",
			in:   []dataset.Value{dataset.Null(), dataset.Null()},
			want: []dataset.Value{dataset.Int(-1), dataset.Int(-1)},
		},
		{
			name: "no zero equivalents",
			in:   []dataset.Value{dataset.Int(13), dataset.String("timeout")},
			want: []dataset.Value{dataset.Int(0), dataset.Int(0)},
		},
		{
			name: "empty column",
			in:   nil,
			want: []dataset.Value{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeResponseCodes(responseDataset(tt.in...), "responsecode")
			if err != nil {
				t.Fatalf("NormalizeResponseCodes() error = %v", err)
			}
			if got.Name != "responsecode" {
				t.Errorf("column name = %q, want responsecode", got.Name)
			}
			if !reflect.DeepEqual(got.Values, tt.want) {
				t.Errorf("values = %v, want %v", got.Values, tt.want)
			}
			for i, v := range got.Values {
				if v.Kind() != dataset.KindInt {
					t.Errorf("value %d kind = %v, want int", i, v.Kind())
				}
			}
		})
	}
}

func TestNormalizeResponseCodesSchemaErrors(t *testing.T) {
	if _, err := NormalizeResponseCodes(nil, "responsecode"); err == nil {
		t.Error("NormalizeResponseCodes(nil) error = nil, want error")
	}
	d := responseDataset(dataset.Int(0))
	if _, err := NormalizeResponseCodes(d, "missing"); err == nil {
		t.Error("NormalizeResponseCodes(missing column) error = nil, want error")
	}
}

func TestNormalizeResponseCodesLeavesInputAlone(t *testing.T) {
	d := responseDataset(dataset.Int(0), dataset.Int(7))
	if _, err := NormalizeResponseCodes(d, "responsecode"); err != nil {
		t.Fatalf("NormalizeResponseCodes() error = %v", err)
	}
	c, _ := d.Column("responsecode")
	if got, _ := c.Values[1].Int(); got != 7 {
		t.Errorf("input column mutated: values[1] = %d, want 7", got)
	}
}

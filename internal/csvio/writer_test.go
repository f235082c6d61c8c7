package csvio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

func TestWriteRendering(t *testing.T) {
	d, err := dataset.New(
		dataset.Column{Name: "id", Values: []dataset.Value{dataset.Int(1), dataset.Int(-2)}},
		dataset.Column{Name: "amount", Values: []dataset.Value{dataset.Float(1.5), dataset.Null()}},
		dataset.Column{Name: "label", Values: []dataset.Value{dataset.String("x"), dataset.String("y")}},
		dataset.Column{Name: "clock", Values: []dataset.Value{
			dataset.Time(civil.Time{Hour: 3, Minute: 7, Second: 54}),
			dataset.Null(),
		}},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := NewWriter(Options{}).Write(context.Background(), path, d); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "id,amount,label,clock\n1,1.5,x,03:07:54\n-2,,y,\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", string(got), want)
	}
}

func TestWriteQuoting(t *testing.T) {
	d, _ := dataset.New(
		dataset.Column{Name: "note", Values: []dataset.Value{dataset.String("a,b")}},
	)

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := NewWriter(Options{}).Write(context.Background(), path, d); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	want := "note\n\"a,b\"\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", string(got), want)
	}
}

func TestWriteCreateError(t *testing.T) {
	d, _ := dataset.New(dataset.Column{Name: "a", Values: []dataset.Value{dataset.Int(1)}})

	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.csv")
	if err := NewWriter(Options{}).Write(context.Background(), path, d); err == nil {
		t.Error("Write() error = nil, want error")
	}
}

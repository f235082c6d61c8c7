package transform

import (
	"reflect"
	"testing"

	"github.com/dvloznov/trx-etl/internal/dataset"
)

func fiveColumns() *dataset.Dataset {
	d, _ := dataset.New(
		dataset.Column{Name: "A", Values: []dataset.Value{dataset.Int(1), dataset.Int(2)}},
		dataset.Column{Name: "B", Values: []dataset.Value{dataset.Int(10), dataset.Int(20)}},
		dataset.Column{Name: "C", Values: []dataset.Value{dataset.Int(100), dataset.Int(200)}},
		dataset.Column{Name: "D", Values: []dataset.Value{dataset.String("d1"), dataset.String("d2")}},
		dataset.Column{Name: "E", Values: []dataset.Value{dataset.String("e1"), dataset.String("e2")}},
	)
	return d
}

func TestReshapeOrder(t *testing.T) {
	got, err := Reshape(fiveColumns(), nil)
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}
	if names := got.Names(); !reflect.DeepEqual(names, []string{"A", "D", "E", "B", "C"}) {
		t.Fatalf("Names() = %v, want [A D E B C]", names)
	}
	// Row content and row order ride along with their columns.
	c, _ := got.Column("D")
	if v, _ := c.Values[1].Str(); v != "d2" {
		t.Errorf("D[1] = %q, want \"d2\"", v)
	}
	if got.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", got.NumRows())
	}
}

func TestReshapeRenames(t *testing.T) {
	got, err := Reshape(fiveColumns(), map[string]string{
		"D": "hour_trx",
		"B": "resp",
		"Z": "ignored",
	})
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}
	want := []string{"A", "hour_trx", "E", "resp", "C"}
	if names := got.Names(); !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

func TestReshapeThreeColumns(t *testing.T) {
	d, _ := dataset.New(
		dataset.Column{Name: "A", Values: []dataset.Value{dataset.Int(1)}},
		dataset.Column{Name: "B", Values: []dataset.Value{dataset.Int(2)}},
		dataset.Column{Name: "C", Values: []dataset.Value{dataset.Int(3)}},
	)
	got, err := Reshape(d, nil)
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}
	// First anchored plus the last two covers all three.
	if names := got.Names(); !reflect.DeepEqual(names, []string{"A", "B", "C"}) {
		t.Errorf("Names() = %v, want [A B C]", names)
	}
}

func TestReshapeErrors(t *testing.T) {
	if _, err := Reshape(nil, nil); err == nil {
		t.Error("Reshape(nil) error = nil, want error")
	}

	two, _ := dataset.New(
		dataset.Column{Name: "A", Values: []dataset.Value{dataset.Int(1)}},
		dataset.Column{Name: "B", Values: []dataset.Value{dataset.Int(2)}},
	)
	if _, err := Reshape(two, nil); err == nil {
		t.Error("Reshape(2 columns) error = nil, want error")
	}

	if _, err := Reshape(fiveColumns(), map[string]string{"D": "A"}); err == nil {
		t.Error("Reshape(colliding rename) error = nil, want error")
	}
}

func TestReshapeLeavesInputAlone(t *testing.T) {
	d := fiveColumns()
	if _, err := Reshape(d, map[string]string{"B": "renamed"}); err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}
	if names := d.Names(); !reflect.DeepEqual(names, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("input Names() = %v, want original order", names)
	}
}

func TestReshapeAppliesOnce(t *testing.T) {
	// Not idempotent: "last two" means the last two of whatever schema the
	// step is handed, so a second application reshuffles again. The driver
	// must run this exactly once.
	once, err := Reshape(fiveColumns(), nil)
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}
	twice, err := Reshape(once, nil)
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}
	if reflect.DeepEqual(once.Names(), twice.Names()) {
		t.Errorf("second application was a no-op: %v", twice.Names())
	}
}

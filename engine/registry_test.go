package engine

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

type stubFunction struct{ name string }

func (f *stubFunction) Name() string         { return f.name }
func (f *stubFunction) Signature() Signature { return Signature{} }
func (f *stubFunction) ReturnType(args []arrow.DataType) (arrow.DataType, error) {
	return arrow.PrimitiveTypes.Float32, nil
}
func (f *stubFunction) Invoke(args []arrow.Array) (arrow.Array, error) { return nil, nil }

type stubTable struct{}

func (t *stubTable) Schema() *arrow.Schema    { return arrow.NewSchema(nil, nil) }
func (t *stubTable) Constraints() Constraints { return nil }
func (t *stubTable) Scan(ctx context.Context, projection []int, filters []Expr, limit int) (ExecutionPlan, error) {
	return nil, nil
}
func (t *stubTable) SupportsFiltersPushdown(filters []Expr) []FilterPushdown { return nil }

func TestRegistry_Functions(t *testing.T) {
	r := NewRegistry()
	fn := &stubFunction{name: "array_distance"}
	if err := r.RegisterFunction(fn); err != nil {
		t.Fatalf("RegisterFunction failed: %v", err)
	}
	if err := r.RegisterFunction(&stubFunction{name: "array_distance"}); err == nil {
		t.Fatalf("duplicate RegisterFunction succeeded, want error")
	}
	got, ok := r.Function("array_distance")
	if !ok || got != ScalarFunction(fn) {
		t.Fatalf("Function(array_distance) = %v, %v; want registered instance", got, ok)
	}
	if _, ok := r.Function("missing"); ok {
		t.Errorf("Function(missing) reported found")
	}
}

func TestRegistry_Tables(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterTable("objects", &stubTable{}); err != nil {
		t.Fatalf("RegisterTable failed: %v", err)
	}
	if err := r.RegisterTable("objects", &stubTable{}); err == nil {
		t.Fatalf("duplicate RegisterTable succeeded, want error")
	}
	if err := r.RegisterTable("", &stubTable{}); err == nil {
		t.Fatalf("RegisterTable with empty name succeeded, want error")
	}
	if _, ok := r.Table("objects"); !ok {
		t.Fatalf("Table(objects) not found after registration")
	}
}

func TestRegistry_DeterministicListing(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"b_fn", "a_fn", "c_fn"} {
		if err := r.RegisterFunction(&stubFunction{name: name}); err != nil {
			t.Fatalf("RegisterFunction(%s) failed: %v", name, err)
		}
	}
	got := r.Functions()
	want := []string{"a_fn", "b_fn", "c_fn"}
	if len(got) != len(want) {
		t.Fatalf("Functions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Functions() = %v, want %v", got, want)
		}
	}
}

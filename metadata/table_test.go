package metadata

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/edmondop/spiceai/engine"
	"github.com/edmondop/spiceai/objectstore"
)

func TestNewObjectMetadataTable_InvalidPattern(t *testing.T) {
	_, err := NewObjectMetadataTable(objectstore.NewMemoryStore(), "", "[unclosed")
	if err == nil {
		t.Fatalf("construction with invalid pattern succeeded, want error")
	}
}

func TestNewObjectMetadataTable_NilStore(t *testing.T) {
	if _, err := NewObjectMetadataTable(nil, "", ""); err == nil {
		t.Fatalf("construction with nil store succeeded, want error")
	}
}

func TestObjectMetadataTable_Schema(t *testing.T) {
	table, err := NewObjectMetadataTable(objectstore.NewMemoryStore(), "", "")
	if err != nil {
		t.Fatalf("NewObjectMetadataTable failed: %v", err)
	}
	schema := table.Schema()

	want := []struct {
		name     string
		typ      arrow.DataType
		nullable bool
	}{
		{"location", arrow.BinaryTypes.String, false},
		{"last_modified", &arrow.TimestampType{Unit: arrow.Millisecond}, false},
		{"size", arrow.PrimitiveTypes.Uint64, false},
		{"e_tag", arrow.BinaryTypes.String, true},
		{"version", arrow.BinaryTypes.String, true},
	}
	if schema.NumFields() != len(want) {
		t.Fatalf("schema has %d fields, want %d", schema.NumFields(), len(want))
	}
	for i, w := range want {
		field := schema.Field(i)
		if field.Name != w.name {
			t.Errorf("field %d name = %s, want %s", i, field.Name, w.name)
		}
		if !arrow.TypeEqual(field.Type, w.typ) {
			t.Errorf("field %s type = %s, want %s", w.name, field.Type, w.typ)
		}
		if field.Nullable != w.nullable {
			t.Errorf("field %s nullable = %v, want %v", w.name, field.Nullable, w.nullable)
		}
	}
}

func TestObjectMetadataTable_Constraints(t *testing.T) {
	table, err := NewObjectMetadataTable(objectstore.NewMemoryStore(), "", "")
	if err != nil {
		t.Fatalf("NewObjectMetadataTable failed: %v", err)
	}
	constraints := table.Constraints()
	if len(constraints) != 1 {
		t.Fatalf("Constraints() returned %d entries, want 1", len(constraints))
	}
	pk := constraints[0]
	if pk.Kind != engine.ConstraintPrimaryKey || len(pk.Columns) != 1 || pk.Columns[0] != 0 {
		t.Fatalf("primary key constraint = %+v, want column 0", pk)
	}
}

type literalExpr string

func (e literalExpr) String() string { return string(e) }

func TestObjectMetadataTable_PushdownAlwaysUnsupported(t *testing.T) {
	table, err := NewObjectMetadataTable(objectstore.NewMemoryStore(), "", "")
	if err != nil {
		t.Fatalf("NewObjectMetadataTable failed: %v", err)
	}
	filters := []engine.Expr{literalExpr("size > 10"), literalExpr("e_tag IS NOT NULL")}
	got := table.SupportsFiltersPushdown(filters)
	if len(got) != len(filters) {
		t.Fatalf("pushdown result has %d entries, want %d", len(got), len(filters))
	}
	for i, p := range got {
		if p != engine.PushdownUnsupported {
			t.Errorf("filter %d pushdown = %v, want Unsupported", i, p)
		}
	}
}

func TestObjectMetadataTable_PlanShape(t *testing.T) {
	table, err := NewObjectMetadataTable(objectstore.NewMemoryStore(), "data/", "")
	if err != nil {
		t.Fatalf("NewObjectMetadataTable failed: %v", err)
	}
	plan, err := table.Scan(context.Background(), nil, nil, -1)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if plan.Partitions() != 1 {
		t.Errorf("Partitions() = %d, want 1", plan.Partitions())
	}
	if len(plan.Children()) != 0 {
		t.Errorf("Children() = %d entries, want 0", len(plan.Children()))
	}
	same, err := plan.WithNewChildren(nil)
	if err != nil || same != plan {
		t.Errorf("WithNewChildren(nil) = (%v, %v), want the plan itself", same, err)
	}
	if _, err := plan.WithNewChildren([]engine.ExecutionPlan{plan}); err == nil {
		t.Errorf("WithNewChildren with children succeeded, want error")
	}
	if !plan.Schema().Equal(table.Schema()) {
		t.Errorf("unprojected plan schema differs from declared schema")
	}
	if _, err := plan.Execute(context.Background(), 1); err == nil {
		t.Errorf("Execute(partition=1) succeeded, want error")
	}
}

package catalog

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/qfilter/arrowq"
)

func newTable(t *testing.T, mem memory.Allocator, name string) *arrowq.Table {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{{Name: "id", Type: arrow.PrimitiveTypes.Int64}}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)
	rec := b.NewRecordBatch()
	defer rec.Release()

	tbl, err := arrowq.NewTable(name, schema, rec)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return tbl
}

func TestStaticCatalog(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	cat, err := NewStatic(newTable(t, mem, "users"), newTable(t, mem, "location"))
	if err != nil {
		t.Fatalf("NewStatic failed: %v", err)
	}
	defer cat.Release()

	ctx := context.Background()
	tables, err := cat.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if len(tables) != 2 || tables[0].Name() != "location" || tables[1].Name() != "users" {
		t.Errorf("unexpected tables %v", tables)
	}

	tbl, err := cat.Table(ctx, "users")
	if err != nil || tbl == nil || tbl.Name() != "users" {
		t.Errorf("Table(users) = %v, %v", tbl, err)
	}

	tbl, err = cat.Table(ctx, "missing")
	if err != nil || tbl != nil {
		t.Errorf("Table(missing) = %v, %v; want nil, nil", tbl, err)
	}
}

func TestStaticCatalogDuplicate(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	a, b := newTable(t, mem, "users"), newTable(t, mem, "users")
	defer a.Release()
	defer b.Release()

	if _, err := NewStatic(a, b); err == nil {
		t.Error("expected duplicate table error")
	}
	if _, err := NewStatic(a, nil); err == nil {
		t.Error("expected nil table error")
	}
}

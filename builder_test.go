package qfilter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/qfilter"
)

func TestCatalogBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	rec := userRecord(mem)
	defer rec.Release()

	cat, err := qfilter.NewCatalogBuilder().
		Table("user", userSchema(), rec).
		Table("empty", userSchema()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer cat.Release()

	tables, err := cat.Tables(context.Background())
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	if len(tables) != 2 || tables[0].Name() != "empty" || tables[1].Name() != "user" {
		t.Fatalf("unexpected tables %v", tables)
	}

	n, err := tables[1].Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestCatalogBuilderErrors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	rec := userRecord(mem)
	defer rec.Release()

	other := arrow.NewSchema([]arrow.Field{{Name: "x", Type: arrow.PrimitiveTypes.Int32}}, nil)

	tests := []struct {
		name  string
		build func(*qfilter.CatalogBuilder) *qfilter.CatalogBuilder
	}{
		{"empty name", func(b *qfilter.CatalogBuilder) *qfilter.CatalogBuilder {
			return b.Table("user", userSchema(), rec).Table("", userSchema())
		}},
		{"nil schema", func(b *qfilter.CatalogBuilder) *qfilter.CatalogBuilder {
			return b.Table("user", nil)
		}},
		{"schema mismatch", func(b *qfilter.CatalogBuilder) *qfilter.CatalogBuilder {
			return b.Table("user", other, rec)
		}},
		{"duplicate", func(b *qfilter.CatalogBuilder) *qfilter.CatalogBuilder {
			return b.Table("user", userSchema(), rec).Table("user", userSchema(), rec)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := tt.build(qfilter.NewCatalogBuilder()).Build()
			if !errors.Is(err, qfilter.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if cat != nil {
				t.Errorf("expected nil catalog")
			}
		})
	}

	b := qfilter.NewCatalogBuilder()
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Errorf("expected error on second Build")
	}
}

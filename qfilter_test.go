package qfilter_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/qfilter"
	"github.com/hugr-lab/qfilter/arrowq"
	"github.com/hugr-lab/qfilter/filter"
	"github.com/hugr-lab/qfilter/query"
	"github.com/hugr-lab/qfilter/sqlgen"
)

func userSelect() *sqlgen.Select {
	return sqlgen.Table("user",
		query.Col("u_id", query.TypeInteger),
		query.Col("u_name", query.TypeString),
		query.Col("u_age", query.TypeInteger),
	)
}

func userSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "u_id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "u_name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
}

func userRecord(mem memory.Allocator) arrow.Record {
	b := array.NewRecordBuilder(mem, userSchema())
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	b.Field(1).(*array.StringBuilder).AppendValues([]string{"Micha", "Oli", "Tom"}, nil)
	return b.NewRecordBatch()
}

func TestFilterSQL(t *testing.T) {
	base := userSelect()
	got, err := qfilter.Filter(base, map[string]any{"u_age__gte": "18", "u_name__like": "M%"})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	want := "SELECT * FROM \"user\" WHERE u_age >= 18 AND u_name LIKE 'M%'"
	if got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
	if base.Predicate() != nil {
		t.Errorf("base was modified")
	}
}

func TestFilterErrors(t *testing.T) {
	tests := []struct {
		name    string
		mapping map[string]any
		target  error
	}{
		{"unknown operator", map[string]any{"u_id__between": 1}, filter.ErrUnknownOperator},
		{"invalid operand", map[string]any{"u_id__in": 1}, filter.ErrInvalidOperand},
		{"unknown field", map[string]any{"u_nick": "x"}, query.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qfilter.Filter(userSelect(), tt.mapping)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if got != nil {
				t.Errorf("expected nil selectable, got %v", got)
			}
		})
	}
}

func TestApplyRequestArrow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	rec := userRecord(mem)
	defer rec.Release()
	tbl, err := arrowq.NewTable("user", userSchema(), rec)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	defer tbl.Release()

	req, err := qfilter.ParseRequest("?u_name__like=%25o%25&_order=u_id&_desc&_limit=5")
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	view, err := qfilter.Apply(tbl, req)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	reader, err := view.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	defer reader.Release()

	var ids []int64
	for reader.Next() {
		ids = append(ids, reader.Record().Column(0).(*array.Int64).Int64Values()...)
	}
	if !slices.Equal(ids, []int64{3}) {
		t.Errorf("got %v, want [3]", ids)
	}
}

func TestApplyRequestSQL(t *testing.T) {
	req, err := qfilter.ParseRequest("u_id__in=1,3&_limit=2&_offset=1")
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}
	got, err := qfilter.Apply(userSelect(), req, query.WithMaxLimit(1))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := "SELECT * FROM \"user\" WHERE u_id IN (1, 3) LIMIT 1 OFFSET 1"
	if got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}

	if _, err := qfilter.ParseRequest("_limit=x"); !errors.Is(err, query.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

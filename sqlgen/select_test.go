package sqlgen

import (
	"reflect"
	"testing"
	"time"

	"github.com/hugr-lab/qfilter/filter"
	"github.com/hugr-lab/qfilter/query"
)

func usersTable() *Select {
	return Table("users",
		query.Col("id", query.TypeInteger),
		query.Col("name", query.TypeString),
		query.Col("age", query.TypeInteger),
		query.Col("created", query.TypeTimestamp),
		query.Col("born", query.TypeDate),
		query.Col("avatar", query.TypeBinary),
	)
}

func apply(t *testing.T, base *Select, filters map[string]any, opts ...query.Option) *Select {
	t.Helper()
	set, err := filter.Build(filters)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got, err := query.Query(base, set, opts...)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	return got
}

func TestSelectString(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]any
		want    string
	}{
		{"no filters", nil, "SELECT * FROM users"},
		{"conjunction", map[string]any{"age__gte": 18, "name__like": "A%"}, "SELECT * FROM users WHERE age >= 18 AND name LIKE 'A%'"},
		{"ieq", map[string]any{"name__ieq": "Oli"}, "SELECT * FROM users WHERE lower(name) = 'oli'"},
		{"escaping", map[string]any{"name": "O'Brien"}, "SELECT * FROM users WHERE name = 'O''Brien'"},
		{"in", map[string]any{"id__in": []int{1, 3}}, "SELECT * FROM users WHERE id IN (1, 3)"},
		{"empty in", map[string]any{"id__in": []int{}}, "SELECT * FROM users WHERE 1 = 0"},
		{"empty not in", map[string]any{"id__not_in": []int{}}, "SELECT * FROM users WHERE 1 = 1"},
		{"null checks", map[string]any{"name__isnull": false, "age__is_null": nil}, "SELECT * FROM users WHERE age IS NULL AND name IS NOT NULL"},
		{"timestamp", map[string]any{"created__gt": "2016-01-01T01:00:00Z"}, "SELECT * FROM users WHERE created > TIMESTAMP '2016-01-01 01:00:00'"},
		{"date", map[string]any{"born__lt": "2000-02-01"}, "SELECT * FROM users WHERE born < DATE '2000-02-01'"},
		{"blob", map[string]any{"avatar": []byte{0x01, 0xab}}, `SELECT * FROM users WHERE avatar = '\x01\xab'::BLOB`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, usersTable(), tt.filters)
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestSelectBuild(t *testing.T) {
	got := apply(t, usersTable(), map[string]any{
		"age__gte":   18,
		"id__not_in": []string{"4", "5"},
		"name__ieq":  "Oli",
	})

	sql, args := got.Build()
	wantSQL := "SELECT * FROM users WHERE age >= ? AND id NOT IN (?, ?) AND lower(name) = ?"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	wantArgs := []any{int64(18), int64(4), int64(5), "oli"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestSelectIsCopyOnFilter(t *testing.T) {
	base := usersTable()
	adults := apply(t, base, map[string]any{"age__gte": 18})
	named := apply(t, adults, map[string]any{"name": "Oli"})

	if base.String() != "SELECT * FROM users" {
		t.Errorf("base changed: %s", base.String())
	}
	if adults.WhereClause() != "age >= 18" {
		t.Errorf("adults changed: %s", adults.WhereClause())
	}
	if named.WhereClause() != "age >= 18 AND name = 'Oli'" {
		t.Errorf("unexpected refinement: %s", named.WhereClause())
	}
	if base.WhereClause() != "" || base.Predicate() != nil {
		t.Errorf("expected unfiltered base")
	}
}

func TestSelectPaging(t *testing.T) {
	got := apply(t, usersTable(), map[string]any{"age__gt": 1},
		query.WithPage(query.Page{Limit: 2, Offset: 1, Order: "name", Desc: true}))

	want := "SELECT * FROM users WHERE age > 1 ORDER BY name DESC LIMIT 2 OFFSET 1"
	if got.String() != want {
		t.Errorf("String() = %q, want %q", got.String(), want)
	}

	got = apply(t, usersTable(), nil, query.WithPage(query.Page{Order: "id"}), query.WithMaxLimit(50))
	want = "SELECT * FROM users ORDER BY id ASC LIMIT 50"
	if got.String() != want {
		t.Errorf("String() = %q, want %q", got.String(), want)
	}
}

func TestSelectQuoting(t *testing.T) {
	base := Table("main.user",
		query.Col("order", query.TypeInteger),
		query.Col("first name", query.TypeString),
		query.Col("u_id", query.TypeInteger),
	)
	got := apply(t, base, map[string]any{"order": 1, "first name": "x", "u_id": 2})

	want := `SELECT * FROM main."user" WHERE "first name" = 'x' AND "order" = 1 AND u_id = 2`
	if got.String() != want {
		t.Errorf("String() = %q, want %q", got.String(), want)
	}
}

func TestSelectOptions(t *testing.T) {
	base := Table("users",
		query.Col("name", query.TypeString),
		query.Col("city", query.TypeString),
	).WithOptions(EncoderOptions{
		ColumnMapping:     map[string]string{"name": "u_name"},
		ColumnExpressions: map[string]string{"city": "coalesce(city, '')"},
	})
	got := apply(t, base, map[string]any{"name": "Oli", "city__ieq": "KA"})

	want := "lower(coalesce(city, '')) = 'ka' AND u_name = 'Oli'"
	if got.WhereClause() != want {
		t.Errorf("WhereClause() = %q, want %q", got.WhereClause(), want)
	}
}

func TestSubquery(t *testing.T) {
	base := Subquery("joined", "SELECT * FROM location JOIN users ON l_id = u_l_id",
		query.Col("l_id", query.TypeInteger),
		query.Col("u_id", query.TypeInteger),
	)
	got := apply(t, base, map[string]any{"l_id": 1, "u_id": 1})

	want := "SELECT * FROM (SELECT * FROM location JOIN users ON l_id = u_l_id) AS joined WHERE l_id = 1 AND u_id = 1"
	if got.String() != want {
		t.Errorf("String() = %q, want %q", got.String(), want)
	}
	if got.Name() != "joined" {
		t.Errorf("Name() = %q", got.Name())
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2020, 5, 6, 7, 8, 9, 123000000, time.UTC)
	tests := []struct {
		typ  query.Type
		v    any
		want string
	}{
		{query.TypeUnknown, nil, "NULL"},
		{query.TypeBoolean, true, "TRUE"},
		{query.TypeBoolean, false, "FALSE"},
		{query.TypeInteger, int64(-3), "-3"},
		{query.TypeInteger, uint8(7), "7"},
		{query.TypeFloat, 1.5, "1.5"},
		{query.TypeFloat, float32(0.25), "0.25"},
		{query.TypeTimestamp, ts, "TIMESTAMP '2020-05-06 07:08:09.123'"},
		{query.TypeDate, ts, "DATE '2020-05-06'"},
		{query.TypeString, "it's", "'it''s'"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.typ, tt.v); got != tt.want {
			t.Errorf("formatValue(%v, %#v) = %q, want %q", tt.typ, tt.v, got, tt.want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	tests := map[string]query.Type{
		"BOOLEAN":                  query.TypeBoolean,
		"integer":                  query.TypeInteger,
		"BIGINT":                   query.TypeInteger,
		"DECIMAL(18,3)":            query.TypeFloat,
		"DOUBLE":                   query.TypeFloat,
		"VARCHAR":                  query.TypeString,
		"DATE":                     query.TypeDate,
		"TIMESTAMP WITH TIME ZONE": query.TypeTimestamp,
		"BLOB":                     query.TypeBinary,
		"STRUCT(a INTEGER)":        query.TypeUnknown,
	}
	for name, want := range tests {
		if got := TypeOf(name); got != want {
			t.Errorf("TypeOf(%q) = %v, want %v", name, got, want)
		}
	}
}

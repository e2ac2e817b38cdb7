package sqlgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugr-lab/qfilter/query"
)

// ErrTableNotFound is returned by Reflect for tables without columns.
var ErrTableNotFound = errors.New("sqlgen: table not found")

const columnsQuery = `SELECT column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_name = ?`

// Reflect reads the columns of table from information_schema and returns
// a Select over it. table may be qualified as schema.table.
func Reflect(ctx context.Context, q Querier, table string) (*Select, error) {
	schema, name := "", table
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		schema, name = table[:i], table[i+1:]
	}

	stmt, args := columnsQuery, []any{name}
	if schema != "" {
		stmt += " AND table_schema = ?"
		args = append(args, schema)
	}
	stmt += " ORDER BY ordinal_position"

	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlgen: reflect %s: %w", table, err)
	}
	defer rows.Close()

	var columns []query.Column
	for rows.Next() {
		var colName, dataType, nullable string
		if err := rows.Scan(&colName, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("sqlgen: reflect %s: %w", table, err)
		}
		columns = append(columns, query.Column{
			Name:     colName,
			Type:     TypeOf(dataType),
			Nullable: nullable != "NO",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlgen: reflect %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return Table(table, columns...), nil
}

// TypeOf maps a DuckDB type name to a column type.
func TypeOf(dataType string) query.Type {
	t := strings.ToUpper(strings.TrimSpace(dataType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	switch t {
	case "BOOLEAN", "BOOL":
		return query.TypeBoolean
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "UHUGEINT":
		return query.TypeInteger
	case "FLOAT", "REAL", "DOUBLE", "DECIMAL", "NUMERIC":
		return query.TypeFloat
	case "VARCHAR", "CHAR", "TEXT", "STRING", "UUID":
		return query.TypeString
	case "DATE":
		return query.TypeDate
	case "TIMESTAMP", "DATETIME", "TIMESTAMP_S", "TIMESTAMP_MS", "TIMESTAMP_NS",
		"TIMESTAMP WITH TIME ZONE", "TIMESTAMPTZ":
		return query.TypeTimestamp
	case "BLOB", "BYTEA":
		return query.TypeBinary
	}
	return query.TypeUnknown
}

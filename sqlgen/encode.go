package sqlgen

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hugr-lab/qfilter/query"
)

// EncoderOptions configures how columns are rendered.
type EncoderOptions struct {
	// ColumnMapping maps exposed column names to storage names.
	// Columns not in the map use their own names.
	ColumnMapping map[string]string

	// ColumnExpressions maps column names to SQL expressions.
	// Takes precedence over ColumnMapping.
	ColumnExpressions map[string]string
}

// encoder renders predicates in the DuckDB dialect. With bind set, values
// become ? placeholders collected in args; otherwise they are inlined.
type encoder struct {
	opts EncoderOptions
	bind bool
	args []any
}

func (e *encoder) encode(p query.Predicate) string {
	switch p := p.(type) {
	case *query.Comparison:
		col := e.column(p.Column)
		if p.FoldCase {
			col = "lower(" + col + ")"
		}
		return col + " " + p.Op.Symbol() + " " + e.value(p.Column.Type, p.Value)

	case *query.Membership:
		if len(p.Values) == 0 {
			// IN () is not valid SQL.
			if p.Negated {
				return "1 = 1"
			}
			return "1 = 0"
		}
		values := make([]string, len(p.Values))
		for i, v := range p.Values {
			values[i] = e.value(p.Column.Type, v)
		}
		op := " IN ("
		if p.Negated {
			op = " NOT IN ("
		}
		return e.column(p.Column) + op + strings.Join(values, ", ") + ")"

	case *query.Pattern:
		op := " LIKE "
		if p.Negated {
			op = " NOT LIKE "
		}
		return e.column(p.Column) + op + e.value(query.TypeString, p.Pattern)

	case *query.NullCheck:
		if p.Null {
			return e.column(p.Column) + " IS NULL"
		}
		return e.column(p.Column) + " IS NOT NULL"

	case *query.Conjunction:
		parts := make([]string, 0, len(p.Children))
		for _, child := range p.Children {
			s := e.encode(child)
			if _, nested := child.(*query.Conjunction); nested {
				s = "(" + s + ")"
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " AND ")
	}
	return ""
}

func (e *encoder) column(c query.Column) string {
	if expr, ok := e.opts.ColumnExpressions[c.Name]; ok {
		return expr
	}
	name := c.Name
	if mapped, ok := e.opts.ColumnMapping[name]; ok {
		name = mapped
	}
	return quoteIdentifier(name)
}

func (e *encoder) value(typ query.Type, v any) string {
	if e.bind {
		e.args = append(e.args, v)
		return "?"
	}
	return formatValue(typ, v)
}

// formatValue renders v as a DuckDB literal.
func formatValue(typ query.Type, v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return quoteLiteral(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case time.Time:
		if typ == query.TypeDate {
			return "DATE '" + v.Format("2006-01-02") + "'"
		}
		return "TIMESTAMP '" + v.UTC().Format("2006-01-02 15:04:05.999999") + "'"
	case []byte:
		var sb strings.Builder
		sb.WriteString("'")
		for _, b := range v {
			sb.WriteString(`\x`)
			sb.WriteString(hex.EncodeToString([]byte{b}))
		}
		sb.WriteString("'::BLOB")
		return sb.String()
	case fmt.Stringer:
		return quoteLiteral(v.String())
	}
	return quoteLiteral(fmt.Sprint(v))
}

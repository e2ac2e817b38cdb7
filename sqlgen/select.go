package sqlgen

import (
	"context"
	"database/sql"
	"slices"
	"strconv"
	"strings"

	"github.com/hugr-lab/qfilter/query"
)

// Select is an immutable SELECT statement over a table or subquery.
// Where and Paginate return refined copies, so a base Select may be shared
// between goroutines.
type Select struct {
	name    string
	from    string
	columns []query.Column
	where   query.Predicate
	paging  *query.Paging
	opts    EncoderOptions
}

// Table selects from a named table. The name may be schema qualified.
func Table(name string, columns ...query.Column) *Select {
	return &Select{
		name:    name,
		from:    quoteQualified(name),
		columns: slices.Clone(columns),
	}
}

// Subquery selects from a parenthesized SQL statement aliased as alias.
// columns lists what the statement exposes.
func Subquery(alias, sql string, columns ...query.Column) *Select {
	return &Select{
		name:    alias,
		from:    "(" + sql + ") AS " + quoteIdentifier(alias),
		columns: slices.Clone(columns),
	}
}

// Name returns the table name or subquery alias.
func (s *Select) Name() string { return s.name }

// Columns returns the selectable columns.
func (s *Select) Columns() []query.Column { return s.columns }

// Predicate returns the accumulated WHERE predicate, nil if unfiltered.
func (s *Select) Predicate() query.Predicate { return s.where }

// Where returns a copy filtered additionally by pred.
func (s *Select) Where(pred query.Predicate) *Select {
	cp := *s
	cp.where = query.And(s.where, pred)
	return &cp
}

// Paginate returns a copy with ORDER BY, LIMIT and OFFSET set from p.
func (s *Select) Paginate(p query.Paging) *Select {
	cp := *s
	cp.paging = &p
	return &cp
}

// WithOptions returns a copy rendering columns through opts.
func (s *Select) WithOptions(opts EncoderOptions) *Select {
	cp := *s
	cp.opts = opts
	return &cp
}

// WhereClause renders the predicate with inline literals, without the
// WHERE keyword. It is empty for an unfiltered Select.
func (s *Select) WhereClause() string {
	if s.where == nil {
		return ""
	}
	e := &encoder{opts: s.opts}
	return e.encode(s.where)
}

// String renders the statement with inline literals.
func (s *Select) String() string {
	sql, _ := s.render(false)
	return sql
}

// Build renders the statement with ? placeholders and returns the bound
// arguments in placeholder order.
func (s *Select) Build() (string, []any) {
	return s.render(true)
}

func (s *Select) render(bind bool) (string, []any) {
	e := &encoder{opts: s.opts, bind: bind}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(s.from)
	if s.where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(e.encode(s.where))
	}
	if p := s.paging; p != nil {
		if p.Order != nil {
			sb.WriteString(" ORDER BY ")
			sb.WriteString(e.column(p.Order.Column))
			if p.Order.Desc {
				sb.WriteString(" DESC")
			} else {
				sb.WriteString(" ASC")
			}
		}
		if p.Limit > 0 {
			sb.WriteString(" LIMIT ")
			sb.WriteString(strconv.Itoa(p.Limit))
		}
		if p.Offset > 0 {
			sb.WriteString(" OFFSET ")
			sb.WriteString(strconv.Itoa(p.Offset))
		}
	}
	return sb.String(), e.args
}

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query executes the statement with bound arguments.
func (s *Select) Query(ctx context.Context, q Querier) (*sql.Rows, error) {
	stmt, args := s.Build()
	return q.QueryContext(ctx, stmt, args...)
}

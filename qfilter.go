package qfilter

import (
	"github.com/hugr-lab/qfilter/filter"
	"github.com/hugr-lab/qfilter/query"
)

// Request is a filter set and optional page read from a query string.
type Request = query.Request

// ParseRequest reads a URL query string such as "age__gte=18&_limit=10".
func ParseRequest(rawQuery string) (Request, error) {
	return query.ParseRequest(rawQuery)
}

// Filter compiles mapping and applies it to base.
//
//	users := sqlgen.Table("users", query.Col("age", query.TypeInteger))
//	adults, err := qfilter.Filter(users, map[string]any{"age__gte": 18})
func Filter[S query.Selectable[S]](base S, mapping map[string]any, opts ...query.Option) (S, error) {
	set, err := filter.Build(mapping)
	if err != nil {
		var zero S
		return zero, err
	}
	return query.Query(base, set, opts...)
}

// Apply applies a parsed request, filters and page, to base.
func Apply[S query.Selectable[S]](base S, req Request, opts ...query.Option) (S, error) {
	return query.Query(base, req.Filters, append(req.Options(), opts...)...)
}

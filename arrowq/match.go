package arrowq

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/qfilter/query"
)

// rowMatcher reports whether row of rec satisfies a predicate.
type rowMatcher func(rec arrow.Record, row int) bool

// compile turns pred into a row matcher with SQL null semantics:
// a null cell fails every predicate except null checks.
func compile(schema *arrow.Schema, table string, pred query.Predicate) (rowMatcher, error) {
	switch p := pred.(type) {
	case *query.Comparison:
		idx, err := fieldIndex(schema, table, p.Column.Name)
		if err != nil {
			return nil, err
		}
		return func(rec arrow.Record, row int) bool {
			arr := rec.Column(idx)
			if arr.IsNull(row) {
				return false
			}
			v := valueAt(arr, row)
			if s, ok := v.(string); ok && p.FoldCase {
				v = strings.ToLower(s)
			}
			c, ok := compareValues(v, p.Value)
			return ok && p.Op.Matches(c)
		}, nil

	case *query.Membership:
		if len(p.Values) == 0 {
			return func(arrow.Record, int) bool { return p.Negated }, nil
		}
		idx, err := fieldIndex(schema, table, p.Column.Name)
		if err != nil {
			return nil, err
		}
		return func(rec arrow.Record, row int) bool {
			arr := rec.Column(idx)
			if arr.IsNull(row) {
				return false
			}
			v := valueAt(arr, row)
			for _, want := range p.Values {
				if c, ok := compareValues(v, want); ok && c == 0 {
					return !p.Negated
				}
			}
			return p.Negated
		}, nil

	case *query.Pattern:
		idx, err := fieldIndex(schema, table, p.Column.Name)
		if err != nil {
			return nil, err
		}
		re, err := likePattern(p.Pattern)
		if err != nil {
			return nil, err
		}
		return func(rec arrow.Record, row int) bool {
			arr := rec.Column(idx)
			if arr.IsNull(row) {
				return false
			}
			s, ok := valueAt(arr, row).(string)
			if !ok {
				s = arr.ValueStr(row)
			}
			return re.MatchString(s) != p.Negated
		}, nil

	case *query.NullCheck:
		idx, err := fieldIndex(schema, table, p.Column.Name)
		if err != nil {
			return nil, err
		}
		return func(rec arrow.Record, row int) bool {
			return rec.Column(idx).IsNull(row) == p.Null
		}, nil

	case *query.Conjunction:
		children := make([]rowMatcher, len(p.Children))
		for i, child := range p.Children {
			m, err := compile(schema, table, child)
			if err != nil {
				return nil, err
			}
			children[i] = m
		}
		return func(rec arrow.Record, row int) bool {
			for _, m := range children {
				if !m(rec, row) {
					return false
				}
			}
			return true
		}, nil
	}
	return nil, fmt.Errorf("arrowq: unsupported predicate %T", pred)
}

// likePattern translates a LIKE pattern into an anchored regexp.
// % matches any sequence and _ any single character.
func likePattern(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString(`(?s)^`)
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(`.*`)
		case '_':
			sb.WriteString(`.`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(`$`)
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("arrowq: invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

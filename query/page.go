package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hugr-lab/qfilter/filter"
)

// MaxLimit caps the number of rows of a paged query.
const MaxLimit = 10000

// Page is a caller-side paging request.
type Page struct {
	// Limit is the maximum number of rows. Zero or negative means MaxLimit;
	// larger values are capped to MaxLimit.
	Limit int `msgpack:"limit,omitempty"`

	// Offset is the number of rows to skip.
	Offset int `msgpack:"offset,omitempty"`

	// Order is the field to sort by, resolved like filter fields.
	// Empty means no ordering.
	Order string `msgpack:"order,omitempty"`

	// Desc sorts descending.
	Desc bool `msgpack:"desc,omitempty"`
}

// Ordering is a resolved sort key.
type Ordering struct {
	Column Column
	Desc   bool
}

// Paging is the resolved page handed to Pager implementations.
type Paging struct {
	Limit  int
	Offset int
	Order  *Ordering
}

func (p Page) resolve(src ColumnSource, maxLimit int) (Paging, error) {
	out := Paging{Limit: p.Limit, Offset: max(p.Offset, 0)}
	if out.Limit <= 0 || out.Limit > maxLimit {
		out.Limit = maxLimit
	}
	if p.Order != "" {
		col, ok := Resolve(src.Columns(), p.Order)
		if !ok {
			return Paging{}, &UnknownFieldError{Field: p.Order, Selectable: src.Name()}
		}
		out.Order = &Ordering{Column: col, Desc: p.Desc}
	}
	return out, nil
}

// PageFromValues reads the reserved paging parameters from query values.
// The boolean result reports whether any of them was present.
// _desc without a value means descending.
func PageFromValues(values url.Values) (Page, bool, error) {
	var p Page
	found := false

	if v, ok := values[filter.ParamLimit]; ok && len(v) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(v[0]))
		if err != nil {
			return Page{}, false, fmt.Errorf("query: %w: %s %q: %v", ErrInvalidRequest, filter.ParamLimit, v[0], err)
		}
		p.Limit = n
		found = true
	}
	if v, ok := values[filter.ParamOffset]; ok && len(v) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(v[0]))
		if err != nil || n < 0 {
			return Page{}, false, fmt.Errorf("query: %w: %s %q", ErrInvalidRequest, filter.ParamOffset, v[0])
		}
		p.Offset = n
		found = true
	}
	if v, ok := values[filter.ParamOrder]; ok && len(v) > 0 {
		p.Order = strings.TrimSpace(v[0])
		found = true
	}
	if v, ok := values[filter.ParamDesc]; ok {
		p.Desc = true
		if len(v) > 0 && strings.TrimSpace(v[0]) != "" {
			desc, err := strconv.ParseBool(strings.TrimSpace(v[0]))
			if err != nil {
				return Page{}, false, fmt.Errorf("query: %w: %s %q: %v", ErrInvalidRequest, filter.ParamDesc, v[0], err)
			}
			p.Desc = desc
		}
		found = true
	}
	return p, found, nil
}

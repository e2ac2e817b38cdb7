package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hugr-lab/qfilter/filter"
)

// Request is a filter set and optional page read from a URL query string.
type Request struct {
	Filters filter.Set
	Page    *Page
}

// ParseRequest reads a raw query string such as
// "age__gte=18&name__like=A%25&_order=name&_limit=10".
// A leading "?" is ignored.
func ParseRequest(rawQuery string) (Request, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Request{}, fmt.Errorf("query: %w: %v", ErrInvalidRequest, err)
	}

	set, err := filter.FromValues(values)
	if err != nil {
		return Request{}, err
	}
	req := Request{Filters: set}

	page, paged, err := PageFromValues(values)
	if err != nil {
		return Request{}, err
	}
	if paged {
		req.Page = &page
	}
	return req, nil
}

// Options returns the Query options carrying the request page, if any.
func (r Request) Options() []Option {
	if r.Page == nil {
		return nil
	}
	return []Option{WithPage(*r.Page)}
}

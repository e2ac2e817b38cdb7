package query

import (
	"log/slog"

	"github.com/hugr-lab/qfilter/filter"
)

// Selectable is a queryable relation with named columns.
// Where must return a new selectable refined by pred and leave the receiver
// unchanged, so one base may be refined many times, concurrently.
type Selectable[S any] interface {
	ColumnSource
	Where(pred Predicate) S
}

// Pager is implemented by selectables that support limit, offset and order.
// Paginate must not modify the receiver.
type Pager[S any] interface {
	Paginate(p Paging) S
}

type options struct {
	page     *Page
	maxLimit int
	logger   *slog.Logger
}

// Option configures Query.
type Option func(*options)

// WithPage applies limit, offset and order after filtering.
func WithPage(p Page) Option {
	return func(o *options) { o.page = &p }
}

// WithMaxLimit overrides MaxLimit for WithPage.
func WithMaxLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLimit = n
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Query folds set onto base and returns the refined selectable.
//
// Every clause field is resolved against base's columns, the clause
// predicates are combined by conjunction and passed to base.Where once.
// An empty set returns base itself. On error the zero S is returned and
// base is left as it was.
func Query[S Selectable[S]](base S, set filter.Set, opts ...Option) (S, error) {
	o := options{maxLimit: MaxLimit, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var zero S
	pred, err := Compile(base, set)
	if err != nil {
		o.logger.Debug("Filter rejected",
			"selectable", base.Name(),
			"filters", set.String(),
			"error", err,
		)
		return zero, err
	}

	var paging *Paging
	if o.page != nil {
		p, err := o.page.resolve(base, o.maxLimit)
		if err != nil {
			return zero, err
		}
		paging = &p
	}

	result := base
	if pred != nil {
		result = base.Where(pred)
	}
	if paging != nil {
		pager, ok := any(result).(Pager[S])
		if !ok {
			return zero, ErrPagingUnsupported
		}
		result = pager.Paginate(*paging)
	}

	if pred != nil {
		o.logger.Debug("Filters applied",
			"selectable", base.Name(),
			"clauses", set.Len(),
			"predicate", pred.String(),
		)
	}
	return result, nil
}

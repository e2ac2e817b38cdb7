// Package catalog names the tables served over Flight.
package catalog

import (
	"context"

	"github.com/hugr-lab/qfilter/arrowq"
)

// Catalog resolves table names to in-memory tables.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// Table returns the named table, or nil, nil when it does not exist.
	Table(ctx context.Context, name string) (*arrowq.Table, error)

	// Tables returns every table, ordered by name.
	Tables(ctx context.Context) ([]*arrowq.Table, error)
}

package catalog

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/hugr-lab/qfilter/arrowq"
)

// Static is an immutable catalog built once at startup.
type Static struct {
	tables map[string]*arrowq.Table
	sorted []*arrowq.Table
}

// NewStatic creates a catalog of tables. Table names must be unique.
// The catalog takes ownership of the tables; Release frees them.
func NewStatic(tables ...*arrowq.Table) (*Static, error) {
	c := &Static{tables: make(map[string]*arrowq.Table, len(tables))}
	for _, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("catalog: nil table")
		}
		if _, dup := c.tables[t.Name()]; dup {
			return nil, fmt.Errorf("catalog: duplicate table %q", t.Name())
		}
		c.tables[t.Name()] = t
	}
	c.sorted = slices.SortedFunc(maps.Values(c.tables), func(a, b *arrowq.Table) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return c, nil
}

// Table implements Catalog.
func (c *Static) Table(_ context.Context, name string) (*arrowq.Table, error) {
	return c.tables[name], nil
}

// Tables implements Catalog.
func (c *Static) Tables(context.Context) ([]*arrowq.Table, error) {
	return slices.Clone(c.sorted), nil
}

// Release frees the records of every table.
func (c *Static) Release() {
	for _, t := range c.sorted {
		t.Release()
	}
}

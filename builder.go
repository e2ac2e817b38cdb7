package qfilter

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/qfilter/arrowq"
	"github.com/hugr-lab/qfilter/catalog"
)

// CatalogBuilder builds a static catalog of in-memory tables.
// Not thread-safe: use only during initialization.
type CatalogBuilder struct {
	tables []*arrowq.Table
	errs   []error
	built  bool
}

// NewCatalogBuilder creates an empty catalog builder.
//
//	cat, err := qfilter.NewCatalogBuilder().
//	    Table("users", usersSchema, usersRecord).
//	    Table("location", locationSchema, locationRecord).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	defer cat.Release()
func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{}
}

// Table adds a table over records. The records are retained, so the caller
// may release its own references after Build.
func (cb *CatalogBuilder) Table(name string, schema *arrow.Schema, records ...arrow.Record) *CatalogBuilder {
	if name == "" {
		cb.errs = append(cb.errs, errors.New("table name is required"))
		return cb
	}
	if schema == nil {
		cb.errs = append(cb.errs, fmt.Errorf("table %q: schema is required", name))
		return cb
	}
	t, err := arrowq.NewTable(name, schema, records...)
	if err != nil {
		cb.errs = append(cb.errs, err)
		return cb
	}
	cb.tables = append(cb.tables, t)
	return cb
}

// Build returns the catalog. It can only be called once. On error every
// table added so far is released.
func (cb *CatalogBuilder) Build() (*catalog.Static, error) {
	if cb.built {
		return nil, errors.New("catalog already built")
	}
	cb.built = true

	if len(cb.errs) == 0 {
		cat, err := catalog.NewStatic(cb.tables...)
		if err == nil {
			return cat, nil
		}
		cb.errs = append(cb.errs, err)
	}
	for _, t := range cb.tables {
		t.Release()
	}
	return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(cb.errs...))
}

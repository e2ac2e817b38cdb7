package arrowq

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hugr-lab/qfilter/query"
)

// Table is an immutable in-memory relation over Arrow records.
// Where and Paginate return views sharing the records of the table;
// no row data is copied until Scan.
type Table struct {
	name    string
	schema  *arrow.Schema
	columns []query.Column
	data    *recordSet
	where   query.Predicate
	paging  *query.Paging
	view    bool
}

type recordSet struct {
	records []arrow.Record
	once    sync.Once
}

// NewTable creates a table from records sharing schema.
// The table retains the records; call Release on it when done.
func NewTable(name string, schema *arrow.Schema, records ...arrow.Record) (*Table, error) {
	for i, rec := range records {
		if !rec.Schema().Equal(schema) {
			return nil, fmt.Errorf("arrowq: record %d of %s: schema mismatch", i, name)
		}
	}
	for _, rec := range records {
		rec.Retain()
	}
	return &Table{
		name:    name,
		schema:  schema,
		columns: columnsOf(schema),
		data:    &recordSet{records: slices.Clone(records)},
	}, nil
}

// Release frees the records of a table created by NewTable. Its views
// become unusable afterwards. Release on a view does nothing.
// It is safe to call more than once.
func (t *Table) Release() {
	if t.view {
		return
	}
	t.data.once.Do(func() {
		for _, rec := range t.data.records {
			rec.Release()
		}
		t.data.records = nil
	})
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema returns the Arrow schema of the table.
func (t *Table) Schema() *arrow.Schema { return t.schema }

// Columns returns the columns derived from the Arrow schema.
func (t *Table) Columns() []query.Column { return t.columns }

// Predicate returns the accumulated filter, nil if unfiltered.
func (t *Table) Predicate() query.Predicate { return t.where }

// Where returns a view filtered additionally by pred.
// The view shares the records of t and is valid until t is released.
func (t *Table) Where(pred query.Predicate) *Table {
	cp := *t
	cp.where = query.And(t.where, pred)
	cp.view = true
	return &cp
}

// Paginate returns a view with order, offset and limit applied after
// filtering. The view shares the records of t and is valid until t is
// released.
func (t *Table) Paginate(p query.Paging) *Table {
	cp := *t
	cp.paging = &p
	cp.view = true
	return &cp
}

// Scan returns the selected rows as zero-copy slices of the table records.
// Contiguous selected rows are emitted as one record.
func (t *Table) Scan(ctx context.Context) (array.RecordReader, error) {
	rows, err := t.selectRows(ctx)
	if err != nil {
		return nil, err
	}

	var out []arrow.Record
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].rec == rows[start].rec && rows[end].row == rows[end-1].row+1 {
			end++
		}
		rec := t.data.records[rows[start].rec]
		out = append(out, rec.NewSlice(int64(rows[start].row), int64(rows[end-1].row+1)))
		start = end
	}

	reader, err := array.NewRecordReader(t.schema, out)
	for _, rec := range out {
		rec.Release()
	}
	if err != nil {
		return nil, fmt.Errorf("arrowq: scan %s: %w", t.name, err)
	}
	return reader, nil
}

// Count returns the number of rows Scan would return.
func (t *Table) Count(ctx context.Context) (int, error) {
	rows, err := t.selectRows(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

type rowRef struct {
	rec int
	row int
}

func (t *Table) selectRows(ctx context.Context) ([]rowRef, error) {
	var match rowMatcher
	if t.where != nil {
		m, err := compile(t.schema, t.name, t.where)
		if err != nil {
			return nil, err
		}
		match = m
	}

	var rows []rowRef
	for ri, rec := range t.data.records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range int(rec.NumRows()) {
			if match == nil || match(rec, i) {
				rows = append(rows, rowRef{rec: ri, row: i})
			}
		}
	}

	p := t.paging
	if p == nil {
		return rows, nil
	}
	if p.Order != nil {
		idx, err := fieldIndex(t.schema, t.name, p.Order.Column.Name)
		if err != nil {
			return nil, err
		}
		desc := p.Order.Desc
		slices.SortStableFunc(rows, func(a, b rowRef) int {
			return compareRows(t.data.records[a.rec].Column(idx), a.row,
				t.data.records[b.rec].Column(idx), b.row, desc)
		})
	}
	if p.Offset > 0 {
		rows = rows[min(p.Offset, len(rows)):]
	}
	if p.Limit > 0 && len(rows) > p.Limit {
		rows = rows[:p.Limit]
	}
	return rows, nil
}

// compareRows orders two cells, nulls last in both directions.
func compareRows(a arrow.Array, ai int, b arrow.Array, bi int, desc bool) int {
	an, bn := a.IsNull(ai), b.IsNull(bi)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	c, _ := compareValues(valueAt(a, ai), valueAt(b, bi))
	if desc {
		return -c
	}
	return c
}

func fieldIndex(schema *arrow.Schema, table, name string) (int, error) {
	idx := schema.FieldIndices(name)
	if len(idx) == 0 {
		return 0, &query.UnknownFieldError{Field: name, Selectable: table}
	}
	return idx[0], nil
}

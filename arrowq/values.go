package arrowq

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hugr-lab/qfilter/query"
)

func columnsOf(schema *arrow.Schema) []query.Column {
	columns := make([]query.Column, schema.NumFields())
	for i, f := range schema.Fields() {
		columns[i] = query.Column{Name: f.Name, Type: TypeOf(f.Type), Nullable: f.Nullable}
	}
	return columns
}

// TypeOf maps an Arrow data type to a column type.
func TypeOf(dt arrow.DataType) query.Type {
	switch dt.ID() {
	case arrow.BOOL:
		return query.TypeBoolean
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return query.TypeInteger
	case arrow.FLOAT32, arrow.FLOAT64, arrow.DECIMAL128, arrow.DECIMAL256:
		return query.TypeFloat
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return query.TypeString
	case arrow.DATE32, arrow.DATE64:
		return query.TypeDate
	case arrow.TIMESTAMP:
		return query.TypeTimestamp
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY, arrow.BINARY_VIEW:
		return query.TypeBinary
	}
	return query.TypeUnknown
}

// valueAt returns the non-null cell i of arr as int64, float64, bool,
// string, []byte or time.Time. Unsigned values above math.MaxInt64 are
// returned as uint64. Other types are returned in their
// string form.
func valueAt(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint64:
		if v := a.Value(i); v > math.MaxInt64 {
			return v
		}
		return int64(a.Value(i))
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.Decimal128, *array.Decimal256:
		f, err := strconv.ParseFloat(arr.ValueStr(i), 64)
		if err != nil {
			return arr.ValueStr(i)
		}
		return f
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Date64:
		return a.Value(i).ToTime()
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit)
	case interface{ Value(int) string }:
		return a.Value(i)
	case interface{ Value(int) []byte }:
		return a.Value(i)
	}
	return arr.ValueStr(i)
}

// compareValues orders a cell against a coerced value. The boolean is
// false when the two cannot be compared, which makes the predicate fail.
func compareValues(a, b any) (int, bool) {
	if c, ok := compareNumbers(a, b); ok {
		return c, true
	}
	switch x := a.(type) {
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y)), true
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), true
		}
	case []byte:
		switch y := b.(type) {
		case []byte:
			return bytes.Compare(x, y), true
		case string:
			return bytes.Compare(x, []byte(y)), true
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
		// Cells of unknown type compare by their string form.
		return strings.Compare(x, fmt.Sprint(b)), true
	}
	return 0, false
}

// compareNumbers orders int64, uint64 and float64 values against each other.
func compareNumbers(a, b any) (int, bool) {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return cmp.Compare(x, y), true
		case uint64:
			if x < 0 {
				return -1, true
			}
			return cmp.Compare(uint64(x), y), true
		case float64:
			return cmp.Compare(float64(x), y), true
		}
	case uint64:
		switch y := b.(type) {
		case uint64:
			return cmp.Compare(x, y), true
		case int64:
			if y < 0 {
				return 1, true
			}
			return cmp.Compare(x, uint64(y)), true
		case float64:
			return cmp.Compare(float64(x), y), true
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return cmp.Compare(x, y), true
		case int64:
			return cmp.Compare(x, float64(y)), true
		case uint64:
			return cmp.Compare(x, float64(y)), true
		}
	}
	return 0, false
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Coerce converts v to the Go representation of typ:
// int64, float64, bool, string or time.Time. Unknown and binary columns
// take values as given. Query-string values arrive as strings, so this is
// where "55" becomes 55 and "2016-01-01T01:00:00" a timestamp.
//
// Integer columns never truncate: "2.5" and 2.5 stay float64, integers
// above math.MaxInt64 stay uint64.
func Coerce(typ Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch typ {
	case TypeInteger:
		return toInteger(v)
	case TypeFloat:
		return cast.ToFloat64E(v)
	case TypeBoolean:
		return cast.ToBoolE(v)
	case TypeString:
		return cast.ToStringE(v)
	case TypeDate, TypeTimestamp:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
		return cast.ToTimeE(v)
	}
	return v, nil
}

func toInteger(v any) (any, error) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", x)
		}
		return integralOrFloat(f)
	case float32:
		return integralOrFloat(float64(x))
	case float64:
		return integralOrFloat(x)
	case uint64:
		if x > math.MaxInt64 {
			return x, nil
		}
	case uint:
		if uint64(x) > math.MaxInt64 {
			return uint64(x), nil
		}
	}
	return cast.ToInt64E(v)
}

// integralOrFloat returns f as int64 when it is a whole number in range.
func integralOrFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%v is not a finite number", f)
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f), nil
	}
	return f, nil
}

func coerceColumn(col Column, v any) (any, error) {
	out, err := Coerce(col.Type, v)
	if err != nil {
		return nil, &ConversionError{Field: col.Name, Type: col.Type, Value: v, Err: err}
	}
	return out, nil
}

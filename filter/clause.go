package filter

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Clause is one compiled (field, operator, value) unit.
// Clauses are immutable; use NewClause to create them.
type Clause struct {
	field string
	info  OperatorInfo
	value any
}

// NewClause validates op and value and returns the clause.
// The key reported in errors is the canonical field__op form.
func NewClause(field string, op Operator, value any) (Clause, error) {
	key := field + Separator + string(op)
	if field == "" {
		return Clause{}, &InvalidKeyError{Key: key, Reason: "empty field name"}
	}
	info, ok := Lookup(op)
	if !ok {
		return Clause{}, &UnknownOperatorError{Key: key, Operator: op, Accepted: Operators()}
	}
	v, err := normalizeOperand(key, info, value)
	if err != nil {
		return Clause{}, err
	}
	return Clause{field: field, info: info, value: v}, nil
}

// Field returns the field name as written in the key.
func (c Clause) Field() string { return c.field }

// Operator returns the operator token.
func (c Clause) Operator() Operator { return c.info.Operator }

// Rule returns the predicate construction rule of the operator.
func (c Clause) Rule() Rule { return c.info.Rule }

// Value returns the normalized operand: nil for unary operators, bool for isnull,
// []any for list operators (a fresh copy on every call) and the literal otherwise.
func (c Clause) Value() any {
	if list, ok := c.value.([]any); ok {
		return slices.Clone(list)
	}
	return c.value
}

// Values returns the list operand, or nil for non-list operators.
func (c Clause) Values() []any {
	list, _ := c.value.([]any)
	return slices.Clone(list)
}

// Key returns the canonical field__op key.
func (c Clause) Key() string {
	return c.field + Separator + string(c.info.Operator)
}

func (c Clause) String() string {
	if c.info.Unary() {
		return c.Key()
	}
	return fmt.Sprintf("%s=%v", c.Key(), c.value)
}

// Set is an ordered sequence of clauses compiled from one mapping.
// Clauses are combined by conjunction; duplicates are kept.
type Set struct {
	clauses []Clause
}

// NewSet returns a set holding a copy of clauses.
func NewSet(clauses ...Clause) Set {
	return Set{clauses: slices.Clone(clauses)}
}

// Len returns the number of clauses.
func (s Set) Len() int { return len(s.clauses) }

// Empty reports whether the set has no clauses.
func (s Set) Empty() bool { return len(s.clauses) == 0 }

// Clauses returns a copy of the clauses in order.
func (s Set) Clauses() []Clause { return slices.Clone(s.clauses) }

// All iterates over the clauses in order.
func (s Set) All() iter.Seq2[int, Clause] {
	return func(yield func(int, Clause) bool) {
		for i, c := range s.clauses {
			if !yield(i, c) {
				return
			}
		}
	}
}

func (s Set) String() string {
	parts := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, "&")
}

func normalizeOperand(key string, info OperatorInfo, value any) (any, error) {
	invalid := &InvalidOperandError{Key: key, Operator: info.Operator, Value: value, Expected: info.Operand}

	switch info.Operand {
	case OperandNone:
		return nil, nil

	case OperandBool:
		switch v := value.(type) {
		case nil:
			// key present without value: isnull
			return true, nil
		case bool:
			return v, nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return true, nil
			}
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, invalid
			}
			return b, nil
		default:
			if isCollection(value) {
				return nil, invalid
			}
			b, err := cast.ToBoolE(value)
			if err != nil {
				return nil, invalid
			}
			return b, nil
		}

	case OperandList:
		if value == nil || isBytes(value) {
			return nil, invalid
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, invalid
		}
		list := make([]any, rv.Len())
		for i := range list {
			elem := rv.Index(i).Interface()
			if isCollection(elem) {
				return nil, invalid
			}
			list[i] = elem
		}
		return list, nil

	case OperandString:
		s, ok := value.(string)
		if !ok {
			return nil, invalid
		}
		return s, nil

	default:
		if value == nil || isCollection(value) {
			return nil, invalid
		}
		return value, nil
	}
}

// isCollection reports slices, arrays and maps. Byte slices are scalars.
func isCollection(v any) bool {
	if v == nil || isBytes(v) {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func isBytes(v any) bool {
	_, ok := v.([]byte)
	return ok
}

package query

import (
	"fmt"
	"strings"

	"github.com/hugr-lab/qfilter/filter"
)

// ColumnSource is the schema side of a selectable.
type ColumnSource interface {
	Name() string
	Columns() []Column
}

// Compile resolves every clause of set against src and returns the conjunction
// of the clause predicates. An empty set compiles to nil.
// The first unknown field or inapplicable clause aborts compilation.
func Compile(src ColumnSource, set filter.Set) (Predicate, error) {
	if set.Empty() {
		return nil, nil
	}
	columns := src.Columns()
	preds := make([]Predicate, 0, set.Len())
	for _, c := range set.All() {
		col, ok := Resolve(columns, c.Field())
		if !ok {
			return nil, &UnknownFieldError{Field: c.Field(), Selectable: src.Name()}
		}
		p, err := Build(col, c)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return And(preds...), nil
}

// Build constructs the predicate of one clause on a resolved column.
func Build(col Column, c filter.Clause) (Predicate, error) {
	if !applicable(c.Rule(), col.Type) {
		return nil, &UnsupportedTypeError{Field: col.Name, Operator: c.Operator(), Type: col.Type}
	}

	switch c.Rule() {
	case filter.RuleEqual:
		return compare(col, Equal, c.Value())
	case filter.RuleNotEqual:
		return compare(col, NotEqual, c.Value())
	case filter.RuleGreater:
		return compare(col, Greater, c.Value())
	case filter.RuleGreaterOrEqual:
		return compare(col, GreaterOrEqual, c.Value())
	case filter.RuleLess:
		return compare(col, Less, c.Value())
	case filter.RuleLessOrEqual:
		return compare(col, LessOrEqual, c.Value())

	case filter.RuleEqualFold:
		p, err := compare(col, Equal, c.Value())
		if err != nil {
			return nil, err
		}
		p.FoldCase = true
		if s, ok := p.Value.(string); ok {
			p.Value = strings.ToLower(s)
		}
		return p, nil

	case filter.RuleLike, filter.RuleNotLike:
		s, ok := c.Value().(string)
		if !ok {
			return nil, &ConversionError{Field: col.Name, Type: TypeString, Value: c.Value(), Err: fmt.Errorf("pattern must be a string")}
		}
		return &Pattern{Column: col, Pattern: s, Negated: c.Rule() == filter.RuleNotLike}, nil

	case filter.RuleIn, filter.RuleNotIn:
		raw := c.Values()
		values := make([]any, len(raw))
		for i, v := range raw {
			cv, err := coerceColumn(col, v)
			if err != nil {
				return nil, err
			}
			values[i] = cv
		}
		return &Membership{Column: col, Values: values, Negated: c.Rule() == filter.RuleNotIn}, nil

	case filter.RuleNull:
		isNull, _ := c.Value().(bool)
		return &NullCheck{Column: col, Null: isNull}, nil
	case filter.RuleIsNull:
		return &NullCheck{Column: col, Null: true}, nil
	case filter.RuleIsNotNull:
		return &NullCheck{Column: col, Null: false}, nil

	case filter.RuleIsTrue:
		return &Comparison{Column: col, Op: Equal, Value: true}, nil
	case filter.RuleIsFalse:
		return &Comparison{Column: col, Op: Equal, Value: false}, nil
	}

	return nil, fmt.Errorf("query: no construction rule for operator %q", c.Operator())
}

func compare(col Column, op CompareOp, v any) (*Comparison, error) {
	cv, err := coerceColumn(col, v)
	if err != nil {
		return nil, err
	}
	return &Comparison{Column: col, Op: op, Value: cv}, nil
}

// applicable reports whether rule may be used on a column of type typ.
// Columns of unknown type accept every rule.
func applicable(rule filter.Rule, typ Type) bool {
	if typ == TypeUnknown {
		return true
	}
	switch rule {
	case filter.RuleGreater, filter.RuleGreaterOrEqual, filter.RuleLess, filter.RuleLessOrEqual:
		return typ != TypeBoolean
	case filter.RuleEqualFold, filter.RuleLike, filter.RuleNotLike:
		return typ == TypeString
	case filter.RuleIsTrue, filter.RuleIsFalse:
		return typ == TypeBoolean
	case filter.RuleIn, filter.RuleNotIn:
		return typ != TypeBoolean
	}
	return true
}

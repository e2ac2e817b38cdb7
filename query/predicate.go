package query

import (
	"fmt"
	"strings"
)

// Predicate is a boolean expression over columns of a selectable.
// Backends render or evaluate predicates with a type switch over the
// concrete types of this package.
type Predicate interface {
	// String returns a readable, dialect-neutral form for logs and tests.
	String() string

	predicateMarker()
}

// CompareOp is a binary comparison.
type CompareOp int

const (
	Equal CompareOp = iota
	NotEqual
	Greater
	GreaterOrEqual
	Less
	LessOrEqual
)

// Symbol returns the SQL symbol of the comparison.
func (op CompareOp) Symbol() string {
	switch op {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	}
	return "?"
}

// Matches reports whether cmp, the result of comparing a column value with
// the operand (-1, 0, 1), satisfies op.
func (op CompareOp) Matches(cmp int) bool {
	switch op {
	case Equal:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case Greater:
		return cmp > 0
	case GreaterOrEqual:
		return cmp >= 0
	case Less:
		return cmp < 0
	case LessOrEqual:
		return cmp <= 0
	}
	return false
}

// Comparison compares a column with a value already coerced to the column type.
// FoldCase compares strings case-insensitively.
type Comparison struct {
	Column   Column
	Op       CompareOp
	Value    any
	FoldCase bool
}

// Membership tests whether a column value is one of Values.
// An empty Values list matches no row, or every row when Negated.
type Membership struct {
	Column  Column
	Values  []any
	Negated bool
}

// Pattern is a LIKE match; % and _ are the wildcards.
type Pattern struct {
	Column  Column
	Pattern string
	Negated bool
}

// NullCheck tests for NULL (Null=true) or NOT NULL.
type NullCheck struct {
	Column Column
	Null   bool
}

// Conjunction is the logical AND of its children.
type Conjunction struct {
	Children []Predicate
}

func (*Comparison) predicateMarker()  {}
func (*Membership) predicateMarker()  {}
func (*Pattern) predicateMarker()     {}
func (*NullCheck) predicateMarker()   {}
func (*Conjunction) predicateMarker() {}

func (p *Comparison) String() string {
	if p.FoldCase {
		return fmt.Sprintf("lower(%s) %s %s", p.Column.Name, p.Op.Symbol(), formatValue(p.Value))
	}
	return fmt.Sprintf("%s %s %s", p.Column.Name, p.Op.Symbol(), formatValue(p.Value))
}

func (p *Membership) String() string {
	if len(p.Values) == 0 {
		if p.Negated {
			return "1 = 1"
		}
		return "1 = 0"
	}
	values := make([]string, len(p.Values))
	for i, v := range p.Values {
		values[i] = formatValue(v)
	}
	op := "IN"
	if p.Negated {
		op = "NOT IN"
	}
	return fmt.Sprintf("%s %s (%s)", p.Column.Name, op, strings.Join(values, ", "))
}

func (p *Pattern) String() string {
	op := "LIKE"
	if p.Negated {
		op = "NOT LIKE"
	}
	return fmt.Sprintf("%s %s %s", p.Column.Name, op, formatValue(p.Pattern))
}

func (p *NullCheck) String() string {
	if p.Null {
		return p.Column.Name + " IS NULL"
	}
	return p.Column.Name + " IS NOT NULL"
}

func (p *Conjunction) String() string {
	parts := make([]string, len(p.Children))
	for i, c := range p.Children {
		if _, nested := c.(*Conjunction); nested {
			parts[i] = "(" + c.String() + ")"
			continue
		}
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

// And combines predicates by conjunction. Nil predicates are skipped and
// nested conjunctions are flattened. It returns nil when nothing remains
// and the predicate itself when only one remains.
func And(preds ...Predicate) Predicate {
	var children []Predicate
	for _, p := range preds {
		switch pp := p.(type) {
		case nil:
		case *Conjunction:
			children = append(children, pp.Children...)
		default:
			children = append(children, p)
		}
	}
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return &Conjunction{Children: children}
}

func formatValue(v any) string {
	switch vv := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(vv, "'", "''") + "'"
	case fmt.Stringer:
		return "'" + vv.String() + "'"
	}
	return fmt.Sprint(v)
}

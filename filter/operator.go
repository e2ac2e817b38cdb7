package filter

import (
	"slices"
	"strings"
)

// Operator is a filter operator token, the part of a key after the last separator.
type Operator string

const (
	// Binary comparison operators
	OpEq   Operator = "eq"
	OpNe   Operator = "ne"
	OpIEq  Operator = "ieq" // case-insensitive equality, string fields
	OpGt   Operator = "gt"
	OpGte  Operator = "gte"
	OpLt   Operator = "lt"
	OpLte  Operator = "lte"
	OpLike Operator = "like"

	OpNotLike Operator = "not_like"

	// Membership operators, operand is a list
	OpIn    Operator = "in"
	OpNotIn Operator = "not_in"

	// Null check with boolean intent: isnull=true / isnull=false
	OpIsNull Operator = "isnull"

	// Unary operators, operand is ignored
	OpNull    Operator = "is_null"
	OpNotNull Operator = "is_not_null"
	OpTrue    Operator = "is_true"
	OpFalse   Operator = "is_false"
)

// Separator delimits the field name from the operator in a filter key.
// Field names must not end with an operator token preceded by Separator.
const Separator = "__"

// DefaultOperator applies to keys without a separator.
const DefaultOperator = OpEq

// Operand describes the value shape an operator accepts.
type Operand int

const (
	OperandScalar Operand = iota // single literal value
	OperandString                // single string (patterns, case-folded equality)
	OperandList                  // slice of literal values
	OperandBool                  // boolean intent
	OperandNone                  // no value, anything given is discarded
)

func (o Operand) String() string {
	switch o {
	case OperandScalar:
		return "scalar"
	case OperandString:
		return "string"
	case OperandList:
		return "list"
	case OperandBool:
		return "boolean"
	case OperandNone:
		return "none"
	}
	return "unknown"
}

// Rule identifies the predicate construction rule an operator maps to.
// The applicator switches over rules exhaustively.
type Rule int

const (
	RuleEqual Rule = iota + 1
	RuleNotEqual
	RuleEqualFold
	RuleGreater
	RuleGreaterOrEqual
	RuleLess
	RuleLessOrEqual
	RuleLike
	RuleNotLike
	RuleIn
	RuleNotIn
	RuleNull // null or not null depending on the boolean operand
	RuleIsNull
	RuleIsNotNull
	RuleIsTrue
	RuleIsFalse
)

// OperatorInfo is a registry entry.
type OperatorInfo struct {
	Operator Operator
	Operand  Operand
	Rule     Rule
}

// Unary reports whether the operator ignores its value.
func (i OperatorInfo) Unary() bool {
	return i.Operand == OperandNone
}

var registry = map[Operator]OperatorInfo{
	OpEq:      {Operator: OpEq, Operand: OperandScalar, Rule: RuleEqual},
	OpNe:      {Operator: OpNe, Operand: OperandScalar, Rule: RuleNotEqual},
	OpIEq:     {Operator: OpIEq, Operand: OperandString, Rule: RuleEqualFold},
	OpGt:      {Operator: OpGt, Operand: OperandScalar, Rule: RuleGreater},
	OpGte:     {Operator: OpGte, Operand: OperandScalar, Rule: RuleGreaterOrEqual},
	OpLt:      {Operator: OpLt, Operand: OperandScalar, Rule: RuleLess},
	OpLte:     {Operator: OpLte, Operand: OperandScalar, Rule: RuleLessOrEqual},
	OpLike:    {Operator: OpLike, Operand: OperandString, Rule: RuleLike},
	OpNotLike: {Operator: OpNotLike, Operand: OperandString, Rule: RuleNotLike},
	OpIn:      {Operator: OpIn, Operand: OperandList, Rule: RuleIn},
	OpNotIn:   {Operator: OpNotIn, Operand: OperandList, Rule: RuleNotIn},
	OpIsNull:  {Operator: OpIsNull, Operand: OperandBool, Rule: RuleNull},
	OpNull:    {Operator: OpNull, Operand: OperandNone, Rule: RuleIsNull},
	OpNotNull: {Operator: OpNotNull, Operand: OperandNone, Rule: RuleIsNotNull},
	OpTrue:    {Operator: OpTrue, Operand: OperandNone, Rule: RuleIsTrue},
	OpFalse:   {Operator: OpFalse, Operand: OperandNone, Rule: RuleIsFalse},
}

// accepted is the sorted operator list reported by UnknownOperatorError.
var accepted = func() []Operator {
	ops := make([]Operator, 0, len(registry))
	for op := range registry {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}()

// Lookup returns the registry entry for op. Tokens are case-insensitive.
func Lookup(op Operator) (OperatorInfo, bool) {
	info, ok := registry[Operator(strings.ToLower(string(op)))]
	return info, ok
}

// Operators returns all supported operators in lexical order.
func Operators() []Operator {
	return slices.Clone(accepted)
}

package filter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownOperator indicates an operator token outside the registry.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrInvalidOperand indicates a value whose shape does not fit its operator.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrInvalidKey indicates a key that cannot be split into field and operator.
	ErrInvalidKey = errors.New("invalid filter key")
)

// UnknownOperatorError reports a key whose operator is not supported.
// No partial filter set is produced when it is returned.
type UnknownOperatorError struct {
	Key      string
	Operator Operator
	Accepted []Operator
}

func (e *UnknownOperatorError) Error() string {
	names := make([]string, len(e.Accepted))
	for i, op := range e.Accepted {
		names[i] = string(op)
	}
	return fmt.Sprintf("filter: unknown operator %q in key %q (accepted: %s)",
		e.Operator, e.Key, strings.Join(names, ", "))
}

func (e *UnknownOperatorError) Unwrap() error { return ErrUnknownOperator }

// InvalidOperandError reports a value that does not match the operator's operand shape.
type InvalidOperandError struct {
	Key      string
	Operator Operator
	Value    any
	Expected Operand
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("filter: operator %q in key %q expects a %s operand, got %T",
		e.Operator, e.Key, e.Expected, e.Value)
}

func (e *InvalidOperandError) Unwrap() error { return ErrInvalidOperand }

// InvalidKeyError reports a malformed key, e.g. one with an empty field name.
type InvalidKeyError struct {
	Key    string
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("filter: invalid key %q: %s", e.Key, e.Reason)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

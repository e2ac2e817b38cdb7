package filter

import (
	"net/url"
	"slices"
	"strings"
)

// Reserved query-string parameters. FromValues skips them; they carry paging.
const (
	ParamLimit  = "_limit"
	ParamOffset = "_offset"
	ParamOrder  = "_order"
	ParamDesc   = "_desc"
)

// IsReserved reports whether key is a reserved paging parameter.
func IsReserved(key string) bool {
	switch key {
	case ParamLimit, ParamOffset, ParamOrder, ParamDesc:
		return true
	}
	return false
}

// Param is one key/value pair of an ordered filter mapping.
type Param struct {
	Key   string
	Value any
}

// SplitKey splits key into field and operator on the last Separator.
// A key without separator uses DefaultOperator. The operator is lowercased.
//
// Splitting never falls back to treating the whole key as a field name:
// "a__b" with an unknown operator "b" is an error.
func SplitKey(key string) (string, Operator, error) {
	idx := strings.LastIndex(key, Separator)
	if idx < 0 {
		if key == "" {
			return "", "", &InvalidKeyError{Key: key, Reason: "empty key"}
		}
		return key, DefaultOperator, nil
	}

	field := key[:idx]
	op := Operator(strings.ToLower(key[idx+len(Separator):]))
	if field == "" {
		return "", "", &InvalidKeyError{Key: key, Reason: "empty field name"}
	}
	if _, ok := Lookup(op); !ok {
		return "", "", &UnknownOperatorError{Key: key, Operator: op, Accepted: Operators()}
	}
	return field, op, nil
}

// Build compiles a mapping into a Set.
// Go maps are unordered, so clauses are ordered by key to keep generated
// queries reproducible. Use BuildParams to control the order.
func Build(mapping map[string]any) (Set, error) {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	params := make([]Param, len(keys))
	for i, k := range keys {
		params[i] = Param{Key: k, Value: mapping[k]}
	}
	return BuildParams(params...)
}

// BuildParams compiles params into a Set preserving their order.
// The first invalid entry aborts compilation.
func BuildParams(params ...Param) (Set, error) {
	clauses := make([]Clause, 0, len(params))
	for _, p := range params {
		c, err := buildClause(p.Key, p.Value)
		if err != nil {
			return Set{}, err
		}
		clauses = append(clauses, c)
	}
	return Set{clauses: clauses}, nil
}

func buildClause(key string, value any) (Clause, error) {
	field, op, err := SplitKey(key)
	if err != nil {
		return Clause{}, err
	}
	c, err := NewClause(field, op, value)
	if err != nil {
		// report the key as the caller wrote it
		switch e := err.(type) {
		case *InvalidOperandError:
			e.Key = key
		case *InvalidKeyError:
			e.Key = key
		}
		return Clause{}, err
	}
	return c, nil
}

// FromValues compiles URL query values, e.g. "age__gte=18&id__in=1,3".
//
// Keys are processed in lexical order, repeated keys yield one clause per value,
// list operators split comma-separated values and reserved paging
// parameters are skipped.
func FromValues(values url.Values) (Set, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		if !IsReserved(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var params []Param
	for _, k := range keys {
		_, op, err := SplitKey(k)
		if err != nil {
			return Set{}, err
		}
		info, _ := Lookup(op)
		for _, raw := range values[k] {
			var v any = raw
			if info.Operand == OperandList {
				v = splitList(raw)
			}
			params = append(params, Param{Key: k, Value: v})
		}
	}
	return BuildParams(params...)
}

// splitList splits a comma-separated value. An empty string is an empty list.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

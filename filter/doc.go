// Package filter compiles flat filter mappings into ordered clause sets.
//
// A filter key is a field name followed by an operator, joined with a double
// underscore. Keys without an operator mean equality:
//
//	set, err := filter.Build(map[string]any{
//	    "age__gte":   18,
//	    "name__like": "A%",
//	    "id":         7, // id__eq
//	})
//
// The operator vocabulary is closed. An unknown operator is always an error,
// never a field name containing the separator:
//
//	_, err := filter.Build(map[string]any{"age__bogus": 5})
//	errors.Is(err, filter.ErrUnknownOperator) // true
//
// Keys are split on the last separator, so "field_with__underscore__eq"
// names the field "field_with__underscore". A field name may contain the
// separator only if the part after its last separator is not an operator
// token; such names must always be written with an explicit operator.
//
// # Operators
//
// Binary operators take a scalar value:
//   - eq, ne, gt, gte, lt, lte
//   - ieq (case-insensitive equality), like, not_like: string values,
//     wildcards are passed through verbatim
//
// List operators take a slice (an empty slice matches no row for in):
//   - in, not_in
//
// Null checks:
//   - isnull takes a boolean: true for IS NULL, false for IS NOT NULL
//   - is_null, is_not_null, is_true, is_false ignore their value
//
// Operand shapes are checked here; field names and column types are checked
// by the query package when the set is applied to a selectable.
//
// # Query strings
//
// FromValues reads url.Values. List operands are comma separated and the
// reserved paging parameters (_limit, _offset, _order, _desc) are skipped:
//
//	values, _ := url.ParseQuery("delivery_id__eq=55&u_id__in=1,3&_limit=10")
//	set, err := filter.FromValues(values)
//
// # Wire format
//
// Encode and Decode move a compiled set across process boundaries as
// zstd-compressed MessagePack. Decode validates every clause again.
package filter

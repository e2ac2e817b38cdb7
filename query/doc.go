// Package query applies compiled filter sets to selectables.
//
// A selectable is any relation with named columns that can return a refined
// copy of itself for a predicate: the sqlgen package renders SQL, the arrowq
// package filters Arrow records in memory.
//
//	set, err := filter.Build(map[string]any{"age__gte": 18, "name__like": "A%"})
//	if err != nil {
//	    return err
//	}
//	users := sqlgen.Table("users", query.Col("id", query.TypeInteger),
//	    query.Col("name", query.TypeString), query.Col("age", query.TypeInteger))
//	adults, err := query.Query(users, set)
//	// adults.String(): SELECT * FROM users WHERE age >= 18 AND name LIKE 'A%'
//
// Each clause is turned into a Predicate by the construction rule of its
// operator. Values are coerced to the column type first, so "18" from a query
// string compares as an integer. Predicates are combined by conjunction and
// handed to the selectable's Where method once.
//
// Errors are never downgraded to a broader query: an unknown field,
// an operator that does not fit the column type or an unconvertible value
// fails the whole call.
package query

// Package sqlgen renders filtered selectables as DuckDB SQL.
//
// A Select is built over a table or a subquery and refined with
// query.Query. String renders values inline for logs and debugging;
// Build and Query bind them as ? placeholders.
//
//	users, err := sqlgen.Reflect(ctx, db, "users")
//	if err != nil {
//	    return err
//	}
//	adults, err := query.Query(users, set)
//	if err != nil {
//	    return err
//	}
//	rows, err := adults.Query(ctx, db)
//
// Identifiers are double-quoted only when they are not plain identifiers
// or collide with a reserved word. An empty IN list renders as 1 = 0 and an
// empty NOT IN list as 1 = 1.
package sqlgen

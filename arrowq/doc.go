// Package arrowq filters Arrow record batches in memory.
//
// A Table wraps records of one schema. Filtering with query.Query returns a
// view; Scan evaluates the view and streams zero-copy slices of the
// matching rows:
//
//	users, err := arrowq.NewTable("users", schema, records...)
//	if err != nil {
//	    return err
//	}
//	defer users.Release()
//
//	adults, err := query.Query(users, set)
//	if err != nil {
//	    return err
//	}
//	reader, err := adults.Scan(ctx)
//
// Predicates follow SQL semantics: a null cell fails every predicate except
// null checks, so NOT IN skips nulls. An empty NOT IN list matches every
// row, nulls included. Ordering puts nulls last.
package arrowq

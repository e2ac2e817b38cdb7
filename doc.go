// Package qfilter compiles "field__operator" filter mappings into
// predicates and applies them to queryable relations.
//
// A mapping such as {"age__gte": 18, "name__like": "A%"} or a query string
// such as "age__gte=18&name__like=A%25" is compiled by the filter package
// into a Set of validated clauses. The query package resolves each clause
// against the columns of a selectable, coerces its value to the column type
// and hands the conjunction of the clause predicates to the selectable.
// Selectables are copy-on-filter: the base is never modified.
//
// Two selectables are provided:
//   - sqlgen.Select renders DuckDB SQL and runs it through database/sql
//   - arrowq.Table filters Arrow records in memory
//
// # Quick Start
//
//	users := sqlgen.Table("users",
//	    query.Col("id", query.TypeInteger),
//	    query.Col("name", query.TypeString),
//	    query.Col("age", query.TypeInteger),
//	)
//	adults, err := qfilter.Filter(users, map[string]any{"age__gte": 18, "name__like": "A%"})
//	if err != nil {
//	    return err // unknown operator, bad operand or unknown field
//	}
//	fmt.Println(adults) // SELECT * FROM users WHERE age >= 18 AND name LIKE 'A%'
//
// # Flight Server
//
// Catalog tables can be served over Arrow Flight. Tickets carry the table
// name, the encoded filter set and the page; GetFlightInfo accepts a
// "table?query" command and returns a ticket for the filtered view.
//
//	cat, err := qfilter.NewCatalogBuilder().
//	    Table("users", schema, records...).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	config := qfilter.ServerConfig{Catalog: cat}
//	grpcServer := grpc.NewServer(qfilter.ServerOptions(config)...)
//	if err := qfilter.NewServer(grpcServer, config); err != nil {
//	    log.Fatal(err)
//	}
//
// # Operators
//
// eq (default), ne, ieq, gt, gte, lt, lte, like, not_like, in, not_in,
// isnull, is_null, is_not_null, is_true and is_false. The operator is the
// text after the last "__" of the key.
package qfilter

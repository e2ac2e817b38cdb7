package sqlgen

import "strings"

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// quoteIdentifier double-quotes name when it is not a plain identifier.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// quoteQualified quotes each dot-separated part of a table reference.
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}
	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}
	_, reserved := reservedWords[strings.ToUpper(name)]
	return reserved
}

var reservedWords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "WHERE": {}, "AND": {}, "OR": {}, "NOT": {},
	"NULL": {}, "TRUE": {}, "FALSE": {}, "TABLE": {}, "JOIN": {}, "ON": {},
	"AS": {}, "IN": {}, "IS": {}, "LIKE": {}, "BETWEEN": {}, "CASE": {},
	"WHEN": {}, "THEN": {}, "ELSE": {}, "END": {}, "ORDER": {}, "BY": {},
	"GROUP": {}, "HAVING": {}, "LIMIT": {}, "OFFSET": {}, "UNION": {},
	"ALL": {}, "DISTINCT": {}, "VALUES": {}, "DEFAULT": {}, "CHECK": {},
	"ASC": {}, "DESC": {}, "CAST": {}, "DATE": {}, "TIME": {}, "TIMESTAMP": {},
	"USER": {},
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

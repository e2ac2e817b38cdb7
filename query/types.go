package query

import "strings"

// Type is the logical type of a column, used for operator applicability
// checks and value coercion.
type Type int

const (
	TypeUnknown Type = iota
	TypeBoolean
	TypeInteger
	TypeFloat
	TypeString
	TypeDate
	TypeTimestamp
	TypeBinary
)

func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "BOOLEAN"
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	case TypeDate:
		return "DATE"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeBinary:
		return "BINARY"
	}
	return "UNKNOWN"
}

// Column is a named column of a selectable.
type Column struct {
	Name     string
	Type     Type
	Nullable bool
}

// Col is shorthand for a nullable column.
func Col(name string, typ Type) Column {
	return Column{Name: name, Type: typ, Nullable: true}
}

// Resolve finds name among columns: an exact match wins, otherwise the
// first case-insensitive match is returned.
func Resolve(columns []Column, name string) (Column, bool) {
	for _, c := range columns {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

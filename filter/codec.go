package filter

import (
	"fmt"

	"github.com/hugr-lab/qfilter/internal/msgpack"
	"github.com/hugr-lab/qfilter/internal/serialize"
)

// wireClause is the MessagePack form of a clause.
type wireClause struct {
	Field    string `msgpack:"f"`
	Operator string `msgpack:"o"`
	Value    any    `msgpack:"v,omitempty"`
}

// Encode serializes s as zstd-compressed MessagePack, e.g. for shipping a
// compiled filter set inside a Flight ticket. An empty set encodes to nil.
func Encode(s Set) ([]byte, error) {
	if s.Empty() {
		return nil, nil
	}
	wire := make([]wireClause, len(s.clauses))
	for i, c := range s.clauses {
		wire[i] = wireClause{Field: c.field, Operator: string(c.info.Operator), Value: c.value}
	}
	data, err := msgpack.Encode(wire)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	out, err := serialize.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return out, nil
}

// Decode restores a set produced by Encode. Every clause is validated again,
// so decoded sets are subject to the same errors as Build.
func Decode(data []byte) (Set, error) {
	if len(data) == 0 {
		return Set{}, nil
	}
	raw, err := serialize.Decompress(data)
	if err != nil {
		return Set{}, fmt.Errorf("filter: %w", err)
	}
	var wire []wireClause
	if err := msgpack.Decode(raw, &wire); err != nil {
		return Set{}, fmt.Errorf("filter: %w", err)
	}

	clauses := make([]Clause, 0, len(wire))
	for _, w := range wire {
		c, err := NewClause(w.Field, Operator(w.Operator), w.Value)
		if err != nil {
			return Set{}, err
		}
		clauses = append(clauses, c)
	}
	return Set{clauses: clauses}, nil
}

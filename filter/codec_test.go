package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/hugr-lab/qfilter/internal/msgpack"
	"github.com/hugr-lab/qfilter/internal/serialize"
)

func TestEncodeDecode(t *testing.T) {
	set, err := BuildParams(
		Param{Key: "age__gte", Value: 18},
		Param{Key: "name__like", Value: "A%"},
		Param{Key: "id__in", Value: []int{1, 3}},
		Param{Key: "l_id__isnull", Value: false},
		Param{Key: "active__is_true"},
		Param{Key: "created__gt", Value: time.Date(2016, 1, 1, 1, 0, 0, 0, time.UTC)},
	)
	if err != nil {
		t.Fatalf("BuildParams failed: %v", err)
	}

	data, err := Encode(set)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if decoded.Len() != set.Len() {
		t.Fatalf("expected %d clauses, got %d", set.Len(), decoded.Len())
	}
	// time zones may differ after decoding, compare the time separately
	want, got := set.Clauses(), decoded.Clauses()
	for i := 0; i < 5; i++ {
		if got[i].String() != want[i].String() {
			t.Errorf("clause %d = %q, want %q", i, got[i], want[i])
		}
	}

	created := decoded.Clauses()[5].Value().(time.Time)
	if !created.Equal(time.Date(2016, 1, 1, 1, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected time %v", created)
	}
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(Set{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil data, got %d bytes", len(data))
	}

	set, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !set.Empty() {
		t.Errorf("expected empty set")
	}
}

func TestDecodeValidates(t *testing.T) {
	raw, err := msgpack.Encode([]wireClause{{Field: "age", Operator: "between", Value: 1}})
	if err != nil {
		t.Fatalf("msgpack encode failed: %v", err)
	}
	data, err := serialize.Compress(raw)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}

	_, err = Decode(data)
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not zstd")); err == nil {
		t.Fatal("expected error for corrupt data")
	}
}

package attrs

import (
	"errors"
	"testing"

	"github.com/sanonone/grafodb/pkg/core/types"
)

func TestSetAndGet(t *testing.T) {
	s := NewStore(4, 2)

	// 1. Positional write over a subset; untouched positions stay nil.
	err := s.Set(types.Vertex, "name", []int{0, 2}, []types.Value{"ada", "carol"})
	if err != nil {
		t.Fatal(err)
	}
	values, err := s.Get(types.Vertex, "name", []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if values[0] != "ada" || values[1] != nil || values[2] != "carol" {
		t.Errorf("Get = %v", values)
	}

	// 2. Vertex and edge columns are independent namespaces.
	if s.Has(types.Edge, "name") {
		t.Error("edge kind should not see the vertex column")
	}
	if _, err := s.Get(types.Edge, "name", []int{0}); !errors.Is(err, types.ErrAttributeNotFound) {
		t.Errorf("expected ErrAttributeNotFound, got %v", err)
	}

	// 3. Out-of-range element indices are rejected.
	if err := s.Set(types.Vertex, "name", []int{4}, []types.Value{"x"}); err == nil {
		t.Error("expected an error for an out-of-range index")
	}
	if _, err := s.Get(types.Vertex, "name", []int{-1}); err == nil {
		t.Error("expected an error for a negative index")
	}
}

func TestNames(t *testing.T) {
	s := NewStore(2, 2)
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(s.Set(types.Vertex, "b", []int{0}, []types.Value{1}))
	must(s.Set(types.Vertex, "a", []int{0}, []types.Value{2}))
	names := s.Names(types.Vertex)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names = %v, want [a b]", names)
	}
}

func TestLookupEqualString(t *testing.T) {
	s := NewStore(5, 0)
	err := s.Set(types.Vertex, "name", []int{0, 1, 2, 3, 4},
		[]types.Value{"bob", "ada", "bob", "eve", "ada"})
	if err != nil {
		t.Fatal(err)
	}

	// 1. Duplicates resolve to the lowest index.
	idx, ok := s.LookupEqual(types.Vertex, "name", "ada")
	if !ok || idx != 1 {
		t.Errorf("LookupEqual(ada) = %d, %v; want 1, true", idx, ok)
	}

	// 2. Missing value and missing attribute both miss.
	if _, ok := s.LookupEqual(types.Vertex, "name", "zed"); ok {
		t.Error("LookupEqual should miss on an absent value")
	}
	if _, ok := s.LookupEqual(types.Vertex, "age", "ada"); ok {
		t.Error("LookupEqual should miss on an unknown attribute")
	}
}

func TestLookupEqualNumeric(t *testing.T) {
	s := NewStore(4, 0)
	err := s.Set(types.Vertex, "age", []int{0, 1, 2, 3}, []types.Value{30, 22, 30, 41})
	if err != nil {
		t.Fatal(err)
	}

	// Int and float operands land on the same comparison domain.
	idx, ok := s.LookupEqual(types.Vertex, "age", 30)
	if !ok || idx != 0 {
		t.Errorf("LookupEqual(30) = %d, %v; want 0, true", idx, ok)
	}
	idx, ok = s.LookupEqual(types.Vertex, "age", 22.0)
	if !ok || idx != 1 {
		t.Errorf("LookupEqual(22.0) = %d, %v; want 1, true", idx, ok)
	}
	if _, ok := s.LookupEqual(types.Vertex, "age", 99); ok {
		t.Error("LookupEqual should miss on an absent value")
	}
}

func TestOverwriteReindexes(t *testing.T) {
	s := NewStore(2, 0)
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(s.Set(types.Vertex, "name", []int{0, 1}, []types.Value{"old", "keep"}))
	must(s.Set(types.Vertex, "name", []int{0}, []types.Value{"new"}))

	// The stale index entry must be gone, the fresh one live.
	if _, ok := s.LookupEqual(types.Vertex, "name", "old"); ok {
		t.Error("stale inverted index entry survived an overwrite")
	}
	idx, ok := s.LookupEqual(types.Vertex, "name", "new")
	if !ok || idx != 0 {
		t.Errorf("LookupEqual(new) = %d, %v; want 0, true", idx, ok)
	}

	// Same story for the numeric tree, including a type change.
	must(s.Set(types.Vertex, "name", []int{1}, []types.Value{7}))
	if _, ok := s.LookupEqual(types.Vertex, "name", "keep"); ok {
		t.Error("stale string entry survived a type-changing overwrite")
	}
	idx, ok = s.LookupEqual(types.Vertex, "name", 7)
	if !ok || idx != 1 {
		t.Errorf("LookupEqual(7) = %d, %v; want 1, true", idx, ok)
	}
}

func TestSetLengthMismatch(t *testing.T) {
	s := NewStore(2, 0)
	if err := s.Set(types.Vertex, "x", []int{0, 1}, []types.Value{1}); err == nil {
		t.Error("expected an error for mismatched index/value lengths")
	}
}

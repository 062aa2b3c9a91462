// Package attrs implements the columnar attribute store of GrafoDB.
//
// Every attribute is a column with one value per element (vertex or edge),
// in element index order. Alongside the columns the store maintains two
// secondary indexes: an inverted index for string values and a B-Tree for
// numeric values. Those indexes back the equality fast path used by
// query.Find; scans never need them.
package attrs

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/sanonone/grafodb/pkg/core/types"
	"github.com/tidwall/btree"
)

// numericItem associates a numeric attribute value with an element index
// inside the B-Tree index.
type numericItem struct {
	Value float64
	Index int
}

// numericItemLess sorts items by value, tie-broken on element index to keep
// items distinct and to make the lowest index the first hit for a value.
func numericItemLess(a, b numericItem) bool {
	if a.Value < b.Value {
		return true
	}
	if a.Value > b.Value {
		return false
	}
	return a.Index < b.Index
}

// kindState holds the columns and secondary indexes of one element kind.
type kindState struct {
	count    int
	columns  map[string][]types.Value
	inverted map[string]map[string]map[int]struct{}
	numeric  map[string]*btree.BTreeG[numericItem]
}

func newKindState(count int) *kindState {
	return &kindState{
		count:    count,
		columns:  make(map[string][]types.Value),
		inverted: make(map[string]map[string]map[int]struct{}),
		numeric:  make(map[string]*btree.BTreeG[numericItem]),
	}
}

// Store holds the vertex and edge attribute columns of a single graph.
// It is sized at construction from the graph's element counts; mutating the
// graph invalidates the store.
type Store struct {
	mu    sync.RWMutex
	kinds [2]*kindState
}

// NewStore creates an empty attribute store for a graph with the given
// vertex and edge counts.
func NewStore(vertexCount, edgeCount int) *Store {
	return &Store{
		kinds: [2]*kindState{newKindState(vertexCount), newKindState(edgeCount)},
	}
}

func (s *Store) state(kind types.Kind) *kindState {
	if kind == types.Edge {
		return s.kinds[1]
	}
	return s.kinds[0]
}

// Names returns the attribute names defined for the kind, sorted.
func (s *Store) Names(kind types.Kind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state(kind)
	names := make([]string, 0, len(st.columns))
	for name := range st.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the attribute exists for the kind.
func (s *Store) Has(kind types.Kind, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.state(kind).columns[name]
	return ok
}

// Get returns the attribute values at the given element indices, in order.
// Unknown attribute names fail with types.ErrAttributeNotFound.
func (s *Store) Get(kind types.Kind, name string, indices []int) ([]types.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state(kind)
	col, ok := st.columns[name]
	if !ok {
		return nil, fmt.Errorf("%s attribute '%s': %w", kind, name, types.ErrAttributeNotFound)
	}
	out := make([]types.Value, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= st.count {
			return nil, fmt.Errorf("%s index %d out of range", kind, idx)
		}
		out[i] = col[idx]
	}
	return out, nil
}

// Set writes values positionally: values[i] is stored at element indices[i].
// The column is created on first write, nil-filled for untouched elements.
// Secondary indexes are kept in sync, removing stale entries on overwrite.
func (s *Store) Set(kind types.Kind, name string, indices []int, values []types.Value) error {
	if len(indices) != len(values) {
		return fmt.Errorf("index/value length mismatch: %d vs %d", len(indices), len(values))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(kind)
	col, ok := st.columns[name]
	if !ok {
		col = make([]types.Value, st.count)
		st.columns[name] = col
	}
	for i, idx := range indices {
		if idx < 0 || idx >= st.count {
			return fmt.Errorf("%s index %d out of range", kind, idx)
		}
		st.unindex(name, idx, col[idx])
		col[idx] = values[i]
		st.index(name, idx, values[i])
	}
	return nil
}

// LookupEqual returns the smallest element index whose attribute value
// equals the given value, via the secondary indexes. The second return is
// false when the attribute is unknown, the value type is not indexed, or no
// element matches. On a full view this agrees with a naive first-match scan.
func (s *Store) LookupEqual(kind types.Kind, name string, value types.Value) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state(kind)
	switch v := value.(type) {
	case string:
		set, ok := st.inverted[name][v]
		if !ok || len(set) == 0 {
			return 0, false
		}
		best := -1
		for idx := range set {
			if best < 0 || idx < best {
				best = idx
			}
		}
		return best, true
	default:
		f, ok := types.AsFloat(value)
		if !ok {
			return 0, false
		}
		tree, ok := st.numeric[name]
		if !ok {
			return 0, false
		}
		found, hit := -1, false
		tree.Ascend(numericItem{Value: f, Index: math.MinInt}, func(item numericItem) bool {
			if item.Value != f {
				return false
			}
			found, hit = item.Index, true
			return false
		})
		return found, hit
	}
}

// index records a value in the secondary indexes. Only strings and numbers
// are indexed; other types are scan-only.
func (st *kindState) index(name string, idx int, value types.Value) {
	switch v := value.(type) {
	case string:
		byValue, ok := st.inverted[name]
		if !ok {
			byValue = make(map[string]map[int]struct{})
			st.inverted[name] = byValue
		}
		set, ok := byValue[v]
		if !ok {
			set = make(map[int]struct{})
			byValue[v] = set
		}
		set[idx] = struct{}{}
	default:
		f, ok := types.AsFloat(value)
		if !ok {
			return
		}
		tree, ok := st.numeric[name]
		if !ok {
			tree = btree.NewBTreeG[numericItem](numericItemLess)
			st.numeric[name] = tree
		}
		tree.Set(numericItem{Value: f, Index: idx})
	}
}

// unindex removes the entry a previous write created for this element.
func (st *kindState) unindex(name string, idx int, old types.Value) {
	if old == nil {
		return
	}
	switch v := old.(type) {
	case string:
		if set, ok := st.inverted[name][v]; ok {
			delete(set, idx)
			if len(set) == 0 {
				delete(st.inverted[name], v)
			}
		}
	default:
		f, ok := types.AsFloat(old)
		if !ok {
			return
		}
		if tree, ok := st.numeric[name]; ok {
			tree.Delete(numericItem{Value: f, Index: idx})
		}
	}
}

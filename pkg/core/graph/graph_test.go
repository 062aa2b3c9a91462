package graph

import (
	"errors"
	"slices"
	"testing"

	"github.com/sanonone/grafodb/pkg/core/types"
)

func TestNewValidation(t *testing.T) {
	// Endpoints must stay inside 0..n-1.
	if _, err := NewUndirected(3, [][2]int{{0, 3}}); err == nil {
		t.Error("expected an error for an endpoint outside the vertex range")
	}
	if _, err := NewDirected(2, [][2]int{{-1, 0}}); err == nil {
		t.Error("expected an error for a negative endpoint")
	}

	g, err := NewUndirected(0, nil)
	if err != nil {
		t.Fatalf("empty graph should be valid: %v", err)
	}
	if g.VertexCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty graph reports %d vertices, %d edges", g.VertexCount(), g.EdgeCount())
	}
}

func TestIncidentUndirected(t *testing.T) {
	// Triangle 0-1-2 plus a pendant edge 2-3 and a loop on 3.
	g, err := NewUndirected(4, [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}, {3, 3}})
	if err != nil {
		t.Fatal(err)
	}

	// 1. Single vertex: every touching edge, sorted.
	got := g.Incident([]int{2}, types.ModeAll)
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Incident({2}) = %v, want [1 2 3]", got)
	}

	// 2. Several vertices: deduplicated union, still sorted.
	got = g.Incident([]int{0, 2}, types.ModeAll)
	if !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("Incident({0,2}) = %v, want [0 1 2 3]", got)
	}

	// 3. Loops appear once.
	got = g.Incident([]int{3}, types.ModeAll)
	if !slices.Equal(got, []int{3, 4}) {
		t.Errorf("Incident({3}) = %v, want [3 4]", got)
	}

	// 4. Out-of-range vertices contribute nothing.
	got = g.Incident([]int{-1, 99}, types.ModeAll)
	if len(got) != 0 {
		t.Errorf("Incident with invalid vertices = %v, want empty", got)
	}
}

func TestIncidentDirectedModes(t *testing.T) {
	// 0 -> 1, 1 -> 2, 2 -> 1
	g, err := NewDirected(3, [][2]int{{0, 1}, {1, 2}, {2, 1}})
	if err != nil {
		t.Fatal(err)
	}

	if got := g.Incident([]int{1}, types.ModeOut); !slices.Equal(got, []int{1}) {
		t.Errorf("ModeOut = %v, want [1]", got)
	}
	if got := g.Incident([]int{1}, types.ModeIn); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("ModeIn = %v, want [0 2]", got)
	}
	if got := g.Incident([]int{1}, types.ModeAll); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("ModeAll = %v, want [0 1 2]", got)
	}
}

func TestDegreeMetrics(t *testing.T) {
	// Undirected star 0-1, 0-2, 0-3 with a loop on 1.
	g, err := NewUndirected(4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 1}})
	if err != nil {
		t.Fatal(err)
	}

	values, err := g.Invoke(types.Vertex, "degree", []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	// A loop counts twice toward the undirected degree.
	want := []float64{3, 3, 1}
	for i, v := range values {
		if v.(float64) != want[i] {
			t.Errorf("degree[%d] = %v, want %v", i, v, want[i])
		}
	}

	// Directed chain 0 -> 1 -> 2.
	dg, err := NewDirected(3, [][2]int{{0, 1}, {1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	out, err := dg.Invoke(types.Vertex, "outdegree", []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	in, err := dg.Invoke(types.Vertex, "indegree", []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(float64) != 1 || out[2].(float64) != 0 {
		t.Errorf("outdegree = %v", out)
	}
	if in[0].(float64) != 0 || in[1].(float64) != 1 {
		t.Errorf("indegree = %v", in)
	}
}

func TestBetweennessOrdering(t *testing.T) {
	// Path 0-1-2-3-4: the middle vertex carries every shortest path.
	g, err := NewUndirected(5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	values, err := g.Invoke(types.Vertex, "betweenness", []int{0, 2, 4})
	if err != nil {
		t.Fatal(err)
	}
	end0, mid, end4 := values[0].(float64), values[1].(float64), values[2].(float64)
	if !(mid > end0 && mid > end4) {
		t.Errorf("betweenness middle=%v should exceed endpoints %v, %v", mid, end0, end4)
	}
	if end0 != 0 || end4 != 0 {
		t.Errorf("path endpoints should score zero, got %v and %v", end0, end4)
	}
}

func TestPagerankSums(t *testing.T) {
	g, err := NewDirected(3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	if err != nil {
		t.Fatal(err)
	}
	values, err := g.Invoke(types.Vertex, "pagerank", []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for _, v := range values {
		sum += v.(float64)
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("pagerank scores should sum to 1, got %v", sum)
	}
}

func TestEdgeMultiplicityMetrics(t *testing.T) {
	// Two parallel edges 0-1 (one reversed), a loop, and a plain edge.
	g, err := NewUndirected(3, [][2]int{{0, 1}, {1, 0}, {2, 2}, {1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	// 1. is_loop
	values, err := g.Invoke(types.Edge, "is_loop", []int{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	wantLoop := []bool{false, false, true, false}
	for i, v := range values {
		if v.(bool) != wantLoop[i] {
			t.Errorf("is_loop[%d] = %v, want %v", i, v, wantLoop[i])
		}
	}

	// 2. is_multiple: only the later copy of a parallel bundle.
	values, err = g.Invoke(types.Edge, "is_multiple", []int{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	wantMulti := []bool{false, true, false, false}
	for i, v := range values {
		if v.(bool) != wantMulti[i] {
			t.Errorf("is_multiple[%d] = %v, want %v", i, v, wantMulti[i])
		}
	}

	// 3. count_multiple counts the whole bundle for each member.
	values, err = g.Invoke(types.Edge, "count_multiple", []int{0, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	wantCount := []float64{2, 2, 1}
	for i, v := range values {
		if v.(float64) != wantCount[i] {
			t.Errorf("count_multiple[%d] = %v, want %v", i, v, wantCount[i])
		}
	}
}

func TestInvokeUnknownMetric(t *testing.T) {
	g, err := NewUndirected(2, [][2]int{{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Invoke(types.Vertex, "nope", []int{0}); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
	// Edge metrics are not visible from the vertex table.
	if _, err := g.Invoke(types.Vertex, "is_loop", []int{0}); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric for kind mismatch, got %v", err)
	}
}

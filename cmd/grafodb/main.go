// Command grafodb loads a graph definition from a YAML file and evaluates
// keyword queries against it from the command line.
//
// Usage:
//
//	grafodb -graph graph.yaml -kind vertex age_gt=25 gender=f
//	grafodb -graph graph.yaml -kind edge weight_ge=0.5
//
// Each positional argument is one keyword=operand predicate. Operands are
// parsed as int, then float, then string; list operators (_in, _notin)
// split the operand on commas.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sanonone/grafodb/pkg/core/types"
	"github.com/sanonone/grafodb/pkg/engine"
	"github.com/sanonone/grafodb/pkg/query"
)

// graphFile mirrors the YAML layout of a graph definition.
type graphFile struct {
	Directed    bool                     `yaml:"directed"`
	Vertices    int                      `yaml:"vertices"`
	Edges       [][2]int                 `yaml:"edges"`
	VertexAttrs map[string][]types.Value `yaml:"vertex_attrs"`
	EdgeAttrs   map[string][]types.Value `yaml:"edge_attrs"`
}

func main() {
	graphPath := flag.String("graph", "graph.yaml", "Path to the YAML graph definition")
	kindName := flag.String("kind", "vertex", "Element kind to query: vertex or edge")

	flag.Parse()

	var kind types.Kind
	switch *kindName {
	case "vertex":
		kind = types.Vertex
	case "edge":
		kind = types.Edge
	default:
		log.Fatalf("unknown kind '%s' (want vertex or edge)", *kindName)
	}

	db, err := loadGraph(*graphPath)
	if err != nil {
		log.Fatalf("cannot load graph: %v", err)
	}

	preds := make([]query.Predicate, 0, flag.NArg())
	for _, arg := range flag.Args() {
		p, err := parsePredicate(arg)
		if err != nil {
			log.Fatalf("bad predicate '%s': %v", arg, err)
		}
		preds = append(preds, p)
	}

	view := db.Vs()
	if kind == types.Edge {
		view = db.Es()
	}
	result, err := view.Where(preds...)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	for _, idx := range result.Indices() {
		fmt.Println(idx)
	}
}

// loadGraph reads the YAML definition and builds a database from it.
func loadGraph(path string) (*engine.DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def graphFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}

	db, err := engine.Open(engine.Options{
		VertexCount: def.Vertices,
		Edges:       def.Edges,
		Directed:    def.Directed,
	})
	if err != nil {
		return nil, err
	}

	for name, values := range def.VertexAttrs {
		if err := db.SetVertexAttr(name, values); err != nil {
			return nil, fmt.Errorf("vertex attribute '%s': %w", name, err)
		}
	}
	for name, values := range def.EdgeAttrs {
		if err := db.SetEdgeAttr(name, values); err != nil {
			return nil, fmt.Errorf("edge attribute '%s': %w", name, err)
		}
	}
	return db, nil
}

// parsePredicate turns a "keyword=operand" argument into a Predicate.
func parsePredicate(arg string) (query.Predicate, error) {
	pos := strings.Index(arg, "=")
	if pos <= 0 {
		return query.Predicate{}, fmt.Errorf("expected keyword=operand")
	}
	keyword, raw := arg[:pos], arg[pos+1:]

	_, op := query.CompileKeyword(keyword)
	if op == query.OpIn || op == query.OpNotIn {
		parts := strings.Split(raw, ",")
		list := make([]types.Value, len(parts))
		for i, part := range parts {
			list[i] = parseOperand(part)
		}
		return query.P(keyword, list), nil
	}
	return query.P(keyword, parseOperand(raw)), nil
}

// parseOperand interprets the raw text as int, then float, then string.
func parseOperand(raw string) types.Value {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

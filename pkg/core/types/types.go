// Package types holds the small shared definitions used by the graph store,
// the attribute store and the query engine.
package types

import "errors"

// Kind identifies which element set of a graph an index refers to.
type Kind int

const (
	Vertex Kind = iota
	Edge
)

// String returns a human-readable name for the kind, used in error messages
// and metric labels.
func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Edge:
		return "edge"
	default:
		return "unknown"
	}
}

// Mode selects which incident edges of a vertex are considered in a
// directed graph. Undirected graphs treat every mode as All.
type Mode int

const (
	ModeAll Mode = iota
	ModeOut
	ModeIn
)

// Value is an attribute value. Attribute columns are heterogeneous: numbers,
// strings and booleans all travel through the same column type.
type Value = any

// ErrAttributeNotFound is returned by attribute stores when the requested
// attribute name does not exist for the given element kind.
var ErrAttributeNotFound = errors.New("attribute not found")

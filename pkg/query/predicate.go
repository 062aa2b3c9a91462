// This file implements the predicate compiler: it turns keyword names like
// "age_gt", "weight" or "_betweenness_ge" into a subject and an operator.
// The compiler performs no I/O and is fully deterministic.
package query

import (
	"strings"

	"github.com/sanonone/grafodb/pkg/core/types"
)

// Op is a comparison operator parsed from a keyword suffix.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpIn
	OpNotIn
)

var opTokens = map[string]Op{
	"eq":    OpEq,
	"ne":    OpNe,
	"lt":    OpLt,
	"gt":    OpGt,
	"le":    OpLe,
	"ge":    OpGe,
	"in":    OpIn,
	"notin": OpNotIn,
}

// String returns the keyword token of the operator.
func (op Op) String() string {
	for tok, o := range opTokens {
		if o == op {
			return tok
		}
	}
	return "?"
}

// Predicate is one keyword criterion: a keyword name carrying the subject
// and operator, plus the operand to compare against.
type Predicate struct {
	Keyword string
	Operand types.Value
}

// P builds a Predicate; it exists to keep call sites short.
func P(keyword string, operand types.Value) Predicate {
	return Predicate{Keyword: keyword, Operand: operand}
}

// CompileKeyword splits a keyword into its subject and operator.
//
// The operator is the substring after the last underscore, when that
// substring names a known operator. Attribute names may themselves contain
// underscores, so an unrecognized suffix means the whole keyword is the
// subject and the operator defaults to eq; the same holds for keywords with
// no underscore at all, or whose only underscore is the leading marker of a
// computed subject ("_degree").
func CompileKeyword(keyword string) (subject string, op Op) {
	pos := strings.LastIndex(keyword, "_")
	if pos <= 0 {
		return keyword, OpEq
	}
	if op, ok := opTokens[keyword[pos+1:]]; ok {
		return keyword[:pos], op
	}
	// Unknown suffix: assume it is part of the attribute name.
	return keyword, OpEq
}

// subjectKind classifies what a compiled subject refers to.
type subjectKind int

const (
	subjectAttribute subjectKind = iota // stored attribute column
	subjectMethod                       // registered graph metric
	subjectSource                       // edge source endpoint
	subjectTarget                       // edge target endpoint
	subjectIncident                     // edge incident on a vertex set
	subjectWithin                       // both endpoints within a vertex set
	subjectBetween                      // endpoints split between two vertex sets
)

// compiled is the resolved form of a predicate keyword: a closed tagged
// variant, fixed once here and never re-resolved during evaluation.
type compiled struct {
	kind subjectKind
	name string // attribute or metric name
	op   Op
}

// compileSubject resolves a keyword for the given element kind. The
// reserved endpoint and incidence subjects only exist for edges; on
// vertices a leading underscore always denotes a metric.
func compileSubject(keyword string, elementKind types.Kind) compiled {
	subject, op := CompileKeyword(keyword)
	if !strings.HasPrefix(subject, "_") {
		return compiled{kind: subjectAttribute, name: subject, op: op}
	}
	if elementKind == types.Edge {
		switch subject {
		case "_source", "_from":
			return compiled{kind: subjectSource, op: op}
		case "_target", "_to":
			return compiled{kind: subjectTarget, op: op}
		case "_incident":
			return compiled{kind: subjectIncident, op: op}
		case "_within":
			return compiled{kind: subjectWithin, op: op}
		case "_between":
			return compiled{kind: subjectBetween, op: op}
		}
	}
	return compiled{kind: subjectMethod, name: subject[1:], op: op}
}

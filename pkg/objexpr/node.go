package objexpr

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// Row is one input record: an ordered tuple of field values, with absent
// fields carried as nil.
type Row []any

// Node is one expression in an object-binding tree. Trees are immutable
// once built and safe to reuse across concurrent compilations; each
// compilation allocates its own symbols and its own substituted copies.
type Node interface {
	// Type is the declared result type, fixed at construction.
	Type() rowtype.Type

	// Nullable reports whether the node's emitted null flag can ever hold.
	Nullable() bool

	// Children returns the structural children for tree traversal. This is
	// declared per node independently of which child fragments the node
	// splices during code generation.
	Children() []Node

	// GenCode emits the node's code fragment against cg.
	GenCode(cg *codegen.Context) (*codegen.Fragment, error)

	// Eval interprets the node directly against an input row. Only the
	// plain leaves support this; object-bridging nodes exist solely to
	// generate code and refuse with ErrCodegenOnly.
	Eval(ctx context.Context, row Row) (any, error)

	// Walk visits this node and then its children; the callback returns
	// false to skip a node's children.
	Walk(fn func(Node) bool)
}

// ErrCodegenOnly reports direct evaluation of a node that only supports
// code generation. Hitting it means the surrounding system routed an
// object-bridging expression through the generic interpreter path.
var ErrCodegenOnly = errors.New("node supports code generation only")

// unevaluable is embedded by every object-bridging variant.
type unevaluable struct {
	kind string
}

func (u unevaluable) Eval(context.Context, Row) (any, error) {
	return nil, errors.Wrapf(ErrCodegenOnly, "cannot directly evaluate %s", u.kind)
}

func walkChildren(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

func boolRepr() codegen.Repr {
	return codegen.Repr{Kind: codegen.KindBool}
}

package objexpr

import (
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// NewInstance constructs a new host object from converted argument
// values. It follows the same propagate-null protocol as StaticInvoke,
// except that a performed construction is never considered null.
type NewInstance struct {
	unevaluable
	target        *ctorTarget
	typ           rowtype.Type
	args          []Node
	propagateNull bool
}

// NewInstanceOf resolves the class constructor and builds the node.
func NewInstanceOf(
	reg *Registry,
	class string,
	args []Node,
	propagateNull bool,
	typ rowtype.Type,
) (*NewInstance, error) {
	resolved, err := reg.resolveCtor(class)
	if err != nil {
		return nil, err
	}
	return &NewInstance{
		unevaluable:   unevaluable{kind: "NewInstance"},
		target:        resolved,
		typ:           typ,
		args:          args,
		propagateNull: propagateNull,
	}, nil
}

func (n *NewInstance) Type() rowtype.Type { return n.typ }

// Nullable holds only when null propagation can short-circuit the
// construction; a performed construction is statically non-null.
func (n *NewInstance) Nullable() bool { return n.propagateNull }

func (n *NewInstance) Children() []Node { return n.args }

func (n *NewInstance) GenCode(cg *codegen.Context) (*codegen.Fragment, error) {
	return genInvocation(cg, n.target.class, n.args, n.typ, n.propagateNull, true,
		func(argValues []codegen.Operand) codegen.Operand {
			return codegen.Call{Fn: n.target, Args: argValues}
		})
}

func (n *NewInstance) Walk(fn func(Node) bool) { walkChildren(n, fn) }

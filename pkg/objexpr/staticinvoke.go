package objexpr

import (
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// StaticInvoke calls a globally addressable host function or singleton
// method, with optional null propagation over its arguments.
type StaticInvoke struct {
	unevaluable
	target        *staticTarget
	method        string
	typ           rowtype.Type
	args          []Node
	propagateNull bool
}

// NewStaticInvoke resolves target.method against the registry and builds
// the node. Unresolvable targets are construction-time errors.
func NewStaticInvoke(
	reg *Registry,
	target, method string,
	typ rowtype.Type,
	args []Node,
	propagateNull bool,
) (*StaticInvoke, error) {
	resolved, err := reg.resolveStatic(target, method)
	if err != nil {
		return nil, err
	}
	return &StaticInvoke{
		unevaluable:   unevaluable{kind: "StaticInvoke"},
		target:        resolved,
		method:        method,
		typ:           typ,
		args:          args,
		propagateNull: propagateNull,
	}, nil
}

func (s *StaticInvoke) Type() rowtype.Type { return s.typ }

func (s *StaticInvoke) Nullable() bool { return true }

// Children reports the argument expressions; the target descriptor is not
// itself an evaluated expression.
func (s *StaticInvoke) Children() []Node { return s.args }

func (s *StaticInvoke) GenCode(cg *codegen.Context) (*codegen.Fragment, error) {
	return genInvocation(cg, s.method, s.args, s.typ, s.propagateNull, false,
		func(argValues []codegen.Operand) codegen.Operand {
			return codegen.Call{Fn: s.target, Args: argValues}
		})
}

func (s *StaticInvoke) Walk(fn func(Node) bool) { walkChildren(s, fn) }

package objexpr

import (
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// UnwrapOption projects an optional box down to its contained value, or
// the type's default with the null flag set when the box is absent or
// empty.
type UnwrapOption struct {
	unevaluable
	inner Node
	typ   rowtype.Type
}

func NewUnwrapOption(inner Node, typ rowtype.Type) *UnwrapOption {
	return &UnwrapOption{
		unevaluable: unevaluable{kind: "UnwrapOption"},
		inner:       inner,
		typ:         typ,
	}
}

func (u *UnwrapOption) Type() rowtype.Type { return u.typ }

func (u *UnwrapOption) Nullable() bool { return true }

func (u *UnwrapOption) Children() []Node { return []Node{u.inner} }

func (u *UnwrapOption) GenCode(cg *codegen.Context) (*codegen.Fragment, error) {
	inf, err := u.inner.GenCode(cg)
	if err != nil {
		return nil, err
	}

	repr := cg.TargetType(u.typ)
	value := cg.FreshName("unwrapped")
	isNull := cg.FreshName("unwrappedIsNull")

	code := append([]codegen.Stmt{}, inf.Code...)
	code = append(code,
		// Absent box or present-but-empty box both mean a null result.
		codegen.Declare{
			Sym:  isNull,
			Type: boolRepr(),
			Init: codegen.Or{
				X: codegen.Ref{Sym: inf.IsNull},
				Y: codegen.OptEmpty{X: codegen.Ref{Sym: inf.Value}},
			},
		},
		codegen.Declare{Sym: value, Type: repr, Init: cg.DefaultValue(u.typ)},
		codegen.If{
			Cond: codegen.Not{X: codegen.Ref{Sym: isNull}},
			Then: []codegen.Stmt{
				codegen.Assign{
					Sym: value,
					Val: codegen.Coerce{X: codegen.OptGet{X: codegen.Ref{Sym: inf.Value}}, To: repr},
				},
			},
		},
	)

	return &codegen.Fragment{Code: code, IsNull: isNull, Value: value}, nil
}

func (u *UnwrapOption) Walk(fn func(Node) bool) { walkChildren(u, fn) }

package objexpr

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// Literal is a constant leaf. Unlike the object-bridging variants it also
// supports direct evaluation.
type Literal struct {
	val any
	typ rowtype.Type
}

func NewLiteral(val any, typ rowtype.Type) *Literal {
	return &Literal{val: val, typ: typ}
}

func (l *Literal) Type() rowtype.Type { return l.typ }

func (l *Literal) Nullable() bool { return l.val == nil }

func (l *Literal) Children() []Node { return nil }

func (l *Literal) GenCode(cg *codegen.Context) (*codegen.Fragment, error) {
	value := cg.FreshName("lit")
	isNull := cg.FreshName("litIsNull")
	// An absent literal's value symbol carries the type default, so that
	// non-propagating callers still see a well-formed argument.
	init := codegen.Operand(codegen.Lit{Val: l.val})
	if l.val == nil {
		init = cg.DefaultValue(l.typ)
	}
	return &codegen.Fragment{
		Code: []codegen.Stmt{
			codegen.Declare{Sym: value, Type: cg.TargetType(l.typ), Init: init},
			codegen.Declare{Sym: isNull, Type: boolRepr(), Init: codegen.Lit{Val: l.val == nil}},
		},
		IsNull: isNull,
		Value:  value,
	}, nil
}

func (l *Literal) Eval(context.Context, Row) (any, error) { return l.val, nil }

func (l *Literal) Walk(fn func(Node) bool) { walkChildren(l, fn) }

// InputRef reads one column of the input row by ordinal. A nil field is
// the absent value.
type InputRef struct {
	ordinal int
	typ     rowtype.Type
}

func NewInputRef(ordinal int, typ rowtype.Type) *InputRef {
	return &InputRef{ordinal: ordinal, typ: typ}
}

func (r *InputRef) Type() rowtype.Type { return r.typ }

func (r *InputRef) Nullable() bool { return true }

func (r *InputRef) Children() []Node { return nil }

func (r *InputRef) GenCode(cg *codegen.Context) (*codegen.Fragment, error) {
	repr := cg.TargetType(r.typ)
	raw := cg.FreshName("field")
	isNull := cg.FreshName("fieldIsNull")
	value := cg.FreshName("fieldValue")
	code := []codegen.Stmt{
		codegen.Declare{
			Sym:  raw,
			Type: codegen.Repr{Kind: codegen.KindAny},
			Init: codegen.Index{Coll: codegen.Ref{Sym: codegen.InputSymbol}, Idx: codegen.Lit{Val: r.ordinal}},
		},
		codegen.Declare{Sym: isNull, Type: boolRepr(), Init: codegen.IsNull{X: codegen.Ref{Sym: raw}}},
		codegen.Declare{Sym: value, Type: repr, Init: cg.DefaultValue(r.typ)},
		codegen.If{
			Cond: codegen.Not{X: codegen.Ref{Sym: isNull}},
			Then: []codegen.Stmt{
				codegen.Assign{Sym: value, Val: codegen.Coerce{X: codegen.Ref{Sym: raw}, To: repr}},
			},
		},
	}
	return &codegen.Fragment{Code: code, IsNull: isNull, Value: value}, nil
}

func (r *InputRef) Eval(_ context.Context, row Row) (any, error) {
	if r.ordinal < 0 || r.ordinal >= len(row) {
		return nil, errors.Errorf("InputRef: ordinal %d out of range for row of %d fields", r.ordinal, len(row))
	}
	return row[r.ordinal], nil
}

func (r *InputRef) Walk(fn func(Node) bool) { walkChildren(r, fn) }

package objexpr

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// elemRef is the canonical stand-in for the current element inside a
// MapObjects body. It never generates code itself: MapObjects replaces it
// with a freshly bound LambdaVariable on every code-generation pass.
type elemRef struct {
	typ rowtype.Type
}

func (e *elemRef) Type() rowtype.Type { return e.typ }

func (e *elemRef) Nullable() bool { return true }

func (e *elemRef) Children() []Node { return nil }

func (e *elemRef) GenCode(*codegen.Context) (*codegen.Fragment, error) {
	return nil, errors.New("MapObjects: element placeholder leaked outside its mapping body")
}

func (e *elemRef) Eval(context.Context, Row) (any, error) {
	return nil, errors.Wrap(ErrCodegenOnly, "cannot directly evaluate element placeholder")
}

func (e *elemRef) Walk(fn func(Node) bool) { walkChildren(e, fn) }

type collShape int

const (
	shapeSequence collShape = iota
	shapeFixedArray
)

// MapObjects maps a body expression over every element of an input
// collection, producing a newly allocated collection of the body's result
// type.
type MapObjects struct {
	unevaluable
	placeholder *elemRef
	body        Node
	input       Node
	elemType    rowtype.Type
	shape       collShape
	fixedLen    int
	typ         rowtype.Type
}

// NewMapObjects feeds the canonical element placeholder to fn once and
// keeps the resulting body tree for the node's lifetime. The input's
// static type selects the collection access shape; anything but a List or
// Array input is a construction-time error.
func NewMapObjects(fn func(elem Node) Node, input Node, elemType rowtype.Type) (*MapObjects, error) {
	var shape collShape
	fixedLen := -1
	switch it := input.Type().(type) {
	case rowtype.List:
		shape = shapeSequence
	case rowtype.Array:
		shape = shapeFixedArray
		fixedLen = it.Len
	default:
		return nil, errors.Errorf("MapObjects: input type %s is neither a sequence nor a fixed-size array", input.Type())
	}

	placeholder := &elemRef{typ: elemType}
	body := fn(placeholder)
	return &MapObjects{
		unevaluable: unevaluable{kind: "MapObjects"},
		placeholder: placeholder,
		body:        body,
		input:       input,
		elemType:    elemType,
		shape:       shape,
		fixedLen:    fixedLen,
		typ:         rowtype.List{Elem: body.Type()},
	}, nil
}

// Type is always a collection of the body's result type.
func (m *MapObjects) Type() rowtype.Type { return m.typ }

func (m *MapObjects) Nullable() bool { return true }

// Children reports the body at its canonical placeholder binding plus the
// input collection.
func (m *MapObjects) Children() []Node { return []Node{m.body, m.input} }

func (m *MapObjects) GenCode(cg *codegen.Context) (*codegen.Fragment, error) {
	inf, err := m.input.GenCode(cg)
	if err != nil {
		return nil, err
	}

	elemValue := cg.FreshName("elem")
	elemIsNull := cg.FreshName("elemIsNull")
	idx := cg.FreshName("i")
	value := cg.FreshName("mapped")
	isNull := cg.FreshName("mappedIsNull")

	// Fresh copy of the body bound to this pass's element symbols; the
	// canonical body stays untouched for later compilations.
	bound := substitute(m.body, m.placeholder, NewLambdaVariable(elemValue, elemIsNull, m.elemType))
	bf, err := bound.GenCode(cg)
	if err != nil {
		return nil, err
	}

	elemRepr := cg.TargetType(m.elemType)
	outRepr := cg.TargetType(m.typ)

	var length codegen.Operand
	switch m.shape {
	case shapeFixedArray:
		length = codegen.Lit{Val: m.fixedLen}
	default:
		length = codegen.Length{Coll: codegen.Ref{Sym: inf.Value}}
	}

	bodyRepr := cg.TargetType(m.body.Type())
	loop := codegen.For{
		Idx: idx,
		Len: length,
		Body: append([]codegen.Stmt{
			codegen.Assign{Sym: elemValue, Val: codegen.Index{Coll: codegen.Ref{Sym: inf.Value}, Idx: codegen.Ref{Sym: idx}}},
			codegen.Assign{Sym: elemIsNull, Val: codegen.IsNull{X: codegen.Ref{Sym: elemValue}}},
		}, append(bf.Code,
			codegen.Store{Arr: value, Idx: codegen.Ref{Sym: idx}, Val: codegen.Ref{Sym: bf.Value}},
		)...),
	}

	code := append([]codegen.Stmt{}, inf.Code...)
	code = append(code,
		codegen.Declare{Sym: isNull, Type: boolRepr(), Init: codegen.Lit{Val: true}},
		codegen.Declare{Sym: value, Type: outRepr, Init: codegen.Lit{Val: nil}},
		codegen.If{
			Cond: codegen.Not{X: codegen.Ref{Sym: inf.IsNull}},
			Then: []codegen.Stmt{
				codegen.Assign{Sym: value, Val: codegen.MakeSlice{Elem: bodyRepr, Len: length}},
				codegen.Declare{Sym: elemValue, Type: elemRepr, Init: cg.DefaultValue(m.elemType)},
				codegen.Declare{Sym: elemIsNull, Type: boolRepr(), Init: codegen.Lit{Val: false}},
				loop,
				codegen.Assign{Sym: isNull, Val: codegen.Lit{Val: false}},
			},
		},
	)

	return &codegen.Fragment{Code: code, IsNull: isNull, Value: value}, nil
}

func (m *MapObjects) Walk(fn func(Node) bool) { walkChildren(m, fn) }

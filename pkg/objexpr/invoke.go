package objexpr

import (
	"github.com/pkg/errors"
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// Invoke calls a method on a dynamically computed receiver. Absence of
// the receiver is always propagated: a null receiver yields a null result
// and the method is never invoked.
type Invoke struct {
	unevaluable
	recv   Node
	method string
	typ    rowtype.Type
	args   []Node
	target *methodTarget
}

// NewInvoke resolves method on the receiver's declared class and builds
// the node. The receiver's static type must be an object type.
func NewInvoke(reg *Registry, recv Node, method string, typ rowtype.Type, args []Node) (*Invoke, error) {
	obj, ok := recv.Type().(rowtype.Object)
	if !ok {
		return nil, errors.Errorf("Invoke: receiver type %s is not an object type", recv.Type())
	}
	resolved, err := reg.resolveMethod(obj.Class, method)
	if err != nil {
		return nil, err
	}
	return &Invoke{
		unevaluable: unevaluable{kind: "Invoke"},
		recv:        recv,
		method:      method,
		typ:         typ,
		args:        args,
		target:      resolved,
	}, nil
}

func (i *Invoke) Type() rowtype.Type { return i.typ }

func (i *Invoke) Nullable() bool { return true }

// Children reports the receiver and the argument expressions. The spliced
// set and the reported set are declared independently; here they coincide.
func (i *Invoke) Children() []Node {
	return append([]Node{i.recv}, i.args...)
}

func (i *Invoke) GenCode(cg *codegen.Context) (*codegen.Fragment, error) {
	rf, err := i.recv.GenCode(cg)
	if err != nil {
		return nil, err
	}
	code := append([]codegen.Stmt{}, rf.Code...)

	argValues := make([]codegen.Operand, len(i.args))
	for n, arg := range i.args {
		f, err := arg.GenCode(cg)
		if err != nil {
			return nil, err
		}
		code = append(code, f.Code...)
		argValues[n] = codegen.Ref{Sym: f.Value}
	}

	repr := cg.TargetType(i.typ)
	value := cg.FreshName(i.method)
	isNull := cg.FreshName(i.method + "IsNull")

	code = append(code,
		codegen.Declare{Sym: isNull, Type: boolRepr(), Init: codegen.Ref{Sym: rf.IsNull}},
		codegen.Declare{Sym: value, Type: repr, Init: cg.DefaultValue(i.typ)},
	)

	call := codegen.Call{Fn: i.target, Recv: codegen.Ref{Sym: rf.Value}, Args: argValues}
	body := []codegen.Stmt{
		codegen.Assign{Sym: value, Val: codegen.Coerce{X: call, To: repr}},
	}
	if repr.NullCapable() {
		// The method may return an absent value even on a live receiver.
		body = append(body, codegen.Assign{
			Sym: isNull,
			Val: codegen.Or{X: codegen.Ref{Sym: rf.IsNull}, Y: codegen.IsNull{X: codegen.Ref{Sym: value}}},
		})
	}
	code = append(code, codegen.If{
		Cond: codegen.Not{X: codegen.Ref{Sym: rf.IsNull}},
		Then: body,
	})

	return &codegen.Fragment{Code: code, IsNull: isNull, Value: value}, nil
}

func (i *Invoke) Walk(fn func(Node) bool) { walkChildren(i, fn) }

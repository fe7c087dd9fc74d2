package objexpr

import (
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// The call-emission protocol shared by StaticInvoke and NewInstance:
// argument fragments spliced in order, then either the propagate-null
// guard (any null argument short-circuits the call) or an unconditional
// call with a sentinel-derived null flag.

// genInvocation emits one guarded call. makeCall receives the argument
// value operands and produces the call operand. ctorResult marks
// constructions, whose results are never null once performed.
func genInvocation(
	cg *codegen.Context,
	hint string,
	args []Node,
	typ rowtype.Type,
	propagateNull bool,
	ctorResult bool,
	makeCall func(argValues []codegen.Operand) codegen.Operand,
) (*codegen.Fragment, error) {
	var code []codegen.Stmt
	argFrags := make([]*codegen.Fragment, len(args))
	for i, arg := range args {
		f, err := arg.GenCode(cg)
		if err != nil {
			return nil, err
		}
		argFrags[i] = f
		code = append(code, f.Code...)
	}

	repr := cg.TargetType(typ)
	value := cg.FreshName(hint)
	isNull := cg.FreshName(hint + "IsNull")

	argValues := make([]codegen.Operand, len(argFrags))
	for i, f := range argFrags {
		argValues[i] = codegen.Ref{Sym: f.Value}
	}
	call := makeCall(argValues)

	if propagateNull {
		code = append(code,
			codegen.Declare{Sym: isNull, Type: boolRepr(), Init: codegen.Lit{Val: true}},
			codegen.Declare{Sym: value, Type: repr, Init: cg.DefaultValue(typ)},
		)
		body := []codegen.Stmt{
			codegen.Assign{Sym: value, Val: codegen.Coerce{X: call, To: repr}},
		}
		switch {
		case ctorResult:
			// A freshly constructed object is never null.
			body = append(body, codegen.Assign{Sym: isNull, Val: codegen.Lit{Val: false}})
		case repr.NullCapable():
			// The callee may itself produce an absent result.
			body = append(body, codegen.Assign{Sym: isNull, Val: codegen.IsNull{X: codegen.Ref{Sym: value}}})
		default:
			body = append(body, codegen.Assign{Sym: isNull, Val: codegen.Lit{Val: false}})
		}
		if cond := allNotNull(argFrags); cond != nil {
			code = append(code, codegen.If{Cond: cond, Then: body})
		} else {
			code = append(code, body...)
		}
		return &codegen.Fragment{Code: code, IsNull: isNull, Value: value}, nil
	}

	code = append(code, codegen.Declare{Sym: value, Type: repr, Init: codegen.Coerce{X: call, To: repr}})
	var nullInit codegen.Operand = codegen.Lit{Val: false}
	if !ctorResult && repr.NullCapable() {
		nullInit = codegen.IsNull{X: codegen.Ref{Sym: value}}
	}
	code = append(code, codegen.Declare{Sym: isNull, Type: boolRepr(), Init: nullInit})
	return &codegen.Fragment{Code: code, IsNull: isNull, Value: value}, nil
}

// allNotNull builds the conjunction of the fragments' negated null flags,
// or nil when there are no arguments.
func allNotNull(frags []*codegen.Fragment) codegen.Operand {
	var cond codegen.Operand
	for _, f := range frags {
		clause := codegen.Not{X: codegen.Ref{Sym: f.IsNull}}
		if cond == nil {
			cond = clause
		} else {
			cond = codegen.And{X: cond, Y: clause}
		}
	}
	return cond
}

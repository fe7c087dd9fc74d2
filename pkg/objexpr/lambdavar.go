package objexpr

import (
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

// LambdaVariable is a direct reference to two pre-existing generated
// symbols: a value and its null flag. Its fragment carries no preparation
// code. It only ever appears where a MapObjects substituted it in place
// of the canonical element placeholder.
type LambdaVariable struct {
	unevaluable
	value  codegen.Symbol
	isNull codegen.Symbol
	typ    rowtype.Type
}

func NewLambdaVariable(value, isNull codegen.Symbol, typ rowtype.Type) *LambdaVariable {
	return &LambdaVariable{
		unevaluable: unevaluable{kind: "LambdaVariable"},
		value:       value,
		isNull:      isNull,
		typ:         typ,
	}
}

func (l *LambdaVariable) Type() rowtype.Type { return l.typ }

func (l *LambdaVariable) Nullable() bool { return true }

func (l *LambdaVariable) Children() []Node { return nil }

func (l *LambdaVariable) GenCode(*codegen.Context) (*codegen.Fragment, error) {
	return &codegen.Fragment{IsNull: l.isNull, Value: l.value}, nil
}

func (l *LambdaVariable) Walk(fn func(Node) bool) { walkChildren(l, fn) }

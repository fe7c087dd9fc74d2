package objexpr

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/rowbind/pkg/codegen"
)

func compileRun(t *testing.T, n Node, row Row) (any, bool) {
	t.Helper()
	routine, err := Compile(n, nil)
	require.NoError(t, err)
	out, isNull, err := routine.Run(row)
	require.NoError(t, err)
	return out, isNull
}

// countingFunc returns a static binding that counts its invocations and
// delegates to fn.
func countingFunc(calls *int, fn StaticFunc) StaticFunc {
	return func(args []any) (any, error) {
		*calls++
		return fn(args)
	}
}

func declaredSymbols(t *testing.T, stmts []codegen.Stmt) []codegen.Symbol {
	t.Helper()
	var syms []codegen.Symbol
	var visit func([]codegen.Stmt)
	visit = func(block []codegen.Stmt) {
		for _, stmt := range block {
			switch s := stmt.(type) {
			case codegen.Declare:
				syms = append(syms, s.Sym)
			case codegen.If:
				visit(s.Then)
				visit(s.Else)
			case codegen.For:
				visit(s.Body)
			}
		}
	}
	visit(stmts)
	return syms
}

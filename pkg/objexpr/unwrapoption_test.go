package objexpr

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/rowtype"
)

func TestUnwrapOptionRoundTrip(t *testing.T) {
	inner := NewLiteral(codegen.Some(42), rowtype.Option{Elem: rowtype.Int})
	node := NewUnwrapOption(inner, rowtype.Int)
	require.True(t, node.Nullable())
	require.Equal(t, []Node{inner}, node.Children())

	out, isNull := compileRun(t, node, nil)
	require.False(t, isNull)
	require.Equal(t, 42, out)
}

func TestUnwrapEmptyOption(t *testing.T) {
	inner := NewLiteral(codegen.None(), rowtype.Option{Elem: rowtype.Int})
	node := NewUnwrapOption(inner, rowtype.Int)

	_, isNull := compileRun(t, node, nil)
	require.True(t, isNull)
}

func TestUnwrapAbsentBox(t *testing.T) {
	inner := NewLiteral(nil, rowtype.Option{Elem: rowtype.Int})
	node := NewUnwrapOption(inner, rowtype.Int)

	_, isNull := compileRun(t, node, nil)
	require.True(t, isNull)
}

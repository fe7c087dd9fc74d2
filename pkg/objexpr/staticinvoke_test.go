package objexpr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/rowbind/pkg/rowtype"
)

func TestStaticInvokePropagatesNullArguments(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.RegisterFunc("strings", "upper", countingFunc(&calls, func(args []any) (any, error) {
		return strings.ToUpper(args[0].(string)), nil
	}))

	tests := []struct {
		name     string
		args     []Node
		wantNull bool
		want     any
		wantCall int
	}{
		{
			name:     "all arguments present",
			args:     []Node{NewLiteral("hi", rowtype.String)},
			wantNull: false,
			want:     "HI",
			wantCall: 1,
		},
		{
			name:     "one null argument short-circuits",
			args:     []Node{NewLiteral(nil, rowtype.String)},
			wantNull: true,
			wantCall: 0,
		},
		{
			name: "null among several arguments short-circuits",
			args: []Node{
				NewLiteral("hi", rowtype.String),
				NewLiteral(nil, rowtype.String),
			},
			wantNull: true,
			wantCall: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			calls = 0
			node, err := NewStaticInvoke(reg, "strings", "upper", rowtype.String, test.args, true)
			require.NoError(t, err)
			require.True(t, node.Nullable())

			out, isNull := compileRun(t, node, nil)
			require.Equal(t, test.wantNull, isNull)
			if !test.wantNull {
				require.Equal(t, test.want, out)
			}
			require.Equal(t, test.wantCall, calls)
		})
	}
}

func TestStaticInvokeWithoutPropagationAlwaysCalls(t *testing.T) {
	calls := 0
	var got []any
	reg := NewRegistry()
	reg.RegisterFunc("strings", "orEmpty", countingFunc(&calls, func(args []any) (any, error) {
		got = args
		return "called", nil
	}))

	node, err := NewStaticInvoke(reg, "strings", "orEmpty", rowtype.String,
		[]Node{NewLiteral(nil, rowtype.String)}, false)
	require.NoError(t, err)

	out, isNull := compileRun(t, node, nil)
	require.False(t, isNull)
	require.Equal(t, "called", out)
	require.Equal(t, 1, calls)
	// A null argument still reaches the call, carrying its type default.
	require.Equal(t, []any{""}, got)
}

func TestStaticInvokeNullCapableResultFixup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFunc("lookup", "find", func(args []any) (any, error) {
		// The callee itself produces an absent result.
		return nil, nil
	})

	node, err := NewStaticInvoke(reg, "lookup", "find", rowtype.Object{Class: "record"},
		[]Node{NewLiteral("key", rowtype.String)}, true)
	require.NoError(t, err)

	_, isNull := compileRun(t, node, nil)
	require.True(t, isNull)
}

func TestStaticInvokeUnknownTarget(t *testing.T) {
	reg := NewRegistry()

	_, err := NewStaticInvoke(reg, "math", "nope", rowtype.Int, nil, true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "StaticInvoke")
	require.Contains(t, err.Error(), "math.nope")
}

func TestStaticInvokeChildren(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFunc("math", "add", func(args []any) (any, error) { return nil, nil })

	a := NewLiteral(1, rowtype.Int)
	b := NewLiteral(2, rowtype.Int)
	node, err := NewStaticInvoke(reg, "math", "add", rowtype.Int, []Node{a, b}, true)
	require.NoError(t, err)
	require.Equal(t, []Node{a, b}, node.Children())
}

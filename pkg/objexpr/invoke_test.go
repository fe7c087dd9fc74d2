package objexpr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/rowbind/pkg/rowtype"
)

type greeter struct {
	greeting string
}

func greeterRegistry(calls *int) *Registry {
	reg := NewRegistry()
	reg.RegisterClass(&Class{
		Name: "greeter",
		Methods: map[string]MethodFunc{
			"greet": func(recv any, args []any) (any, error) {
				*calls++
				g := recv.(greeter)
				return fmt.Sprintf("%s, %s", g.greeting, args[0]), nil
			},
			"pick": func(recv any, args []any) (any, error) {
				*calls++
				return nil, nil
			},
		},
	})
	return reg
}

func TestInvokeOnLiveReceiver(t *testing.T) {
	calls := 0
	reg := greeterRegistry(&calls)

	recv := NewLiteral(greeter{greeting: "hello"}, rowtype.Object{Class: "greeter"})
	node, err := NewInvoke(reg, recv, "greet", rowtype.String,
		[]Node{NewLiteral("ada", rowtype.String)})
	require.NoError(t, err)
	require.True(t, node.Nullable())

	out, isNull := compileRun(t, node, nil)
	require.False(t, isNull)
	require.Equal(t, "hello, ada", out)
	require.Equal(t, 1, calls)
}

func TestInvokeForwardsReceiverNull(t *testing.T) {
	calls := 0
	reg := greeterRegistry(&calls)

	recv := NewLiteral(nil, rowtype.Object{Class: "greeter"})
	node, err := NewInvoke(reg, recv, "greet", rowtype.String,
		[]Node{NewLiteral("ada", rowtype.String)})
	require.NoError(t, err)

	_, isNull := compileRun(t, node, nil)
	require.True(t, isNull)
	require.Equal(t, 0, calls, "method must never run on a null receiver")
}

func TestInvokeNullCapableResultFixup(t *testing.T) {
	calls := 0
	reg := greeterRegistry(&calls)

	recv := NewLiteral(greeter{}, rowtype.Object{Class: "greeter"})
	node, err := NewInvoke(reg, recv, "pick", rowtype.Object{Class: "record"}, nil)
	require.NoError(t, err)

	// Live receiver, but the method itself returns the sentinel.
	_, isNull := compileRun(t, node, nil)
	require.True(t, isNull)
	require.Equal(t, 1, calls)
}

func TestInvokeRequiresObjectReceiver(t *testing.T) {
	calls := 0
	reg := greeterRegistry(&calls)

	_, err := NewInvoke(reg, NewLiteral(1, rowtype.Int), "greet", rowtype.String, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not an object type")
}

func TestInvokeUnknownMethod(t *testing.T) {
	calls := 0
	reg := greeterRegistry(&calls)

	recv := NewLiteral(greeter{}, rowtype.Object{Class: "greeter"})
	_, err := NewInvoke(reg, recv, "wave", rowtype.String, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), `"wave"`)
	require.Contains(t, err.Error(), `"greeter"`)
}

func TestInvokeChildren(t *testing.T) {
	calls := 0
	reg := greeterRegistry(&calls)

	recv := NewLiteral(greeter{}, rowtype.Object{Class: "greeter"})
	arg := NewLiteral("ada", rowtype.String)
	node, err := NewInvoke(reg, recv, "greet", rowtype.String, []Node{arg})
	require.NoError(t, err)
	require.Equal(t, []Node{recv, arg}, node.Children())
}

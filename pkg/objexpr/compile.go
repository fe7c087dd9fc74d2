package objexpr

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vito/rowbind/pkg/codegen"
)

// Compile generates the routine that performs one tree's conversion. One
// Context is created per call and discarded once the routine is
// assembled, so the same tree may be compiled concurrently from several
// goroutines.
func Compile(n Node, provider codegen.TypeProvider) (*codegen.Routine, error) {
	cg := codegen.NewContext(provider)
	slog.Debug("compiling object expression", "kind", fmt.Sprintf("%T", n), "type", n.Type())
	frag, err := n.GenCode(cg)
	if err != nil {
		return nil, err
	}
	return &codegen.Routine{
		Input:  codegen.InputSymbol,
		Code:   frag.Code,
		IsNull: frag.IsNull,
		Value:  frag.Value,
		Result: cg.TargetType(n.Type()),
	}, nil
}

// CompileAll compiles independent trees concurrently, one Context each.
// It returns the first error encountered, if any.
func CompileAll(ctx context.Context, nodes []Node, provider codegen.TypeProvider) ([]*codegen.Routine, error) {
	eg, _ := errgroup.WithContext(ctx)
	routines := make([]*codegen.Routine, len(nodes))
	for i, n := range nodes {
		eg.Go(func() error {
			r, err := Compile(n, provider)
			if err != nil {
				return err
			}
			routines[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return routines, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vito/rowbind/pkg/codegen"
	"github.com/vito/rowbind/pkg/objexpr"
	"github.com/vito/rowbind/pkg/rowtype"
)

// Config holds the application configuration
type Config struct {
	Debug     bool
	TypeTable string
	DumpTree  bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "rowbind [flags]",
		Short: "Row/object conversion compiler demo",
		Long: `rowbind compiles descriptions of row-to-object conversions into
low-level imperative routines. This demo binary builds a sample
conversion tree, prints the generated routine as Go source, and runs it
against a sample row.`,
		Example: `  # Print the generated routine for the sample conversion
  rowbind

  # Use a TOML type table for per-class representation overrides
  rowbind --types types.toml

  # Enable debug logging
  rowbind --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&cfg.TypeTable, "types", "", "Path to a TOML type table")
	rootCmd.Flags().BoolVar(&cfg.DumpTree, "dump-tree", false, "Dump the expression tree before compiling")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(cfg Config) error {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	var provider codegen.TypeProvider = codegen.StdProvider{}
	if cfg.TypeTable != "" {
		loaded, err := codegen.LoadTypeTable(cfg.TypeTable, provider)
		if err != nil {
			return err
		}
		provider = loaded
	}

	tree, err := sampleTree()
	if err != nil {
		return err
	}

	if cfg.DumpTree {
		fmt.Println(objexpr.Dump(tree))
	}

	routine, err := objexpr.Compile(tree, provider)
	if err != nil {
		return err
	}

	src, err := routine.Render("main", "ConvertPerson")
	if err != nil {
		return err
	}
	fmt.Println(src)

	row := []any{"ada", []any{1, 2, 3}}
	result, isNull, err := routine.Run(row)
	if err != nil {
		return err
	}
	if isNull {
		fmt.Println("// sample row converts to null")
		return nil
	}
	fmt.Printf("// sample row converts to %v\n", result)
	return nil
}

// Person is the demo host class.
type Person struct {
	Name   string
	Scores []any
}

// sampleTree builds the demo conversion: construct a Person from a name
// column and a list column whose elements are doubled.
func sampleTree() (objexpr.Node, error) {
	reg := objexpr.NewRegistry()
	reg.RegisterFunc("math", "double", func(args []any) (any, error) {
		return args[0].(int) * 2, nil
	})
	reg.RegisterClass(&objexpr.Class{
		Name: "person",
		Ctor: func(args []any) (any, error) {
			scores, _ := args[1].([]any)
			return Person{Name: args[0].(string), Scores: scores}, nil
		},
	})

	scores, err := objexpr.NewMapObjects(func(elem objexpr.Node) objexpr.Node {
		doubled, err := objexpr.NewStaticInvoke(reg, "math", "double", rowtype.Int,
			[]objexpr.Node{elem}, true)
		if err != nil {
			panic(err)
		}
		return doubled
	}, objexpr.NewInputRef(1, rowtype.List{Elem: rowtype.Int}), rowtype.Int)
	if err != nil {
		return nil, err
	}

	return objexpr.NewInstanceOf(reg, "person", []objexpr.Node{
		objexpr.NewInputRef(0, rowtype.String),
		scores,
	}, true, rowtype.Object{Class: "person"})
}

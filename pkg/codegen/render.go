package codegen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/pkg/errors"
)

const optionPkg = "github.com/vito/rowbind/pkg/codegen"

// Render emits the routine as Go source: a single function taking the
// input row and returning the result value and its null flag. This is the
// textual backend; Run is the in-process one.
func (r *Routine) Render(pkgName, funcName string) (string, error) {
	f := jen.NewFile(pkgName)
	f.Comment(fmt.Sprintf("%s converts one input row; result representation: %s.", funcName, r.Result))

	body := make([]jen.Code, 0, len(r.Code)+1)
	for _, s := range r.Code {
		body = append(body, renderStmt(s))
	}
	body = append(body, jen.Return(jen.Id(string(r.Value)), jen.Id(string(r.IsNull))))

	f.Func().Id(funcName).
		Params(jen.Id(string(r.Input)).Index().Any()).
		Params(jen.Any(), jen.Bool()).
		Block(body...)

	var b strings.Builder
	if err := f.Render(&b); err != nil {
		return "", errors.Wrap(err, "rendering routine")
	}
	return b.String(), nil
}

func renderStmt(stmt Stmt) jen.Code {
	switch s := stmt.(type) {
	case Declare:
		decl := jen.Var().Id(string(s.Sym)).Add(reprType(s.Type))
		if s.Init != nil {
			decl = decl.Op("=").Add(renderOperand(s.Init))
		}
		return decl
	case Assign:
		return jen.Id(string(s.Sym)).Op("=").Add(renderOperand(s.Val))
	case If:
		out := jen.If(renderOperand(s.Cond)).Block(renderBlock(s.Then)...)
		if len(s.Else) > 0 {
			out = out.Else().Block(renderBlock(s.Else)...)
		}
		return out
	case For:
		i := string(s.Idx)
		return jen.For(
			jen.Id(i).Op(":=").Lit(0),
			jen.Id(i).Op("<").Add(renderOperand(s.Len)),
			jen.Id(i).Op("++"),
		).Block(renderBlock(s.Body)...)
	case Store:
		return jen.Id(string(s.Arr)).Index(renderOperand(s.Idx)).Op("=").Add(renderOperand(s.Val))
	default:
		return jen.Commentf("unhandled statement %T", stmt)
	}
}

func renderBlock(stmts []Stmt) []jen.Code {
	out := make([]jen.Code, len(stmts))
	for i, s := range stmts {
		out[i] = renderStmt(s)
	}
	return out
}

func renderOperand(op Operand) jen.Code {
	switch o := op.(type) {
	case Lit:
		return renderLit(o.Val)
	case Ref:
		return jen.Id(string(o.Sym))
	case IsNull:
		return jen.Parens(jen.Add(renderOperand(o.X)).Op("==").Nil())
	case Not:
		return jen.Op("!").Add(renderOperand(o.X))
	case And:
		return jen.Parens(jen.Add(renderOperand(o.X)).Op("&&").Add(renderOperand(o.Y)))
	case Or:
		return jen.Parens(jen.Add(renderOperand(o.X)).Op("||").Add(renderOperand(o.Y)))
	case Call:
		args := make([]jen.Code, len(o.Args))
		for i, a := range o.Args {
			args[i] = renderOperand(a)
		}
		if o.Recv != nil {
			return jen.Add(renderOperand(o.Recv)).Dot(o.Fn.Name()).Call(args...)
		}
		return jen.Id(o.Fn.Name()).Call(args...)
	case Coerce:
		switch o.To.Kind {
		case KindBool, KindInt, KindFloat, KindString, KindBytes:
			return jen.Add(renderOperand(o.X)).Assert(reprType(o.To))
		default:
			return renderOperand(o.X)
		}
	case Index:
		return jen.Add(renderOperand(o.Coll)).Index(renderOperand(o.Idx))
	case Length:
		return jen.Len(renderOperand(o.Coll))
	case MakeSlice:
		return jen.Make(jen.Index().Add(reprType(o.Elem)), renderOperand(o.Len))
	case OptEmpty:
		return jen.Op("!").Add(renderOperand(o.X)).Dot("Set")
	case OptGet:
		return jen.Add(renderOperand(o.X)).Dot("Val")
	default:
		return jen.Commentf("unhandled operand %T", op)
	}
}

func renderLit(v any) jen.Code {
	switch val := v.(type) {
	case nil:
		return jen.Nil()
	case bool, string, int, int64, float64:
		return jen.Lit(val)
	default:
		// Composite literal; inject its Go syntax verbatim.
		return jen.Id(fmt.Sprintf("%#v", val))
	}
}

func reprType(r Repr) *jen.Statement {
	switch r.Kind {
	case KindBool:
		return jen.Bool()
	case KindInt:
		return jen.Int64()
	case KindFloat:
		return jen.Float64()
	case KindString:
		return jen.String()
	case KindBytes:
		return jen.Index().Byte()
	case KindSlice:
		if r.Elem != nil {
			return jen.Index().Add(reprType(*r.Elem))
		}
		return jen.Index().Any()
	case KindOption:
		return jen.Qual(optionPkg, "Option")
	default:
		return jen.Any()
	}
}

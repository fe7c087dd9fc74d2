package codegen

import (
	"reflect"

	"github.com/pkg/errors"
)

// The reference backend: executes a routine's statement IR directly
// against host values. The null sentinel is an untyped nil; optionals are
// explicit Option boxes. Rendering to Go source (render.go) is the other
// backend.

type env map[Symbol]any

// Run executes the routine against one input row and returns the result
// value and its null flag.
func (r *Routine) Run(row []any) (any, bool, error) {
	return r.RunWith(row, nil)
}

// RunWith executes the routine with additional pre-bound symbols, used
// when the compiled tree references symbols generated outside of it.
func (r *Routine) RunWith(row []any, bindings map[Symbol]any) (any, bool, error) {
	e := env{}
	for sym, val := range bindings {
		e[sym] = val
	}
	if r.Input != "" {
		e[r.Input] = row
	}
	if err := execBlock(r.Code, e); err != nil {
		return nil, false, err
	}
	isNull, ok := e[r.IsNull].(bool)
	if !ok {
		return nil, false, errors.Errorf("routine did not bind null flag %q", r.IsNull)
	}
	if isNull {
		return nil, true, nil
	}
	return e[r.Value], false, nil
}

func execBlock(stmts []Stmt, e env) error {
	for _, s := range stmts {
		if err := execStmt(s, e); err != nil {
			return err
		}
	}
	return nil
}

func execStmt(stmt Stmt, e env) error {
	switch s := stmt.(type) {
	case Declare:
		if s.Init == nil {
			e[s.Sym] = nil
			return nil
		}
		v, err := evalOperand(s.Init, e)
		if err != nil {
			return err
		}
		e[s.Sym] = v
		return nil
	case Assign:
		v, err := evalOperand(s.Val, e)
		if err != nil {
			return err
		}
		e[s.Sym] = v
		return nil
	case If:
		cond, err := evalOperand(s.Cond, e)
		if err != nil {
			return err
		}
		b, ok := cond.(bool)
		if !ok {
			return errors.Errorf("if condition evaluated to %T, want bool", cond)
		}
		if b {
			return execBlock(s.Then, e)
		}
		return execBlock(s.Else, e)
	case For:
		length, err := evalOperand(s.Len, e)
		if err != nil {
			return err
		}
		n, err := toInt(length)
		if err != nil {
			return errors.Wrap(err, "loop bound")
		}
		for i := 0; i < n; i++ {
			e[s.Idx] = i
			if err := execBlock(s.Body, e); err != nil {
				return err
			}
		}
		return nil
	case Store:
		arr, ok := e[s.Arr].([]any)
		if !ok {
			return errors.Errorf("store target %q holds %T, want []any", s.Arr, e[s.Arr])
		}
		idx, err := evalOperand(s.Idx, e)
		if err != nil {
			return err
		}
		i, err := toInt(idx)
		if err != nil {
			return errors.Wrap(err, "store index")
		}
		val, err := evalOperand(s.Val, e)
		if err != nil {
			return err
		}
		arr[i] = val
		return nil
	default:
		return errors.Errorf("statement of type %T is unhandled", stmt)
	}
}

func evalOperand(op Operand, e env) (any, error) {
	switch o := op.(type) {
	case Lit:
		return o.Val, nil
	case Ref:
		v, ok := e[o.Sym]
		if !ok {
			return nil, errors.Errorf("reference to unbound symbol %q", o.Sym)
		}
		return v, nil
	case IsNull:
		v, err := evalOperand(o.X, e)
		if err != nil {
			return nil, err
		}
		return isNilValue(v), nil
	case Not:
		b, err := evalBool(o.X, e)
		if err != nil {
			return nil, err
		}
		return !b, nil
	case And:
		x, err := evalBool(o.X, e)
		if err != nil {
			return nil, err
		}
		if !x {
			return false, nil
		}
		return evalBool(o.Y, e)
	case Or:
		x, err := evalBool(o.X, e)
		if err != nil {
			return nil, err
		}
		if x {
			return true, nil
		}
		return evalBool(o.Y, e)
	case Call:
		var recv any
		if o.Recv != nil {
			v, err := evalOperand(o.Recv, e)
			if err != nil {
				return nil, err
			}
			recv = v
		}
		args := make([]any, len(o.Args))
		for i, a := range o.Args {
			v, err := evalOperand(a, e)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		out, err := o.Fn.Invoke(recv, args)
		if err != nil {
			return nil, errors.Wrapf(err, "call to %s", o.Fn.Name())
		}
		return out, nil
	case Coerce:
		// Host values are dynamically typed in this backend; the coercion
		// is material only in the rendered-source backend.
		return evalOperand(o.X, e)
	case Index:
		coll, err := evalOperand(o.Coll, e)
		if err != nil {
			return nil, err
		}
		idx, err := evalOperand(o.Idx, e)
		if err != nil {
			return nil, err
		}
		i, err := toInt(idx)
		if err != nil {
			return nil, errors.Wrap(err, "index")
		}
		return indexValue(coll, i)
	case Length:
		coll, err := evalOperand(o.Coll, e)
		if err != nil {
			return nil, err
		}
		return lengthValue(coll)
	case MakeSlice:
		length, err := evalOperand(o.Len, e)
		if err != nil {
			return nil, err
		}
		n, err := toInt(length)
		if err != nil {
			return nil, errors.Wrap(err, "slice length")
		}
		return make([]any, n), nil
	case OptEmpty:
		v, err := evalOperand(o.X, e)
		if err != nil {
			return nil, err
		}
		if isNilValue(v) {
			return true, nil
		}
		box, ok := v.(Option)
		if !ok {
			return nil, errors.Errorf("optional check on %T, want Option", v)
		}
		return !box.Set, nil
	case OptGet:
		v, err := evalOperand(o.X, e)
		if err != nil {
			return nil, err
		}
		box, ok := v.(Option)
		if !ok {
			return nil, errors.Errorf("optional projection on %T, want Option", v)
		}
		return box.Val, nil
	default:
		return nil, errors.Errorf("operand of type %T is unhandled", op)
	}
}

func evalBool(op Operand, e env) (bool, error) {
	v, err := evalOperand(op, e)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Errorf("operand evaluated to %T, want bool", v)
	}
	return b, nil
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, errors.Errorf("value of type %T is not an index", v)
	}
}

func indexValue(coll any, i int) (any, error) {
	switch c := coll.(type) {
	case []any:
		if i < 0 || i >= len(c) {
			return nil, errors.Errorf("index %d out of range [0,%d)", i, len(c))
		}
		return c[i], nil
	default:
		rv := reflect.ValueOf(coll)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if i < 0 || i >= rv.Len() {
				return nil, errors.Errorf("index %d out of range [0,%d)", i, rv.Len())
			}
			return rv.Index(i).Interface(), nil
		default:
			return nil, errors.Errorf("cannot index value of type %T", coll)
		}
	}
}

func lengthValue(coll any) (int, error) {
	switch c := coll.(type) {
	case []any:
		return len(c), nil
	default:
		rv := reflect.ValueOf(coll)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.String:
			return rv.Len(), nil
		default:
			return 0, errors.Errorf("cannot take length of value of type %T", coll)
		}
	}
}

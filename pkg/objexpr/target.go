package objexpr

import (
	"log/slog"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/vito/rowbind/pkg/codegen"
)

// Host bindings. Call targets are registered up front and resolved once
// at tree-construction time; emitted code carries the resolved target,
// never a name to look up later.

// StaticFunc is a free function or singleton method on the host side.
type StaticFunc func(args []any) (any, error)

// MethodFunc is an instance method: recv is the receiver object.
type MethodFunc func(recv any, args []any) (any, error)

// CtorFunc constructs a new host object from converted argument values.
type CtorFunc func(args []any) (any, error)

// Class describes one host class: its constructor and named methods.
type Class struct {
	Name    string
	Ctor    CtorFunc
	Methods map[string]MethodFunc
}

// Registry holds the host bindings a tree's call targets resolve against.
type Registry struct {
	funcs   map[string]StaticFunc
	classes map[string]*Class
}

func NewRegistry() *Registry {
	return &Registry{
		funcs:   map[string]StaticFunc{},
		classes: map[string]*Class{},
	}
}

// RegisterFunc binds a static call target, addressed as target.method.
func (r *Registry) RegisterFunc(target, method string, fn StaticFunc) {
	slog.Debug("adding static binding", "target", target, "method", method)
	r.funcs[target+"."+method] = fn
}

// RegisterClass binds a host class.
func (r *Registry) RegisterClass(c *Class) {
	slog.Debug("adding class binding", "class", c.Name, "methods", len(c.Methods))
	r.classes[c.Name] = c
}

func (r *Registry) resolveStatic(target, method string) (*staticTarget, error) {
	key := target + "." + method
	fn, ok := r.funcs[key]
	if !ok {
		return nil, errors.Errorf("StaticInvoke: no static target %q registered", key)
	}
	return &staticTarget{name: key, fn: fn}, nil
}

func (r *Registry) resolveMethod(class, method string) (*methodTarget, error) {
	c, ok := r.classes[class]
	if !ok {
		return nil, errors.Errorf("Invoke: unknown class %q", class)
	}
	fn, ok := c.Methods[method]
	if !ok {
		return nil, errors.Errorf("Invoke: class %q has no method %q", class, method)
	}
	return &methodTarget{class: class, method: method, fn: fn}, nil
}

func (r *Registry) resolveCtor(class string) (*ctorTarget, error) {
	c, ok := r.classes[class]
	if !ok {
		return nil, errors.Errorf("NewInstance: unknown class %q", class)
	}
	if c.Ctor == nil {
		return nil, errors.Errorf("NewInstance: class %q has no constructor", class)
	}
	return &ctorTarget{class: class, fn: c.Ctor}, nil
}

type staticTarget struct {
	name string
	fn   StaticFunc
}

func (t *staticTarget) Name() string { return t.name }

func (t *staticTarget) Invoke(_ any, args []any) (any, error) {
	return t.fn(args)
}

type methodTarget struct {
	class  string
	method string
	fn     MethodFunc
}

func (t *methodTarget) Name() string { return t.method }

func (t *methodTarget) Invoke(recv any, args []any) (any, error) {
	return t.fn(recv, args)
}

type ctorTarget struct {
	class string
	fn    CtorFunc
}

func (t *ctorTarget) Name() string { return "New" + strcase.ToCamel(t.class) }

func (t *ctorTarget) Invoke(_ any, args []any) (any, error) {
	return t.fn(args)
}

var (
	_ codegen.Callable = &staticTarget{}
	_ codegen.Callable = &methodTarget{}
	_ codegen.Callable = &ctorTarget{}
)

package rowtype

import "fmt"

// Type is the semantic type of a value flowing through a row/object
// conversion. The set of types is closed: conversions are planned against
// known schemas, so there is no inference and no unification here.
type Type interface {
	Name() string
	Eq(Type) bool
	fmt.Stringer
}

// Primitive covers the scalar semantic types.
type Primitive string

const (
	Bool   Primitive = "Boolean"
	Int    Primitive = "Int"
	Float  Primitive = "Float"
	String Primitive = "String"
	Binary Primitive = "Binary"
)

func (p Primitive) Name() string { return string(p) }

func (p Primitive) Eq(other Type) bool {
	o, ok := other.(Primitive)
	return ok && o == p
}

func (p Primitive) String() string { return string(p) }

// Object is an opaque host-side value identified by its class name.
type Object struct {
	Class string
}

func (o Object) Name() string { return fmt.Sprintf("Object<%s>", o.Class) }

func (o Object) Eq(other Type) bool {
	ot, ok := other.(Object)
	return ok && ot.Class == o.Class
}

func (o Object) String() string { return o.Name() }

// List is an index-addressable, variable-length sequence.
type List struct {
	Elem Type
}

func (l List) Name() string { return fmt.Sprintf("List<%s>", l.Elem.Name()) }

func (l List) Eq(other Type) bool {
	ot, ok := other.(List)
	return ok && ot.Elem.Eq(l.Elem)
}

func (l List) String() string { return l.Name() }

// Array is a fixed-size sequence; its length is part of the type.
type Array struct {
	Elem Type
	Len  int
}

func (a Array) Name() string { return fmt.Sprintf("Array<%s,%d>", a.Elem.Name(), a.Len) }

func (a Array) Eq(other Type) bool {
	ot, ok := other.(Array)
	return ok && ot.Len == a.Len && ot.Elem.Eq(a.Elem)
}

func (a Array) String() string { return a.Name() }

// Option is an explicit optional box: a value plus a presence flag. It is
// the semantic counterpart of the codegen-level Option representation.
type Option struct {
	Elem Type
}

func (o Option) Name() string { return fmt.Sprintf("Option<%s>", o.Elem.Name()) }

func (o Option) Eq(other Type) bool {
	ot, ok := other.(Option)
	return ok && ot.Elem.Eq(o.Elem)
}

func (o Option) String() string { return o.Name() }

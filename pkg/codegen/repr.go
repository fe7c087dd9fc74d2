package codegen

import "fmt"

// Kind enumerates the target-language representations emitted code works
// with. Value kinds (Bool through String) cannot carry the null sentinel;
// reference kinds can.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindBytes
	KindObject
	KindSlice
	KindOption
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindObject:
		return "object"
	case KindSlice:
		return "slice"
	case KindOption:
		return "option"
	case KindAny:
		return "any"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Repr describes how a semantic type is represented in emitted code.
type Repr struct {
	Kind  Kind
	Class string // host class name, KindObject only
	Elem  *Repr  // element representation, KindSlice and KindOption
}

// NullCapable reports whether the representation can hold the null
// sentinel. Several nodes use this to decide whether an extra null-flag
// fixup is emitted after a call.
func (r Repr) NullCapable() bool {
	switch r.Kind {
	case KindBytes, KindObject, KindSlice, KindOption, KindAny:
		return true
	default:
		return false
	}
}

func (r Repr) String() string {
	switch r.Kind {
	case KindObject:
		if r.Class != "" {
			return fmt.Sprintf("object<%s>", r.Class)
		}
		return "object"
	case KindSlice:
		if r.Elem != nil {
			return fmt.Sprintf("slice<%s>", r.Elem)
		}
		return "slice"
	case KindOption:
		if r.Elem != nil {
			return fmt.Sprintf("option<%s>", r.Elem)
		}
		return "option"
	default:
		return r.Kind.String()
	}
}

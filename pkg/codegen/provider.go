package codegen

import (
	"github.com/vito/rowbind/pkg/rowtype"
)

// TypeProvider maps semantic types to target representations and default
// values. Implementations must be deterministic and total over every type
// the compiler is asked to handle; neither method may fail.
type TypeProvider interface {
	// TargetType returns the representation used for t in emitted code.
	TargetType(t rowtype.Type) Repr

	// DefaultValue returns the literal a result symbol of type t is
	// initialized to before it is conditionally assigned. For reference
	// representations this is the null sentinel.
	DefaultValue(t rowtype.Type) Lit
}

// StdProvider is the default semantic-type mapping.
type StdProvider struct{}

func (StdProvider) TargetType(t rowtype.Type) Repr {
	switch tt := t.(type) {
	case rowtype.Primitive:
		switch tt {
		case rowtype.Bool:
			return Repr{Kind: KindBool}
		case rowtype.Int:
			return Repr{Kind: KindInt}
		case rowtype.Float:
			return Repr{Kind: KindFloat}
		case rowtype.String:
			return Repr{Kind: KindString}
		case rowtype.Binary:
			return Repr{Kind: KindBytes}
		}
	case rowtype.Object:
		return Repr{Kind: KindObject, Class: tt.Class}
	case rowtype.List:
		elem := StdProvider{}.TargetType(tt.Elem)
		return Repr{Kind: KindSlice, Elem: &elem}
	case rowtype.Array:
		elem := StdProvider{}.TargetType(tt.Elem)
		return Repr{Kind: KindSlice, Elem: &elem}
	case rowtype.Option:
		elem := StdProvider{}.TargetType(tt.Elem)
		return Repr{Kind: KindOption, Elem: &elem}
	}
	// Unknown semantic types get the generic opaque representation.
	return Repr{Kind: KindAny}
}

func (StdProvider) DefaultValue(t rowtype.Type) Lit {
	if p, ok := t.(rowtype.Primitive); ok {
		switch p {
		case rowtype.Bool:
			return Lit{Val: false}
		case rowtype.Int:
			return Lit{Val: int64(0)}
		case rowtype.Float:
			return Lit{Val: float64(0)}
		case rowtype.String:
			return Lit{Val: ""}
		}
	}
	return Lit{Val: nil}
}

var _ TypeProvider = StdProvider{}

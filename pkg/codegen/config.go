package codegen

import (
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/vito/rowbind/pkg/rowtype"
)

// TypeTable is a deployment-supplied override of the standard type
// mapping, keyed by object class name. It lets a host pin the
// representation (and default value) used for a named class, e.g. to
// carry a URL class as a plain string.
type TypeTable struct {
	Classes map[string]ClassRepr `toml:"class"`
}

// ClassRepr is one class override.
type ClassRepr struct {
	Kind    string `toml:"kind"`
	Default any    `toml:"default"`
}

// LoadTypeTable reads a TOML type table and returns a provider that
// applies it on top of base. A nil base falls back to StdProvider.
func LoadTypeTable(path string, base TypeProvider) (*TableProvider, error) {
	var table TypeTable
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, errors.Wrapf(err, "loading type table %s", path)
	}
	return NewTableProvider(table, base)
}

// NewTableProvider validates the table and wraps base with it.
func NewTableProvider(table TypeTable, base TypeProvider) (*TableProvider, error) {
	if base == nil {
		base = StdProvider{}
	}
	reprs := make(map[string]Repr, len(table.Classes))
	defaults := make(map[string]Lit, len(table.Classes))
	for class, cr := range table.Classes {
		kind, err := kindFromString(cr.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "class %q", class)
		}
		reprs[class] = Repr{Kind: kind, Class: class}
		defaults[class] = Lit{Val: cr.Default}
		slog.Debug("adding type table entry", "class", class, "kind", cr.Kind)
	}
	return &TableProvider{base: base, reprs: reprs, defaults: defaults}, nil
}

// TableProvider applies per-class overrides on top of another provider.
type TableProvider struct {
	base     TypeProvider
	reprs    map[string]Repr
	defaults map[string]Lit
}

func (p *TableProvider) TargetType(t rowtype.Type) Repr {
	if obj, ok := t.(rowtype.Object); ok {
		if r, found := p.reprs[obj.Class]; found {
			return r
		}
	}
	return p.base.TargetType(t)
}

func (p *TableProvider) DefaultValue(t rowtype.Type) Lit {
	if obj, ok := t.(rowtype.Object); ok {
		if d, found := p.defaults[obj.Class]; found {
			return d
		}
	}
	return p.base.DefaultValue(t)
}

var _ TypeProvider = &TableProvider{}

func kindFromString(s string) (Kind, error) {
	switch s {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "string":
		return KindString, nil
	case "bytes":
		return KindBytes, nil
	case "object", "":
		return KindObject, nil
	case "any":
		return KindAny, nil
	default:
		return 0, errors.Errorf("unknown representation kind %q", s)
	}
}

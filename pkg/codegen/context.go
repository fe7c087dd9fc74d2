package codegen

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/vito/rowbind/pkg/rowtype"
)

// Symbol names a variable in the enclosing generated routine's scope.
type Symbol string

// InputSymbol names the generated routine's input row parameter. FreshName
// always suffixes a counter, so generated names can never collide with it.
const InputSymbol Symbol = "row"

// Context carries the per-compilation state threaded through code
// generation: a fresh-name counter and the type/representation provider.
// Create one per compiled routine and discard it afterwards.
type Context struct {
	provider TypeProvider
	counter  int
}

// NewContext returns a Context backed by the given provider. A nil
// provider selects StdProvider.
func NewContext(provider TypeProvider) *Context {
	if provider == nil {
		provider = StdProvider{}
	}
	return &Context{provider: provider}
}

// FreshName returns a symbol distinct from every other symbol issued by
// this Context. The hint is sanitized into a lowerCamel identifier and
// suffixed with a monotonically increasing counter.
func (c *Context) FreshName(hint string) Symbol {
	c.counter++
	return Symbol(fmt.Sprintf("%s_%d", sanitizeHint(hint), c.counter))
}

// TargetType maps a semantic type to its emitted-code representation.
func (c *Context) TargetType(t rowtype.Type) Repr {
	return c.provider.TargetType(t)
}

// DefaultValue returns the literal used to initialize a result symbol of
// the given type before it is conditionally assigned.
func (c *Context) DefaultValue(t rowtype.Type) Lit {
	return c.provider.DefaultValue(t)
}

func sanitizeHint(hint string) string {
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := strcase.ToLowerCamel(strings.Trim(b.String(), "_"))
	if cleaned == "" || (cleaned[0] >= '0' && cleaned[0] <= '9') {
		cleaned = "v" + cleaned
	}
	return cleaned
}

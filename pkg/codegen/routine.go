package codegen

// Routine is the assembled output of one compilation: the ordered
// preparation block plus the symbols the backend reads the result from.
type Routine struct {
	// Input names the routine's input row parameter.
	Input Symbol

	// Code is the full preparation block, in execution order.
	Code []Stmt

	// IsNull and Value are the root fragment's symbols: after Code has
	// executed, Value holds the converted result and IsNull reports
	// whether it is absent.
	IsNull Symbol
	Value  Symbol

	// Result is the representation of the routine's result value.
	Result Repr
}

// Option is the explicit optional box generated routines work with: a
// value plus a presence flag, rather than an inferred sentinel.
type Option struct {
	Val any
	Set bool
}

// Some boxes a present value.
func Some(v any) Option {
	return Option{Val: v, Set: true}
}

// None is the empty box.
func None() Option {
	return Option{}
}

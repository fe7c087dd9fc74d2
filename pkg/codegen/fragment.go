package codegen

// Fragment is what one node's code generation produces: a preparation
// block plus the two symbols the block leaves behind. Once Code has
// executed, Value holds the node's result and IsNull reports whether the
// result is absent. Fragments are spliced into the requesting parent's
// own block and never retained beyond one compilation pass.
type Fragment struct {
	Code   []Stmt
	IsNull Symbol
	Value  Symbol
}

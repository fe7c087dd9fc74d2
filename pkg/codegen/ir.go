package codegen

// The statement IR emitted by expression nodes. The sets are closed:
// the executor and the renderer both switch exhaustively over them.

// Stmt is one emitted preparation statement.
type Stmt interface{ isStmt() }

// Declare introduces a symbol with an optional initializer. A nil Init
// leaves the symbol at the representation's zero value.
type Declare struct {
	Sym  Symbol
	Type Repr
	Init Operand
}

// Assign stores an operand's value into an existing symbol.
type Assign struct {
	Sym Symbol
	Val Operand
}

// If executes Then when Cond holds, Else (possibly empty) otherwise.
type If struct {
	Cond Operand
	Then []Stmt
	Else []Stmt
}

// For binds Idx to each index in [0, Len) and executes Body.
type For struct {
	Idx  Symbol
	Len  Operand
	Body []Stmt
}

// Store writes Val at index Idx of the slice held by Arr.
type Store struct {
	Arr Symbol
	Idx Operand
	Val Operand
}

func (Declare) isStmt() {}
func (Assign) isStmt()  {}
func (If) isStmt()      {}
func (For) isStmt()     {}
func (Store) isStmt()   {}

// Operand is an emitted expression with no side effects beyond the call
// it may perform.
type Operand interface{ isOperand() }

// Lit is a literal value; a nil Val is the null sentinel.
type Lit struct {
	Val any
}

// Ref reads a previously declared symbol.
type Ref struct {
	Sym Symbol
}

// IsNull compares an operand against the null sentinel.
type IsNull struct {
	X Operand
}

// Not negates a boolean operand.
type Not struct {
	X Operand
}

// And is boolean conjunction.
type And struct {
	X, Y Operand
}

// Or is boolean disjunction.
type Or struct {
	X, Y Operand
}

// Call invokes a resolved callable. Recv is nil for free functions and
// constructors, and the receiver operand for instance methods.
type Call struct {
	Fn   Callable
	Recv Operand
	Args []Operand
}

// Coerce adapts an operand to the given representation.
type Coerce struct {
	X  Operand
	To Repr
}

// Index reads one element of an index-addressable collection.
type Index struct {
	Coll Operand
	Idx  Operand
}

// Length yields an index-addressable collection's element count.
type Length struct {
	Coll Operand
}

// MakeSlice allocates a slice of Len elements of the given representation.
type MakeSlice struct {
	Elem Repr
	Len  Operand
}

// OptEmpty reports whether an optional box is absent or empty.
type OptEmpty struct {
	X Operand
}

// OptGet projects an optional box down to its contained value.
type OptGet struct {
	X Operand
}

func (Lit) isOperand()       {}
func (Ref) isOperand()       {}
func (IsNull) isOperand()    {}
func (Not) isOperand()       {}
func (And) isOperand()       {}
func (Or) isOperand()        {}
func (Call) isOperand()      {}
func (Coerce) isOperand()    {}
func (Index) isOperand()     {}
func (Length) isOperand()    {}
func (MakeSlice) isOperand() {}
func (OptEmpty) isOperand()  {}
func (OptGet) isOperand()    {}

// Callable is a call target resolved once at tree-construction time,
// never late-bound by name inside emitted code.
type Callable interface {
	// Name is the symbolic name the renderer prints for the call.
	Name() string

	// Invoke performs the call against host values. Recv is nil for free
	// functions and constructors.
	Invoke(recv any, args []any) (any, error)
}

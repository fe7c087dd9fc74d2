package codegen

import (
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
)

// The executor tests drive hand-built routines; whole-tree behavior is
// covered by the objexpr package.

func TestRunStraightLine(t *testing.T) {
	r := &Routine{
		Input: InputSymbol,
		Code: []Stmt{
			Declare{Sym: "x_1", Type: Repr{Kind: KindAny}, Init: Index{Coll: Ref{Sym: InputSymbol}, Idx: Lit{Val: 0}}},
			Declare{Sym: "isNull_2", Type: Repr{Kind: KindBool}, Init: IsNull{X: Ref{Sym: "x_1"}}},
		},
		IsNull: "isNull_2",
		Value:  "x_1",
	}

	out, isNull, err := r.Run([]any{42})
	assert.NilError(t, err)
	assert.Assert(t, !isNull)
	assert.Equal(t, out, 42)

	_, isNull, err = r.Run([]any{nil})
	assert.NilError(t, err)
	assert.Assert(t, isNull)
}

func TestRunConditionals(t *testing.T) {
	r := &Routine{
		Code: []Stmt{
			Declare{Sym: "v_1", Type: Repr{Kind: KindString}, Init: Lit{Val: "else"}},
			If{
				Cond: And{X: Lit{Val: true}, Y: Not{X: Lit{Val: false}}},
				Then: []Stmt{Assign{Sym: "v_1", Val: Lit{Val: "then"}}},
				Else: []Stmt{Assign{Sym: "v_1", Val: Lit{Val: "unreachable"}}},
			},
			Declare{Sym: "isNull_2", Type: Repr{Kind: KindBool}, Init: Lit{Val: false}},
		},
		IsNull: "isNull_2",
		Value:  "v_1",
	}

	out, isNull, err := r.Run(nil)
	assert.NilError(t, err)
	assert.Assert(t, !isNull)
	assert.Equal(t, out, "then")
}

func TestRunLoopAndStore(t *testing.T) {
	// Copy the input collection element by element.
	r := &Routine{
		Input: InputSymbol,
		Code: []Stmt{
			Declare{Sym: "in_1", Type: Repr{Kind: KindSlice}, Init: Index{Coll: Ref{Sym: InputSymbol}, Idx: Lit{Val: 0}}},
			Declare{Sym: "out_2", Type: Repr{Kind: KindSlice}, Init: MakeSlice{Elem: Repr{Kind: KindAny}, Len: Length{Coll: Ref{Sym: "in_1"}}}},
			For{
				Idx: "i_3",
				Len: Length{Coll: Ref{Sym: "in_1"}},
				Body: []Stmt{
					Store{Arr: "out_2", Idx: Ref{Sym: "i_3"}, Val: Index{Coll: Ref{Sym: "in_1"}, Idx: Ref{Sym: "i_3"}}},
				},
			},
			Declare{Sym: "isNull_4", Type: Repr{Kind: KindBool}, Init: Lit{Val: false}},
		},
		IsNull: "isNull_4",
		Value:  "out_2",
	}

	out, isNull, err := r.Run([]any{[]any{"a", "b", "c"}})
	assert.NilError(t, err)
	assert.Assert(t, !isNull)
	assert.Assert(t, cmp.DeepEqual(out, []any{"a", "b", "c"}))
}

func TestRunOptionals(t *testing.T) {
	box := func(v any) *Routine {
		return &Routine{
			Code: []Stmt{
				Declare{Sym: "box_1", Type: Repr{Kind: KindOption}, Init: Lit{Val: v}},
				Declare{Sym: "isNull_2", Type: Repr{Kind: KindBool}, Init: OptEmpty{X: Ref{Sym: "box_1"}}},
				Declare{Sym: "v_3", Type: Repr{Kind: KindAny}, Init: Lit{Val: nil}},
				If{
					Cond: Not{X: Ref{Sym: "isNull_2"}},
					Then: []Stmt{Assign{Sym: "v_3", Val: OptGet{X: Ref{Sym: "box_1"}}}},
				},
			},
			IsNull: "isNull_2",
			Value:  "v_3",
		}
	}

	out, isNull, err := box(Some("hello")).Run(nil)
	assert.NilError(t, err)
	assert.Assert(t, !isNull)
	assert.Equal(t, out, "hello")

	_, isNull, err = box(None()).Run(nil)
	assert.NilError(t, err)
	assert.Assert(t, isNull)

	// An absent box counts as empty.
	_, isNull, err = box(nil).Run(nil)
	assert.NilError(t, err)
	assert.Assert(t, isNull)
}

func TestRunReflectiveCollections(t *testing.T) {
	// Typed slices and fixed-size arrays are both index-addressable.
	r := &Routine{
		Input: InputSymbol,
		Code: []Stmt{
			Declare{Sym: "c_1", Type: Repr{Kind: KindSlice}, Init: Index{Coll: Ref{Sym: InputSymbol}, Idx: Lit{Val: 0}}},
			Declare{Sym: "v_2", Type: Repr{Kind: KindAny}, Init: Index{Coll: Ref{Sym: "c_1"}, Idx: Lit{Val: 1}}},
			Declare{Sym: "isNull_3", Type: Repr{Kind: KindBool}, Init: Lit{Val: false}},
		},
		IsNull: "isNull_3",
		Value:  "v_2",
	}

	out, _, err := r.Run([]any{[]int{10, 20, 30}})
	assert.NilError(t, err)
	assert.Equal(t, out, 20)

	out, _, err = r.Run([]any{[2]string{"x", "y"}})
	assert.NilError(t, err)
	assert.Equal(t, out, "y")
}

func TestRunErrors(t *testing.T) {
	_, _, err := (&Routine{
		Code:   []Stmt{Declare{Sym: "v_1", Type: Repr{Kind: KindAny}, Init: Ref{Sym: "missing_9"}}},
		IsNull: "none",
		Value:  "v_1",
	}).Run(nil)
	assert.ErrorContains(t, err, "unbound symbol")

	_, _, err = (&Routine{
		Code:   nil,
		IsNull: "never_bound",
		Value:  "v",
	}).Run(nil)
	assert.ErrorContains(t, err, "null flag")
}

package objexpr

// substitute returns a copy of tree with every occurrence of the given
// placeholder (matched by identity) replaced by lv. The original tree is
// never mutated; untouched leaves are shared, every node on a path to a
// replacement is copied.
func substitute(tree Node, placeholder *elemRef, lv *LambdaVariable) Node {
	switch n := tree.(type) {
	case *elemRef:
		if n == placeholder {
			return lv
		}
		return n
	case *StaticInvoke:
		cp := *n
		cp.args = substituteAll(n.args, placeholder, lv)
		return &cp
	case *Invoke:
		cp := *n
		cp.recv = substitute(n.recv, placeholder, lv)
		cp.args = substituteAll(n.args, placeholder, lv)
		return &cp
	case *NewInstance:
		cp := *n
		cp.args = substituteAll(n.args, placeholder, lv)
		return &cp
	case *UnwrapOption:
		cp := *n
		cp.inner = substitute(n.inner, placeholder, lv)
		return &cp
	case *MapObjects:
		// A nested mapping owns its own placeholder; only the outer one is
		// rewritten here, wherever it occurs in the nested input or body.
		cp := *n
		cp.input = substitute(n.input, placeholder, lv)
		cp.body = substitute(n.body, placeholder, lv)
		return &cp
	default:
		// Leaves: Literal, InputRef, LambdaVariable.
		return tree
	}
}

func substituteAll(nodes []Node, placeholder *elemRef, lv *LambdaVariable) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = substitute(n, placeholder, lv)
	}
	return out
}

package ir

// Walk visits n and its children depth-first in evaluation order.
// Returning false from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if isNilNode(n) || !fn(n) {
		return
	}
	switch x := n.(type) {
	case *Unary:
		Walk(x.Operand, fn)
	case *Binary:
		Walk(x.Left, fn)
		Walk(x.Right, fn)
	case *Aggregate:
		for _, c := range x.Seq {
			Walk(c, fn)
		}
	case *Selection:
		Walk(x.Cond, fn)
		Walk(x.True, fn)
		Walk(x.False, fn)
	case *Loop:
		if x.TestFirst {
			Walk(x.Test, fn)
			Walk(x.Body, fn)
		} else {
			Walk(x.Body, fn)
			Walk(x.Test, fn)
		}
		Walk(x.Terminal, fn)
	case *Switch:
		Walk(x.Cond, fn)
		Walk(x.Body, fn)
	case *Branch:
		Walk(x.Expr, fn)
	case *Method:
		Walk(x.Object, fn)
	}
}

// Find returns the first node for which pred holds, or nil.
func Find(root Node, pred func(Node) bool) Node {
	var found Node
	Walk(root, func(n Node) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

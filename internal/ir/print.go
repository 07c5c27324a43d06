package ir

import (
	"fmt"
	"io"
	"strings"

	"hlslc/internal/types"
)

// Dump writes an indented tree of n to w.
func Dump(w io.Writer, n Node) {
	p := printer{w: w}
	p.node(n, 0)
}

// DumpString returns the tree of n as a string.
func DumpString(n Node) string {
	var sb strings.Builder
	Dump(&sb, n)
	return sb.String()
}

// DumpModule writes the stage configuration and the tree.
func DumpModule(w io.Writer, m *Module) {
	fmt.Fprintf(w, "stage %s\n", m.Stage)
	if m.EntryPoint != "" {
		fmt.Fprintf(w, "entry-point: %s\n", m.EntryPoint)
	}
	if m.Stage == StageCompute {
		fmt.Fprintf(w, "local_size = (%d, %d, %d)\n", m.LocalSize[0], m.LocalSize[1], m.LocalSize[2])
	}
	if m.Vertices != 0 {
		fmt.Fprintf(w, "vertices = %d\n", m.Vertices)
	}
	if m.InputPrimitive != PrimNone {
		fmt.Fprintf(w, "input primitive = %s\n", m.InputPrimitive)
	}
	if m.OutputPrimitive != PrimNone {
		fmt.Fprintf(w, "output primitive = %s\n", m.OutputPrimitive)
	}
	switch m.Depth {
	case types.DepthGreater:
		fmt.Fprintln(w, "using depth_greater")
	case types.DepthLess:
		fmt.Fprintln(w, "using depth_less")
	}
	if m.EarlyFragment {
		fmt.Fprintln(w, "using early_fragment_tests")
	}
	// после Finish список Linker Objects уже стоит в конце дерева
	p := printer{w: w}
	p.node(m.Root, 0)
}

type printer struct {
	w io.Writer
}

func (p *printer) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func typeLabel(t *types.Type) string {
	if t == nil {
		return "?"
	}
	q := t.Qualifier
	storage := "temp"
	if q.Storage != types.Temporary {
		storage = q.Storage.String()
	}
	var extra string
	if q.Builtin != types.BuiltinNone {
		extra = " " + q.Builtin.String()
	}
	if v, ok := q.Layout(types.LayLocation); ok {
		extra += fmt.Sprintf(" location=%d", v)
	}
	return storage + " " + t.String() + extra
}

func (p *printer) node(n Node, depth int) {
	if isNilNode(n) {
		return
	}
	switch x := n.(type) {
	case *Symbol:
		p.line(depth, "'%s' (id %d) (%s)", x.Name, x.ID, typeLabel(x.Type()))
	case *Constant:
		vals := make([]string, len(x.Values))
		for i, v := range x.Values {
			vals[i] = v.String()
		}
		p.line(depth, "Constant: %s (%s)", strings.Join(vals, ", "), typeLabel(x.Type()))
	case *Unary:
		if x.Op == OpConvert {
			p.line(depth, "Convert %s to %s (%s)", x.Operand.Type().Basic, x.Type().Basic, typeLabel(x.Type()))
		} else {
			p.line(depth, "%s (%s)", x.Op, typeLabel(x.Type()))
		}
		p.node(x.Operand, depth+1)
	case *Binary:
		p.line(depth, "%s (%s)", x.Op, typeLabel(x.Type()))
		p.node(x.Left, depth+1)
		if x.Op == OpVectorSwizzle || x.Op == OpMatrixSwizzle {
			comps := SwizzleComponents(x.Right)
			s := make([]string, len(comps))
			for i, c := range comps {
				s[i] = fmt.Sprint(c)
			}
			p.line(depth+1, "Sequence %s", strings.Join(s, ","))
			return
		}
		p.node(x.Right, depth+1)
	case *Aggregate:
		switch x.Op {
		case OpSequence, OpNull:
			p.line(depth, "Sequence")
		case OpLinkerObjects:
			p.line(depth, "Linker Objects")
		case OpParameters:
			p.line(depth, "Function Parameters:")
		case OpFunction:
			p.line(depth, "Function Definition: %s (%s)", x.Name, typeLabel(x.Type()))
		case OpFunctionCall:
			p.line(depth, "Function Call: %s (%s)", x.Name, typeLabel(x.Type()))
		case OpConstruct:
			p.line(depth, "Construct %s (%s)", x.Type(), typeLabel(x.Type()))
		default:
			p.line(depth, "%s (%s)", x.Op, typeLabel(x.Type()))
		}
		for _, c := range x.Seq {
			p.node(c, depth+1)
		}
	case *Selection:
		p.line(depth, "Test condition and select (%s)", typeLabel(x.Type()))
		p.line(depth+1, "Condition")
		p.node(x.Cond, depth+2)
		if !isNilNode(x.True) {
			p.line(depth+1, "true case")
			p.node(x.True, depth+2)
		} else {
			p.line(depth+1, "true case is null")
		}
		if !isNilNode(x.False) {
			p.line(depth+1, "false case")
			p.node(x.False, depth+2)
		}
	case *Loop:
		if x.TestFirst {
			p.line(depth, "Loop with condition tested first")
		} else {
			p.line(depth, "Loop with condition not tested first")
		}
		if !isNilNode(x.Test) {
			p.line(depth+1, "Loop Condition")
			p.node(x.Test, depth+2)
		} else {
			p.line(depth+1, "No loop condition")
		}
		if !isNilNode(x.Body) {
			p.line(depth+1, "Loop Body")
			p.node(x.Body, depth+2)
		} else {
			p.line(depth+1, "No loop body")
		}
		if !isNilNode(x.Terminal) {
			p.line(depth+1, "Loop Terminal Expression")
			p.node(x.Terminal, depth+2)
		}
	case *Switch:
		p.line(depth, "switch")
		p.line(depth+1, "condition")
		p.node(x.Cond, depth+2)
		p.line(depth+1, "body")
		p.node(x.Body, depth+2)
	case *Branch:
		switch {
		case x.Op == OpCase:
			p.line(depth, "case: with expression")
		case x.Op == OpDefault:
			p.line(depth, "default:")
			return
		case isNilNode(x.Expr):
			p.line(depth, "Branch: %s", x.Op)
			return
		default:
			p.line(depth, "Branch: %s with expression", x.Op)
		}
		p.node(x.Expr, depth+1)
	case *Method:
		p.line(depth, "method: %s (%s)", x.Name, typeLabel(x.Type()))
		p.node(x.Object, depth+1)
	}
}

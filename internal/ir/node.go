package ir

import (
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// SymbolID is the stable handle of a variable or function in the symbol arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol.
const NoSymbolID SymbolID = 0

// IsValid reports whether id refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// Node is any IR tree node.
type Node interface {
	Span() source.Span
	SetSpan(source.Span)
	isNode()
}

// Typed is a node that produces a value.
type Typed interface {
	Node
	Type() *types.Type
	SetType(*types.Type)
}

type nodeBase struct{ span source.Span }

func (n *nodeBase) Span() source.Span      { return n.span }
func (n *nodeBase) SetSpan(sp source.Span) { n.span = sp }
func (*nodeBase) isNode()                  {}

type typedBase struct {
	nodeBase
	typ *types.Type
}

func (n *typedBase) Type() *types.Type     { return n.typ }
func (n *typedBase) SetType(t *types.Type) { n.typ = t }

// Symbol references a variable.
type Symbol struct {
	typedBase
	ID    SymbolID
	Name  string
	Const []types.ConstUnion // folded value of const variables

	// Shadow marks a partially dereferenced flattened or split aggregate.
	// Subset is the position in the flatten offset tree, Path the member
	// path inside a split variable.
	Shadow bool
	Subset int
	Path   string
}

// Constant is a folded constant of any non-opaque type; values are flat,
// matrices column by column.
type Constant struct {
	typedBase
	Values []types.ConstUnion
}

// Unary is a one-operand operation, including one-argument builtins.
type Unary struct {
	typedBase
	Op      Op
	Operand Typed
}

// Binary is a two-operand operation, indexing and assignment included.
type Binary struct {
	typedBase
	Op    Op
	Left  Typed
	Right Typed
}

// Aggregate is a sequence, call, constructor or multi-argument builtin.
type Aggregate struct {
	typedBase
	Op          Op
	Seq         []Node
	Name        string // mangled callee or function name
	UserDefined bool
	Callee      SymbolID
	Directions  []types.Storage // parameter directions of calls
}

// Args returns the typed operands of the aggregate.
func (a *Aggregate) Args() []Typed {
	out := make([]Typed, 0, len(a.Seq))
	for _, n := range a.Seq {
		if t, ok := n.(Typed); ok {
			out = append(out, t)
		}
	}
	return out
}

// SelectionControl carries [flatten] / [branch].
type SelectionControl uint8

const (
	SelectionNone SelectionControl = iota
	SelectionFlatten
	SelectionDontFlatten
)

// Selection is if/else or ?:. Statements have void type.
type Selection struct {
	typedBase
	Cond    Typed
	True    Node
	False   Node
	Control SelectionControl
	Ternary bool
}

// LoopControl carries [unroll] / [loop] / [fastopt] / [allow_uav_condition].
type LoopControl uint8

const (
	LoopNone LoopControl = iota
	LoopUnroll
	LoopDontUnroll
)

// Loop is for/while/do.
type Loop struct {
	nodeBase
	Body      Node
	Test      Typed
	Terminal  Typed
	TestFirst bool
	Control   LoopControl
	Unroll    int
}

// Switch holds the condition and a body of case labels and statement runs.
type Switch struct {
	nodeBase
	Cond    Typed
	Body    *Aggregate
	Control SelectionControl
}

// Branch is return/break/continue/discard and case/default labels.
type Branch struct {
	nodeBase
	Op   Op
	Expr Typed
}

// Method is a method name bound to its object, waiting for the argument list.
type Method struct {
	typedBase
	Object Typed
	Name   string
}

// AsConstant returns n as a constant when it is one.
func AsConstant(n Node) (*Constant, bool) {
	c, ok := n.(*Constant)
	return c, ok
}

// AsSymbol returns n as a symbol reference when it is one.
func AsSymbol(n Node) (*Symbol, bool) {
	s, ok := n.(*Symbol)
	return s, ok
}

// AsAggregate returns n as an aggregate when it is one.
func AsAggregate(n Node) (*Aggregate, bool) {
	a, ok := n.(*Aggregate)
	return a, ok
}

// AsBinary returns n as a binary node with the given op.
func AsBinary(n Node, op Op) (*Binary, bool) {
	b, ok := n.(*Binary)
	if !ok || b.Op != op {
		return nil, false
	}
	return b, true
}

// IsConstant reports a folded constant.
func IsConstant(n Node) bool {
	_, ok := n.(*Constant)
	return ok
}

// BaseSymbol walks index and swizzle chains down to the indexed variable.
func BaseSymbol(n Typed) *Symbol {
	for {
		switch x := n.(type) {
		case *Symbol:
			return x
		case *Binary:
			if !x.Op.IsIndex() {
				return nil
			}
			n = x.Left
		default:
			return nil
		}
	}
}

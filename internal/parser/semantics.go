package parser

import (
	"strings"

	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/token"
	"hlslc/internal/types"
)

// Attribute is one `[name(args)]` or `[[ns::name(args)]]` entry.
type Attribute struct {
	Namespace string
	Name      string
	Args      []ir.Typed
	Span      source.Span
}

// Attributes - список атрибутов в порядке появления.
type Attributes []Attribute

// Find returns the first attribute named name (case-insensitive, HLSL style).
func (a Attributes) Find(name string) (Attribute, bool) {
	for _, attr := range a {
		if strings.EqualFold(attr.Name, name) {
			return attr, true
		}
	}
	return Attribute{}, false
}

// LoopKind - разновидность цикла.
type LoopKind uint8

const (
	LoopWhile LoopKind = iota
	LoopDo
	LoopFor
)

// Semantics is everything the grammar needs from the semantic engine. The
// grammar itself never builds IR nor touches the symbol table; every such
// action goes through this interface.
type Semantics interface {
	// области видимости
	PushScope(sp source.Span)
	PopScope()
	PushNamespace(name string)
	PopNamespace()
	// FullName prefixes name with the open namespaces when at global level.
	FullName(name string) string
	AtGlobalLevel() bool

	// типы и квалификаторы
	LookupType(name string) (*types.Type, bool)
	TextureReturnType(sp source.Span, s *types.Sampler, elem *types.Type) (format string, ok bool)
	StructBufferType(sp source.Span, kind types.ObjectKind, elem *types.Type) *types.Type
	HandleInputGeometry(sp source.Span, prim ir.Primitive) bool
	HandleOutputGeometry(sp source.Span, prim ir.Primitive) bool
	ArraySize(sp source.Span, size ir.Typed) types.ArrayDim
	DeclareStruct(sp source.Span, t *types.Type)
	DeclareTypedef(sp source.Span, name string, t *types.Type)
	MergeQualifier(sp source.Span, dst *types.Qualifier, src types.Qualifier)
	SetLayoutQualifier(sp source.Span, q *types.Qualifier, id string, value ir.Typed)
	HandleSemantic(sp source.Span, q *types.Qualifier, semantic string)
	HandleRegister(sp source.Span, q *types.Qualifier, profile, desc string, subComponent int, space string)
	HandlePackOffset(sp source.Span, q *types.Qualifier, location, component string)
	TransferAttributes(sp source.Span, attrs Attributes, t *types.Type)

	// объявления
	DeclareVariable(sp source.Span, name string, t *types.Type, init ir.Typed) ir.Node
	DeclareBlock(sp source.Span, t *types.Type, name string)
	FixParameter(sp source.Span, t *types.Type)
	DefaultParameter(sp source.Span, t *types.Type, value ir.Typed) ir.Typed
	DeclareFunction(sp source.Span, fn *symbols.Function)
	BeginFunction(sp source.Span, fn *symbols.Function, attrs Attributes)
	EndFunction(sp source.Span, fn *symbols.Function, body ir.Node) ir.Node

	// выражения
	HandleLiteral(tok token.Token) ir.Typed
	HandleVariable(sp source.Span, name string) ir.Typed
	HandleBinary(sp source.Span, op ir.Op, l, r ir.Typed) ir.Typed
	HandleUnary(sp source.Span, op ir.Op, x ir.Typed) ir.Typed
	HandleAssign(sp source.Span, op ir.Op, l, r ir.Typed) ir.Typed
	HandleTernary(sp source.Span, cond, t, f ir.Typed) ir.Typed
	HandleComma(sp source.Span, l, r ir.Typed) ir.Typed
	ConvertCondition(sp source.Span, cond ir.Typed) ir.Typed
	HandleDot(sp source.Span, base ir.Typed, field string) ir.Typed
	HandleBracket(sp source.Span, base, index ir.Typed) ir.Typed
	// HandleCall resolves a function call; object is the receiver of a method call or nil.
	HandleCall(sp source.Span, name string, object ir.Typed, args []ir.Typed) ir.Typed
	HandleConstructor(sp source.Span, t *types.Type, args []ir.Typed) ir.Typed
	HandleCast(sp source.Span, t *types.Type, x ir.Typed) ir.Typed
	HandleInitializerList(sp source.Span, elems []ir.Typed) ir.Typed

	// операторы
	Grow(left, right ir.Node, sp source.Span) ir.Node
	HandleSequence(sp source.Span, stmts ir.Node) ir.Node
	HandleSelection(sp source.Span, cond ir.Typed, then, els ir.Node, attrs Attributes) ir.Node
	BeginLoop()
	EndLoop()
	HandleLoop(sp source.Span, kind LoopKind, init ir.Node, cond, iter ir.Typed, body ir.Node, attrs Attributes) ir.Node
	BeginSwitch()
	WrapupSwitchSubsequence(stmts ir.Node, label ir.Node)
	EndSwitch(sp source.Span, cond ir.Typed, last ir.Node, attrs Attributes) ir.Node
	HandleCaseLabel(sp source.Span, value ir.Typed) ir.Node
	HandleDefaultLabel(sp source.Span) ir.Node
	HandleBranch(sp source.Span, op ir.Op) ir.Node
	HandleReturn(sp source.Span, value ir.Typed) ir.Node

	SetTreeRoot(root ir.Node)
}

package symbols

import (
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
	SymbolType // struct name or typedef
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	default:
		return "invalid"
	}
}

// Param is one formal parameter of a function.
type Param struct {
	Name    string
	Type    *types.Type
	Default ir.Typed // nil when the parameter has no default value
	Span    source.Span
}

// Function is the signature of a user function or a builtin prototype.
type Function struct {
	Name    string
	Mangled string
	Params  []Param
	Return  *types.Type
	// Op maps a builtin to its IR operator; OpNull for user functions.
	Op         ir.Op
	Builtin    bool
	Defined    bool
	Prototyped bool
	Called     bool
	EntryPoint bool
	Span       source.Span
}

// NewFunction computes the mangled name from the parameter types.
func NewFunction(name string, ret *types.Type, params []Param) *Function {
	f := &Function{Name: name, Return: ret, Params: params}
	f.Remangle()
	return f
}

// Remangle recomputes Mangled after parameter types change.
func (f *Function) Remangle() {
	ts := make([]*types.Type, len(f.Params))
	for i, p := range f.Params {
		ts[i] = p.Type
	}
	f.Mangled = types.MangledName(f.Name, ts)
}

// MinArgs is the number of parameters without a default value.
func (f *Function) MinArgs() int {
	n := len(f.Params)
	for n > 0 && f.Params[n-1].Default != nil {
		n--
	}
	return n
}

// Direction returns the storage direction of parameter i (in, out, inout).
func (f *Function) Direction(i int) types.Storage {
	switch s := f.Params[i].Type.Qualifier.Storage; s {
	case types.Out, types.InOut:
		return s
	}
	return types.In
}

// HasOutputs reports any out or inout parameter.
func (f *Function) HasOutputs() bool {
	for i := range f.Params {
		if f.Direction(i) != types.In {
			return true
		}
	}
	return false
}

// Symbol is a name bound in a scope.
type Symbol struct {
	ID    SymbolID
	Kind  SymbolKind
	Name  string
	Type  *types.Type
	Const []types.ConstUnion // folded value of a const variable
	Span  source.Span
	Scope ScopeID
	Func  *Function

	// Container is set for members of an anonymous cbuffer promoted into
	// the global namespace; MemberIndex is the member position.
	Container   SymbolID
	MemberIndex int

	Promoted bool
	Internal bool // compiler temporary, not bound to any scope
}

// IsBuiltin reports a builtin function prototype.
func (s *Symbol) IsBuiltin() bool { return s != nil && s.Func != nil && s.Func.Builtin }

// IsConst reports a variable with a folded constant value.
func (s *Symbol) IsConst() bool { return s != nil && s.Kind == SymbolVariable && len(s.Const) > 0 }

// IsMember reports a promoted block member.
func (s *Symbol) IsMember() bool { return s != nil && s.Container.IsValid() }

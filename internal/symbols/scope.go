package symbols

import "hlslc/internal/source"

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeBuiltin            // level 0, intrinsic prototypes
	ScopeGlobal             // level 1, top-level declarations
	ScopeFunction           // parameters and body of a function
	ScopeBlock              // compound statement, loop, branch with declaration
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeBuiltin:
		return "builtin"
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Level     int
	Span      source.Span
	NameIndex map[string][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}

func (s *Scope) lookup(name string) []SymbolID {
	if s == nil {
		return nil
	}
	return s.NameIndex[name]
}

package symbols

import "hlslc/internal/ir"

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID is the stable handle of a symbol. IR symbol nodes carry the same
// value, so flatten and split records can be keyed by it.
type SymbolID = ir.SymbolID

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID = ir.NoSymbolID

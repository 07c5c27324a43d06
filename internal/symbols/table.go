package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"hlslc/internal/source"
	"hlslc/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// BuiltinLoader returns the intrinsic prototypes named name. The table calls
// it at most once per name.
type BuiltinLoader func(name string) []*Function

// Table is the symbol table of one compile session: arenas, the active scope
// stack and the lazily populated builtin level.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols

	builtin ScopeID
	global  ScopeID
	stack   []ScopeID

	loader   BuiltinLoader
	loaded   map[string]bool
	mangled  map[string]SymbolID // user functions by mangled name
	promoted []SymbolID
}

// NewTable builds a table with the builtin (level 0) and global (level 1)
// scopes already open.
func NewTable(h Hints, loader BuiltinLoader) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		loader:  loader,
		loaded:  make(map[string]bool),
		mangled: make(map[string]SymbolID),
	}
	t.builtin = t.Scopes.New(ScopeBuiltin, NoScopeID, source.Span{})
	t.global = t.Scopes.New(ScopeGlobal, t.builtin, source.Span{})
	t.stack = []ScopeID{t.builtin, t.global}
	return t
}

// Current returns the innermost open scope.
func (t *Table) Current() ScopeID { return t.stack[len(t.stack)-1] }

// Global returns the level-1 scope.
func (t *Table) Global() ScopeID { return t.global }

// Level is the nesting level of the innermost scope: 0 builtin, 1 global.
func (t *Table) Level() int { return len(t.stack) - 1 }

// AtBuiltinLevel reports whether only the builtin scope is open.
func (t *Table) AtBuiltinLevel() bool { return t.Level() == 0 }

// AtGlobalLevel reports whether the global scope is the innermost one.
func (t *Table) AtGlobalLevel() bool { return t.Level() == 1 }

// Push opens a nested scope.
func (t *Table) Push(kind ScopeKind, span source.Span) ScopeID {
	id := t.Scopes.New(kind, t.Current(), span)
	t.stack = append(t.stack, id)
	return id
}

// Pop closes the innermost nested scope. The global and builtin scopes are
// never popped; Pop reports false when asked to.
func (t *Table) Pop() bool {
	if len(t.stack) <= 2 {
		return false
	}
	t.stack = t.stack[:len(t.stack)-1]
	return true
}

// Balanced reports that every Push was matched by a Pop.
func (t *Table) Balanced() bool { return len(t.stack) == 2 }

// Get returns the symbol for id or nil.
func (t *Table) Get(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Find resolves name from the innermost scope outwards. Builtin prototypes
// are materialised on first use.
func (t *Table) Find(name string) *Symbol {
	for i := len(t.stack) - 1; i >= 1; i-- {
		if ids := t.Scopes.Get(t.stack[i]).lookup(name); len(ids) > 0 {
			return t.Symbols.Get(ids[0])
		}
	}
	t.loadBuiltins(name)
	if ids := t.Scopes.Get(t.builtin).lookup(name); len(ids) > 0 {
		return t.Symbols.Get(ids[0])
	}
	return nil
}

// FindLocal looks name up in the innermost scope only.
func (t *Table) FindLocal(name string) *Symbol {
	if ids := t.Scopes.Get(t.Current()).lookup(name); len(ids) > 0 {
		return t.Symbols.Get(ids[0])
	}
	return nil
}

// FindCandidates returns every function overload named name: user functions
// of all open scopes first (in declaration order), then builtins.
func (t *Table) FindCandidates(name string) []*Symbol {
	t.loadBuiltins(name)
	var out []*Symbol
	for i := len(t.stack) - 1; i >= 0; i-- {
		for _, id := range t.Scopes.Get(t.stack[i]).lookup(name) {
			if sym := t.Symbols.Get(id); sym.Kind == SymbolFunction {
				out = append(out, sym)
			}
		}
	}
	return out
}

// FindFunction returns the user function with the exact mangled name.
func (t *Table) FindFunction(mangled string) *Symbol {
	if id, ok := t.mangled[mangled]; ok {
		return t.Symbols.Get(id)
	}
	return nil
}

// Insert binds sym in the innermost scope. It reports false on a collision:
// any same-named symbol in this scope, unless both are functions with
// different signatures (overloads).
func (t *Table) Insert(sym Symbol) (*Symbol, bool) {
	return t.insertInto(t.Current(), sym)
}

// InsertGlobal binds sym at the global level regardless of the open scopes.
func (t *Table) InsertGlobal(sym Symbol) (*Symbol, bool) {
	return t.insertInto(t.global, sym)
}

func (t *Table) insertInto(scopeID ScopeID, sym Symbol) (*Symbol, bool) {
	scope := t.Scopes.Get(scopeID)
	for _, id := range scope.lookup(sym.Name) {
		prev := t.Symbols.Get(id)
		if prev.Kind != SymbolFunction || sym.Kind != SymbolFunction {
			return prev, false
		}
		if prev.Func.Mangled == sym.Func.Mangled {
			return prev, false
		}
	}
	sym.Scope = scopeID
	p := t.Symbols.New(sym)
	scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], p.ID)
	scope.Symbols = append(scope.Symbols, p.ID)
	if p.Kind == SymbolFunction && !p.Func.Builtin {
		t.mangled[p.Func.Mangled] = p.ID
	}
	return p, true
}

// NewVariable allocates a compiler temporary with its own handle. The
// temporary is not visible to name lookup.
func (t *Table) NewVariable(name string, typ *types.Type, span source.Span) *Symbol {
	return t.Symbols.New(Symbol{
		Kind:     SymbolVariable,
		Name:     name,
		Type:     typ,
		Span:     span,
		Internal: true,
	})
}

// Promote marks a symbol as linkage tracked: interstage I/O and global
// uniforms. Promoted symbols are reported in order of promotion.
func (t *Table) Promote(id SymbolID) {
	sym := t.Symbols.Get(id)
	if sym == nil || sym.Promoted {
		return
	}
	sym.Promoted = true
	t.promoted = append(t.promoted, id)
}

// Promoted lists promoted symbols in promotion order.
func (t *Table) Promoted() []SymbolID { return t.promoted }

func (t *Table) loadBuiltins(name string) {
	if t.loader == nil || t.loaded[name] {
		return
	}
	t.loaded[name] = true
	for _, fn := range t.loader(name) {
		t.insertInto(t.builtin, Symbol{
			Kind: SymbolFunction,
			Name: name,
			Type: fn.Return,
			Func: fn,
		})
	}
}

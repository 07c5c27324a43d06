package sema

import (
	"strings"

	"hlslc/internal/diag"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

const scopeSeparator = "::"

func (c *Context) PushScope(sp source.Span) {
	c.table.Push(symbols.ScopeBlock, sp)
}

func (c *Context) PopScope() {
	c.table.Pop()
}

// PushNamespace opens a namespace or a struct body for name qualification.
func (c *Context) PushNamespace(name string) {
	c.namespaces = append(c.namespaces, name)
}

func (c *Context) PopNamespace() {
	if len(c.namespaces) > 0 {
		c.namespaces = c.namespaces[:len(c.namespaces)-1]
	}
}

// FullName prefixes name with the open namespaces.
func (c *Context) FullName(name string) string {
	if len(c.namespaces) == 0 || !c.table.AtGlobalLevel() {
		return name
	}
	return strings.Join(c.namespaces, scopeSeparator) + scopeSeparator + name
}

func (c *Context) AtGlobalLevel() bool { return c.table.AtGlobalLevel() }

// find resolves name trying the innermost namespace qualification first:
// inside N::M a bare "x" is looked up as N::M::x, N::x, x.
func (c *Context) find(name string) *symbols.Symbol {
	for i := len(c.namespaces); i > 0; i-- {
		full := strings.Join(c.namespaces[:i], scopeSeparator) + scopeSeparator + name
		if sym := c.table.Find(full); sym != nil {
			return sym
		}
	}
	return c.table.Find(name)
}

// LookupType returns a declared struct or typedef. It never reports.
func (c *Context) LookupType(name string) (*types.Type, bool) {
	sym := c.find(name)
	if sym == nil || sym.Kind != symbols.SymbolType {
		return nil, false
	}
	return sym.Type, true
}

// DeclareStruct binds a named struct type. Blocks are declared by DeclareBlock.
func (c *Context) DeclareStruct(sp source.Span, t *types.Type) {
	if t.Basic != types.Struct || t.Struct == nil || t.Struct.Name == "" {
		return
	}
	c.checkStructMembers(t.Struct)
	name := c.FullName(t.Struct.Name)
	st := t.Clone()
	st.Qualifier = types.Qualifier{}
	st.TypeName = name
	if prev, ok := c.table.Insert(symbols.Symbol{Kind: symbols.SymbolType, Name: name, Type: st, Span: sp}); !ok {
		if prev.Kind == symbols.SymbolType && prev.Type.Struct == t.Struct {
			return
		}
		c.reportWithNote(diag.SemaRedefinition, sp, prev.Span, "previous declaration", "redefinition of %q", name)
	}
}

func (c *Context) checkStructMembers(def *types.StructDef) {
	seen := make(map[string]source.Span, len(def.Members))
	for _, m := range def.Members {
		if prev, dup := seen[m.Name]; dup {
			c.reportWithNote(diag.SemaBadStructMember, m.Span, prev, "previous member", "duplicate member %q", m.Name)
			continue
		}
		seen[m.Name] = m.Span
		if m.Type.IsImplicitlySizedArray() {
			c.report(diag.SemaImplicitArraySize, m.Span, "member %q has an implicitly sized array type", m.Name)
		}
	}
}

// DeclareTypedef binds name to t. Storage picked up from the declaration
// context (global uniform) does not belong to the type.
func (c *Context) DeclareTypedef(sp source.Span, name string, t *types.Type) {
	tt := t.Clone()
	tt.Qualifier.Storage = types.Temporary
	tt.Qualifier.Semantic = ""
	if tt.IsImplicitlySizedArray() {
		c.report(diag.SemaBadTypedef, sp, "typedef %q has an implicitly sized array type", name)
	}
	if prev, ok := c.table.Insert(symbols.Symbol{Kind: symbols.SymbolType, Name: name, Type: tt, Span: sp}); !ok {
		c.reportWithNote(diag.SemaRedefinition, sp, prev.Span, "previous declaration", "redefinition of %q", name)
	}
}

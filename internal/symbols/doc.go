// Package symbols is the scoped symbol table of a compile session.
//
// Every symbol lives in an arena and is addressed by a stable SymbolID; the
// same handle is carried by IR symbol nodes. Level 0 holds builtin
// prototypes (loaded per name on first lookup), level 1 the globals, deeper
// levels are pushed and popped by the grammar through the semantic layer.
package symbols

// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"hlslc/internal/ir"
	"hlslc/internal/source"
)

// CheckModuleInvariants runs a minimal set of structural checks on a
// compiled module:
// 1) every node span lies inside sf and points at sf
// 2) unary and binary nodes have all operands
// 3) linker objects are typed symbols with a valid id
func CheckModuleInvariants(m *ir.Module, sf *source.File) error {
	if m == nil || sf == nil {
		return fmt.Errorf("nil module or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("file too large: %w", err)
	}

	var firstErr error
	fail := func(n ir.Node, format string, args ...any) {
		if firstErr == nil {
			firstErr = fmt.Errorf("%T at %v: %s", n, n.Span(), fmt.Sprintf(format, args...))
		}
	}
	ir.Walk(m.Root, func(n ir.Node) bool {
		if firstErr != nil {
			return false
		}
		if sp := n.Span(); sp != (source.Span{}) {
			switch {
			case sp.File != sf.ID:
				fail(n, "span points to file %d, want %d", sp.File, sf.ID)
			case sp.End < sp.Start:
				fail(n, "span is inverted")
			case sp.End > size:
				fail(n, "span ends past the file (%d bytes)", size)
			}
		}
		switch x := n.(type) {
		case *ir.Unary:
			if x.Operand == nil {
				fail(n, "%s without operand", x.Op)
			}
		case *ir.Binary:
			if x.Left == nil || x.Right == nil {
				fail(n, "%s with a missing operand", x.Op)
			}
		}
		return true
	})
	if firstErr != nil {
		return firstErr
	}

	for i, sym := range m.LinkerObjects {
		if sym == nil || !sym.ID.IsValid() || sym.Type() == nil {
			return fmt.Errorf("linker object %d is not a typed symbol: %+v", i, sym)
		}
	}
	return nil
}

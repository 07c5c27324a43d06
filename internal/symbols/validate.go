package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			parent := t.Scopes.data[scope.Parent]
			if parent.Level+1 != scope.Level {
				errs = append(errs, fmt.Errorf("scope %d level %d under parent level %d", scopeID, scope.Level, parent.Level))
			}
			found := false
			for _, child := range parent.Children {
				if child == scopeID {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		}

		covered := make(map[SymbolID]struct{}, len(scope.Symbols))
		for name, bucket := range scope.NameIndex {
			for _, id := range bucket {
				sym := t.Symbols.Get(id)
				if sym == nil || sym.Scope != scopeID {
					errs = append(errs, fmt.Errorf("scope %d name index %q references foreign symbol %d", scopeID, name, id))
					continue
				}
				covered[id] = struct{}{}
			}
		}
		for _, id := range scope.Symbols {
			if _, ok := covered[id]; !ok {
				errs = append(errs, fmt.Errorf("scope %d symbol %d missing in name index", scopeID, id))
			}
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sym := t.Symbols.data[idx]
		if sym.ID != symbolID {
			errs = append(errs, fmt.Errorf("symbol %d carries id %d", symbolID, sym.ID))
		}
		if sym.Internal {
			continue
		}
		if t.Scopes.Get(sym.Scope) == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, sym.Scope))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}

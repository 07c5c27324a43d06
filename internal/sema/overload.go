package sema

import (
	"strings"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

// candidates finds the overload set of name, preferring the innermost
// namespace that declares it.
func (c *Context) candidates(name string) []*symbols.Symbol {
	for i := len(c.namespaces); i > 0; i-- {
		full := strings.Join(c.namespaces[:i], scopeSeparator) + scopeSeparator + name
		if cands := c.table.FindCandidates(full); len(cands) > 0 {
			return cands
		}
	}
	return c.table.FindCandidates(name)
}

// resolveOverload picks the function called with args. Exact matches win;
// then a first pass admits only promotions and a second pass any implicit
// conversion. Among viable candidates the one better than every other is
// chosen. Without such a candidate the call is ambiguous; the first
// candidate not beaten by a later one is kept for recovery.
func (c *Context) resolveOverload(sp source.Span, name string, cands []*symbols.Symbol, args []ir.Typed) *symbols.Symbol {
	for _, cand := range cands {
		if exactMatch(cand.Func, args) {
			return cand
		}
	}
	var viable []*symbols.Symbol
	for _, cand := range cands {
		if fn := cand.Func; len(args) >= fn.MinArgs() && len(args) <= len(fn.Params) {
			viable = append(viable, cand)
		}
	}
	for _, strict := range []bool{true, false} {
		var conv []*symbols.Symbol
		for _, cand := range viable {
			if convertible(cand.Func, args, strict) {
				conv = append(conv, cand)
			}
		}
		if len(conv) == 0 {
			continue
		}
		for _, cand := range conv {
			if beatsAll(cand, conv, args) {
				return cand
			}
		}
		c.report(diag.SemaAmbiguousCall, sp, "ambiguous call to %q with %s", name, describeArgs(args))
		best := conv[0]
		for _, cand := range conv[1:] {
			if betterCandidate(cand.Func, best.Func, args) == 1 {
				best = cand
			}
		}
		return best
	}
	c.report(diag.SemaNoMatchingOverload, sp, "no matching overload of %q for %s", name, describeArgs(args))
	return nil
}

// beatsAll reports that cand is strictly better than every other candidate
// or converts the arguments identically.
func beatsAll(cand *symbols.Symbol, conv []*symbols.Symbol, args []ir.Typed) bool {
	for _, other := range conv {
		if other == cand || dominated(cand.Func, other.Func, args) {
			continue
		}
		if betterCandidate(cand.Func, other.Func, args) != 1 {
			return false
		}
	}
	return true
}

func exactMatch(fn *symbols.Function, args []ir.Typed) bool {
	if len(args) != len(fn.Params) {
		return false
	}
	for i, a := range args {
		if !fn.Params[i].Type.Equal(a.Type()) {
			return false
		}
	}
	return true
}

func convertible(fn *symbols.Function, args []ir.Typed, strict bool) bool {
	for i, a := range args {
		from, to := a.Type(), fn.Params[i].Type
		ok := true
		switch fn.Direction(i) {
		case types.In:
			ok = canPass(from, to, strict)
		case types.Out:
			ok = canPass(to, from, strict)
		case types.InOut:
			ok = canPass(from, to, strict) && canPass(to, from, strict)
		}
		if !ok {
			return false
		}
	}
	return true
}

// canPass reports an implicit argument conversion. Strict mode admits only
// promotions: the component kind never loses rank and the shape is kept
// or broadcast from a scalar.
func canPass(from, to *types.Type, strict bool) bool {
	if from.Equal(to) {
		return true
	}
	if !ir.CanConvert(from, to) {
		return false
	}
	if !strict {
		return true
	}
	if from.Basic.Rank() > to.Basic.Rank() {
		return false
	}
	if from.IsArray() || to.IsArray() {
		return true
	}
	return from.IsScalarOrVec1() || from.SameElementShape(to)
}

// betterCandidate compares a and b argument by argument: 1 when a is at
// least as good everywhere and better somewhere, -1 for the reverse, 0
// otherwise. Out and inout arguments are compared first: they are written
// back, so a match there decides before any in argument does.
func betterCandidate(a, b *symbols.Function, args []ir.Typed) int {
	written := func(i int) bool { return a.Direction(i) != types.In || b.Direction(i) != types.In }
	if r := compareParams(a, b, args, written); r != 0 {
		return r
	}
	return compareParams(a, b, args, func(int) bool { return true })
}

func compareParams(a, b *symbols.Function, args []ir.Typed, use func(int) bool) int {
	aBetter, bBetter := false, false
	for i, arg := range args {
		if !use(i) {
			continue
		}
		switch betterParam(arg.Type(), a.Params[i].Type, b.Params[i].Type) {
		case 1:
			aBetter = true
		case -1:
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return 1
	case bBetter && !aBetter:
		return -1
	}
	return 0
}

// dominated reports that incumbent and challenger convert every argument
// identically; such a pair is not ambiguous.
func dominated(incumbent, challenger *symbols.Function, args []ir.Typed) bool {
	for i := range args {
		if !incumbent.Params[i].Type.Equal(challenger.Params[i].Type) {
			return false
		}
	}
	return true
}

// betterParam ranks two parameter types for one argument: an exact match
// first, then a matching shape, then the closest component kind.
func betterParam(arg, a, b *types.Type) int {
	if a.Equal(b) {
		return 0
	}
	switch ea, eb := arg.Equal(a), arg.Equal(b); {
	case ea && !eb:
		return 1
	case eb && !ea:
		return -1
	}
	switch sa, sb := arg.SameElementShape(a), arg.SameElementShape(b); {
	case sa && !sb:
		return 1
	case sb && !sa:
		return -1
	}
	da, db := kindDistance(arg.Basic, a.Basic), kindDistance(arg.Basic, b.Basic)
	switch {
	case da < db:
		return 1
	case db < da:
		return -1
	}
	return 0
}

// kindOrder places component kinds on a line; conversions to nearer kinds
// are preferred.
var kindOrder = map[types.Basic]int{
	types.Bool:   1,
	types.Int:    10,
	types.Uint:   11,
	types.Int64:  20,
	types.Uint64: 21,
	types.Float:  100,
	types.Double: 110,
}

func kindDistance(from, to types.Basic) int {
	d := kindOrder[to] - kindOrder[from]
	if d < 0 {
		// понижение всегда хуже повышения
		return -d + 1000
	}
	return d
}

func describeArgs(args []ir.Typed) string {
	if len(args) == 0 {
		return "()"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type().String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

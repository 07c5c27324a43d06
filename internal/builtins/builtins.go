package builtins

import (
	"strings"
	"sync"

	"hlslc/internal/ir"
	"hlslc/internal/symbols"
	"hlslc/internal/types"
)

var (
	byName = make(map[string][]entry, len(intrinsics))

	mu    sync.Mutex
	cache = make(map[string][]*symbols.Function)
)

func init() {
	for _, e := range intrinsics {
		byName[e.name] = append(byName[e.name], e)
	}
}

// Lookup returns the prototypes of intrinsic name, generating them on first
// use. The result is shared between sessions and must not be modified.
func Lookup(name string) []*symbols.Function {
	mu.Lock()
	defer mu.Unlock()
	if fns, ok := cache[name]; ok {
		return fns
	}
	var fns []*symbols.Function
	if name == "mul" {
		fns = mulPrototypes()
	} else {
		for _, e := range byName[name] {
			fns = append(fns, e.expand()...)
		}
	}
	fns = dedup(fns)
	cache[name] = fns
	return fns
}

// IsIntrinsic reports whether name is a known intrinsic function.
func IsIntrinsic(name string) bool {
	_, ok := byName[name]
	return ok || name == "mul"
}

// NotImplemented reports intrinsics that are recognised but not lowered
// (DX9 texture sampling, printf family, tessellation factor helpers).
func NotImplemented(name string) (ir.Op, bool) {
	op, ok := notImplemented[name]
	return op, ok
}

func dedup(fns []*symbols.Function) []*symbols.Function {
	seen := make(map[string]struct{}, len(fns))
	out := fns[:0]
	for _, f := range fns {
		if _, ok := seen[f.Mangled]; ok {
			continue
		}
		seen[f.Mangled] = struct{}{}
		out = append(out, f)
	}
	return out
}

type shape struct {
	size       int // vector size, 1 for scalars
	cols, rows int // matrix dimensions in IR terms
}

func (s shape) isMatrix() bool { return s.cols > 0 }

func expandShapes(spec string) []shape {
	var out []shape
	for _, c := range spec {
		switch {
		case c == 'S':
			out = append(out, shape{size: 1})
		case c == 'V':
			for n := 2; n <= 4; n++ {
				out = append(out, shape{size: n})
			}
		case c == 'M':
			for cols := 2; cols <= 4; cols++ {
				for rows := 2; rows <= 4; rows++ {
					out = append(out, shape{size: 1, cols: cols, rows: rows})
				}
			}
		case c == 'Q':
			for n := 2; n <= 4; n++ {
				out = append(out, shape{size: 1, cols: n, rows: n})
			}
		case c >= '1' && c <= '4':
			out = append(out, shape{size: int(c - '0')})
		}
	}
	return out
}

var kindLetters = map[byte]types.Basic{
	'F': types.Float,
	'D': types.Double,
	'I': types.Int,
	'U': types.Uint,
	'B': types.Bool,
}

func shapedType(k types.Basic, s shape) *types.Type {
	switch {
	case s.isMatrix():
		return types.NewMatrix(k, s.cols, s.rows)
	case s.size > 1:
		return types.NewVector(k, s.size)
	default:
		return types.NewScalar(k)
	}
}

// instantiate builds the type named by a two-letter template.
func instantiate(tmpl string, k types.Basic, s shape) *types.Type {
	if tmpl == "void" {
		return types.NewVoid()
	}
	if b, ok := kindLetters[tmpl[0]]; ok {
		k = b
	}
	switch c := tmpl[1]; {
	case c == 'T':
		return shapedType(k, s)
	case c == 'S':
		return types.NewScalar(k)
	case c == 'X':
		return types.NewMatrix(k, s.rows, s.cols)
	default:
		return shapedType(k, shape{size: int(c - '0')})
	}
}

type argTemplate struct {
	tmpl     string
	storage  types.Storage
	optional bool
}

func parseArgs(spec string) []argTemplate {
	var out []argTemplate
	storage := types.In
	for _, f := range strings.Fields(spec) {
		switch f {
		case "out":
			storage = types.Out
			continue
		case "inout":
			storage = types.InOut
			continue
		}
		a := argTemplate{tmpl: strings.TrimSuffix(f, "?"), storage: storage, optional: strings.HasSuffix(f, "?")}
		out = append(out, a)
		storage = types.In
	}
	return out
}

func (e entry) expand() []*symbols.Function {
	args := parseArgs(e.args)
	firstOptional := len(args)
	for i, a := range args {
		if a.optional {
			firstOptional = i
			break
		}
	}
	var out []*symbols.Function
	for _, s := range expandShapes(e.shapes) {
		for i := 0; i < len(e.kinds); i++ {
			k := kindLetters[e.kinds[i]]
			params := make([]symbols.Param, len(args))
			for j, a := range args {
				t := instantiate(a.tmpl, k, s)
				if a.storage != types.In {
					t.Qualifier.Storage = a.storage
				}
				params[j] = symbols.Param{Type: t}
			}
			ret := instantiate(e.ret, k, s)
			for n := firstOptional; n <= len(args); n++ {
				fn := symbols.NewFunction(e.name, ret, params[:n:n])
				fn.Op = e.op
				fn.Builtin = true
				out = append(out, fn)
			}
		}
	}
	return out
}

// mulPrototypes enumerates every legal operand pairing of mul(a, b).
// HLSL floatRxC is a matrix with R IR columns of C components.
func mulPrototypes() []*symbols.Function {
	var out []*symbols.Function
	add := func(ret, a, b *types.Type) {
		fn := symbols.NewFunction("mul", ret, []symbols.Param{{Type: a}, {Type: b}})
		fn.Op = ir.OpGenMul
		fn.Builtin = true
		out = append(out, fn)
	}
	for _, k := range []types.Basic{types.Float, types.Double, types.Int, types.Uint} {
		s := types.NewScalar(k)
		add(s, s, s)
		for n := 2; n <= 4; n++ {
			v := types.NewVector(k, n)
			add(v, s, v)
			add(v, v, s)
			add(s, v, v)
		}
		for r := 2; r <= 4; r++ {
			for c := 2; c <= 4; c++ {
				m := types.NewMatrix(k, r, c)
				add(m, s, m)
				add(m, m, s)
				// row vector times matrix, matrix times column vector
				add(types.NewVector(k, c), types.NewVector(k, r), m)
				add(types.NewVector(k, r), m, types.NewVector(k, c))
				for c2 := 2; c2 <= 4; c2++ {
					add(types.NewMatrix(k, r, c2), m, types.NewMatrix(k, c, c2))
				}
			}
		}
	}
	return out
}

package builtins

import (
	"testing"

	"hlslc/internal/ir"
	"hlslc/internal/types"
)

func TestLookupExpandsShapesAndKinds(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
		ret     string
		op      ir.Op
	}{
		{"abs", "abs(f;", "float", ir.OpAbs},
		{"abs", "abs(vi3;", "int3", ir.OpAbs},
		{"abs", "abs(mf43;", "float4x3", ir.OpAbs},
		{"dot", "dot(vf3;vf3;", "float", ir.OpDot},
		{"lerp", "lerp(vf2;vf2;vf2;", "float2", ir.OpMix},
		{"all", "all(vb4;", "bool", ir.OpAll},
		{"sign", "sign(vf2;", "int2", ir.OpSign},
		{"cross", "cross(vf3;vf3;", "float3", ir.OpCross},
		{"transpose", "transpose(mf23;", "float3x2", ir.OpTranspose},
		{"asuint", "asuint(f;", "uint", ir.OpFloatBitsToUint},
		{"mul", "mul(vf4;mf44;", "float4", ir.OpGenMul},
		{"mul", "mul(mf34;vf4;", "float3", ir.OpGenMul},
		{"mul", "mul(mf23;mf34;", "float2x4", ir.OpGenMul},
	}
	for _, tt := range tests {
		t.Run(tt.mangled, func(t *testing.T) {
			for _, fn := range Lookup(tt.name) {
				if fn.Mangled != tt.mangled {
					continue
				}
				if got := fn.Return.String(); got != tt.ret {
					t.Fatalf("return = %s, want %s", got, tt.ret)
				}
				if fn.Op != tt.op || !fn.Builtin {
					t.Fatalf("op = %s builtin=%v", fn.Op, fn.Builtin)
				}
				return
			}
			t.Fatalf("prototype %s not generated", tt.mangled)
		})
	}
}

func TestLookupOptionalAndOutArgs(t *testing.T) {
	var two, three bool
	for _, fn := range Lookup("InterlockedAdd") {
		switch len(fn.Params) {
		case 2:
			two = true
		case 3:
			three = true
			if fn.Direction(2) != types.Out || fn.Direction(0) != types.InOut {
				t.Fatalf("directions = %v %v", fn.Direction(0), fn.Direction(2))
			}
		}
	}
	if !two || !three {
		t.Fatalf("optional original value must give both arities, got 2=%v 3=%v", two, three)
	}

	for _, fn := range Lookup("sincos") {
		if !fn.HasOutputs() || !fn.Return.IsVoid() {
			t.Fatalf("sincos %s must be void with outputs", fn.Mangled)
		}
	}
}

func TestLookupCachedAndUnique(t *testing.T) {
	a, b := Lookup("max"), Lookup("max")
	if len(a) == 0 || &a[0] != &b[0] {
		t.Fatal("prototypes must be generated once and shared")
	}
	seen := map[string]bool{}
	for _, fn := range Lookup("asint") {
		if seen[fn.Mangled] {
			t.Fatalf("duplicate prototype %s", fn.Mangled)
		}
		seen[fn.Mangled] = true
	}
	if len(Lookup("nosuchintrinsic")) != 0 {
		t.Fatal("unknown names have no prototypes")
	}
}

func TestNotImplemented(t *testing.T) {
	for _, name := range []string{"tex2D", "printf", "abort"} {
		if _, ok := NotImplemented(name); !ok {
			t.Errorf("%s should be recognised as not implemented", name)
		}
	}
	if _, ok := NotImplemented("lerp"); ok {
		t.Error("lerp is implemented")
	}
}

func TestMethods(t *testing.T) {
	tex := types.NewSampler(types.Sampler{Type: types.Float, VectorSize: 4, Dim: types.Dim2D})
	rw := types.NewSampler(types.Sampler{Type: types.Float, VectorSize: 4, Dim: types.Dim2D, Image: true})
	raw := &types.Type{Basic: types.Block, VectorSize: 1, Object: types.ObjRWByteAddressBuffer}

	tests := []struct {
		method string
		recv   *types.Type
		want   bool
	}{
		{"Sample", tex, true},
		{"Sample", rw, false},
		{"Load", rw, true},
		{"Store", raw, true},
		{"Store", tex, false},
		{"InterlockedAdd", raw, true},
		{"Append", raw, false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, ok := LookupMethod(tt.method)
			if !ok {
				t.Fatalf("method %s unknown", tt.method)
			}
			if got := m.Accepts(tt.recv); got != tt.want {
				t.Fatalf("Accepts(%s) = %v, want %v", tt.recv, got, tt.want)
			}
		})
	}
}

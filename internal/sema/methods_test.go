package sema_test

import (
	"testing"

	"hlslc/internal/diag"
	"hlslc/internal/ir"
	"hlslc/internal/types"
)

func TestSampleCombinesTextureAndSampler(t *testing.T) {
	const src = `
Texture2D tex;
SamplerState smp;
float4 main(float2 uv : TEXCOORD0) : SV_TARGET
{
    return tex.Sample(smp, uv);
}
`
	res := compileClean(t, ir.StageFragment, src)
	n := ir.Find(res.Module.Root, isAggregate(ir.OpTexture))
	if n == nil {
		t.Fatalf("no texture sample:\n%s", ir.DumpString(res.Module.Root))
	}
	call := n.(*ir.Aggregate)
	comb, ok := call.Seq[0].(*ir.Aggregate)
	if !ok || comb.Op != ir.OpConstructTextureSampler {
		t.Fatalf("sample operand 0 = %v, want a combined sampler", call.Seq[0])
	}
	if !comb.Type().Sampler.Combined {
		t.Fatalf("combined sampler type = %s", comb.Type())
	}
	if call.Type().VectorSize != 4 || call.Type().Basic != types.Float {
		t.Fatalf("sample result = %s, want float4", call.Type())
	}
}

func TestSampleCmpReturnsScalar(t *testing.T) {
	const src = `
Texture2D shadowMap;
SamplerComparisonState cmp;
float4 main(float2 uv : TEXCOORD0) : SV_TARGET
{
    float lit = shadowMap.SampleCmp(cmp, uv, 0.5);
    return lit;
}
`
	res := compileClean(t, ir.StageFragment, src)
	n := ir.Find(res.Module.Root, isAggregate(ir.OpTexture))
	if n == nil {
		t.Fatal("no comparison sample")
	}
	call := n.(*ir.Aggregate)
	if !call.Type().IsScalar() {
		t.Fatalf("comparison result = %s, want a scalar", call.Type())
	}
	if !call.Seq[0].(ir.Typed).Type().Sampler.Shadow {
		t.Fatal("comparison sampler must be a shadow sampler")
	}
	// опорное значение дописано к координате
	if got := call.Seq[1].(ir.Typed).Type().VectorSize; got != 3 {
		t.Fatalf("coordinate has %d components, want 3", got)
	}
}

func TestByteAddressBuffer(t *testing.T) {
	const src = `
RWByteAddressBuffer raw;
[numthreads(1, 1, 1)]
void main(uint i : SV_DispatchThreadID)
{
    uint4 v = raw.Load4(i * 16);
    raw.Store4(i * 16 + 64, v);
    uint w = raw.Load(0);
}
`
	res := compileClean(t, ir.StageCompute, src)
	body := function(t, res, "main(u;").Seq[1]
	ctor := ir.Find(body, func(n ir.Node) bool {
		agg, ok := n.(*ir.Aggregate)
		return ok && agg.Op == ir.OpConstruct && agg.Type().Basic == types.Uint && agg.Type().VectorSize == 4
	})
	if ctor == nil {
		t.Fatalf("Load4 did not build a uint4:\n%s", ir.DumpString(body))
	}
	// Store4 пишет четыре слова
	stores := 0
	for _, n := range findAll(body, isBinary(ir.OpAssign)) {
		if idx, ok := ir.AsBinary(n.(*ir.Binary).Left, ir.OpIndexIndirect); ok && idx != nil {
			stores++
		}
	}
	if stores != 4 {
		t.Fatalf("word stores = %d, want 4", stores)
	}
}

func TestMethodDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			name: "unknown method",
			src:  "Texture2D tex;\nfloat4 main() : SV_TARGET { return tex.Frobnicate(1); }",
			code: diag.SemaBadMethod,
		},
		{
			name: "too few arguments",
			src:  "Texture2D tex;\nSamplerState smp;\nfloat4 main() : SV_TARGET { return tex.Sample(smp); }",
			code: diag.SemaNotEnoughArguments,
		},
		{
			name: "sampler expected",
			src:  "Texture2D tex;\nfloat4 main(float2 uv : UV) : SV_TARGET { return tex.Sample(uv, uv); }",
			code: diag.SemaBadArgument,
		},
		{
			name: "counter on a plain buffer",
			src:  "RWByteAddressBuffer raw;\n[numthreads(1,1,1)] void main() { raw.IncrementCounter(); }",
			code: diag.SemaBadMethod,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := ir.StageFragment
			if tt.name == "counter on a plain buffer" {
				stage = ir.StageCompute
			}
			_, bag := compile(t, stage, tt.src)
			if bag.Count(tt.code) == 0 {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestGetDimensions(t *testing.T) {
	const src = `
Texture2D tex;
float4 main() : SV_TARGET
{
    uint w, h;
    tex.GetDimensions(w, h);
    return float4(w, h, 0, 0);
}
`
	res := compileClean(t, ir.StageFragment, src)
	n := ir.Find(res.Module.Root, isAggregate(ir.OpTextureQuerySize))
	if n == nil {
		t.Fatalf("no size query:\n%s", ir.DumpString(res.Module.Root))
	}
	if got := n.(*ir.Aggregate).Type().VectorSize; got != 2 {
		t.Fatalf("size query has %d components, want 2", got)
	}
}

func TestCounterMethods(t *testing.T) {
	const src = `
struct P { float3 pos; };
RWStructuredBuffer<P> particles;
AppendStructuredBuffer<P> live;
[numthreads(64, 1, 1)]
void main(uint i : SV_DispatchThreadID)
{
    uint slot = particles.IncrementCounter();
    live.Append(particles[slot]);
}
`
	res := compileClean(t, ir.StageCompute, src)
	adds := findAll(res.Module.Root, isAggregate(ir.OpAtomicAdd))
	if len(adds) != 2 {
		t.Fatalf("atomic adds = %d, want 2:\n%s", len(adds), ir.DumpString(res.Module.Root))
	}
	counters := 0
	for _, sym := range res.Linkage {
		if sym.Type.Basic == types.Block && len(sym.Type.Struct.Members) == 1 && sym.Type.Struct.Members[0].Type.Basic == types.Uint {
			counters++
		}
	}
	if counters != 2 {
		t.Fatalf("hidden counters = %d, want 2", counters)
	}
}

func TestInterlockedTargets(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"groupshared", "InterlockedAdd(total, 1);", false},
		{"groupshared with original", "uint before; InterlockedAdd(total, 1, before);", false},
		{"local", "uint v = 0; InterlockedAdd(v, 1);", true},
		{"float target", "float f = 0; InterlockedAdd(f, 1);", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "groupshared uint total;\n[numthreads(1, 1, 1)]\nvoid main()\n{\n    " + tt.body + "\n}\n"
			_, bag := compile(t, ir.StageCompute, src)
			if got := bag.Count(diag.SemaBadAtomicTarget) > 0; got != tt.wantErr {
				t.Fatalf("bad atomic target = %v, want %v: %s", got, tt.wantErr, diagnosticsSummary(bag))
			}
		})
	}
}

package layout_test

import (
	"errors"
	"testing"

	"hlslc/internal/layout"
	"hlslc/internal/types"
)

func member(name string, t *types.Type) types.Member { return types.Member{Name: name, Type: t} }

func withOffset(t *types.Type, off int) *types.Type {
	t.Qualifier.SetLayout(types.LayOffset, off)
	return t
}

func TestCBufferPacking(t *testing.T) {
	arr := types.NewScalar(types.Float)
	arr.Arrays = types.NewArraySizes(2)
	def := &types.StructDef{Name: "Globals", Members: []types.Member{
		member("a", types.NewScalar(types.Float)),
		member("b", types.NewVector(types.Float, 3)),
		member("c", types.NewVector(types.Float, 2)),
		member("m", types.NewMatrix(types.Float, 4, 4)),
		member("arr", arr),
		member("d", types.NewScalar(types.Float)),
	}}
	l, err := layout.New(false).Block(def, layout.RulesCBuffer)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	want := []int{0, 4, 16, 32, 96, 116}
	for i, off := range want {
		if l.FieldOffsets[i] != off {
			t.Errorf("%s offset = %d, want %d", def.Members[i].Name, l.FieldOffsets[i], off)
		}
	}
	if l.Size != 128 {
		t.Errorf("size = %d, want 128", l.Size)
	}
}

func TestMatrixPacking(t *testing.T) {
	tests := []struct {
		name     string
		rowMajor bool
		tag      types.MatrixLayout
		size     int
	}{
		// float4x3: three registers of four components by default
		{"default", false, types.MatrixNone, 2*16 + 16},
		{"row_major keyword", false, types.MatrixColumnMajor, 3*16 + 12},
		{"engine default row major", true, types.MatrixNone, 3*16 + 12},
		{"column_major keyword", true, types.MatrixRowMajor, 2*16 + 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := types.NewMatrix(types.Float, 4, 3)
			m.Qualifier.Matrix = tt.tag
			l, err := layout.New(tt.rowMajor).LayoutOf(m, layout.RulesCBuffer)
			if err != nil {
				t.Fatalf("layout: %v", err)
			}
			if l.Size != tt.size {
				t.Fatalf("size = %d, want %d", l.Size, tt.size)
			}
		})
	}
}

func TestPackOffset(t *testing.T) {
	if got := layout.PackOffset(3, 1); got != 3*16+4 {
		t.Fatalf("c3.y = %d", got)
	}

	engine := layout.New(false)
	ok := &types.StructDef{Name: "B", Members: []types.Member{
		member("y", withOffset(types.NewScalar(types.Float), layout.PackOffset(1, 1))),
		member("x", withOffset(types.NewVector(types.Float, 4), layout.PackOffset(0, 0))),
	}}
	l, err := engine.Block(ok, layout.RulesCBuffer)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	if l.FieldOffsets[0] != 20 || l.FieldOffsets[1] != 0 {
		t.Fatalf("offsets = %v", l.FieldOffsets)
	}

	tests := []struct {
		name string
		def  *types.StructDef
		kind layout.LayoutErrorKind
	}{
		{"straddle", &types.StructDef{Name: "S1", Members: []types.Member{
			member("v", withOffset(types.NewVector(types.Float, 3), layout.PackOffset(0, 2))),
		}}, layout.LayoutErrStraddle},
		{"overlap", &types.StructDef{Name: "S2", Members: []types.Member{
			member("a", withOffset(types.NewVector(types.Float, 4), 0)),
			member("b", withOffset(types.NewScalar(types.Float), 8)),
		}}, layout.LayoutErrOverlap},
		{"opaque", &types.StructDef{Name: "S3", Members: []types.Member{
			member("t", types.NewSampler(types.Sampler{Type: types.Float, VectorSize: 4, Dim: types.Dim2D})),
		}}, layout.LayoutErrOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Block(tt.def, layout.RulesCBuffer)
			var le *layout.LayoutError
			if !errors.As(err, &le) || le.Kind != tt.kind {
				t.Fatalf("expected layout error kind %d, got %v", tt.kind, err)
			}
		})
	}
}

func TestScalarRules(t *testing.T) {
	def := &types.StructDef{Name: "Particle", Members: []types.Member{
		member("pos", types.NewVector(types.Float, 3)),
		member("life", types.NewScalar(types.Float)),
		member("id", types.NewScalar(types.Double)),
	}}
	l, err := layout.New(false).LayoutOf(types.NewStruct(def, types.Struct), layout.RulesScalar)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if l.FieldOffsets[1] != 12 || l.FieldOffsets[2] != 16 || l.Size != 24 {
		t.Fatalf("offsets = %v size = %d", l.FieldOffsets, l.Size)
	}
}

package types

import "testing"

func TestTypeString(t *testing.T) {
	tex := Sampler{Type: Float, VectorSize: 4, Dim: Dim2D, Arrayed: true}
	s := &StructDef{Name: "S", Members: []Member{{Name: "a", Type: NewScalar(Float)}}}
	arr := NewScalar(Int)
	arr.Arrays = NewArraySizes(3)

	tests := []struct {
		typ  *Type
		want string
	}{
		{NewScalar(Float), "float"},
		{NewVector(Float, 4), "float4"},
		{NewVector(Int, 1), "int1"},
		{NewMatrix(Float, 3, 4), "float3x4"},
		{arr, "int[3]"},
		{NewSampler(tex), "Texture2DArray<float4>"},
		{NewSampler(Sampler{Pure: true}), "SamplerState"},
		{NewStruct(s, Struct), "S"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestComponentCount(t *testing.T) {
	def := &StructDef{Name: "S", Members: []Member{
		{Name: "a", Type: NewScalar(Float)},
		{Name: "b", Type: &Type{Basic: Int, VectorSize: 1, Arrays: NewArraySizes(2)}},
		{Name: "c", Type: NewVector(Float, 3)},
	}}
	tests := []struct {
		typ  *Type
		want int
	}{
		{NewScalar(Float), 1},
		{NewVector(Float, 3), 3},
		{NewMatrix(Float, 4, 3), 12},
		{NewStruct(def, Struct), 6},
	}
	for _, tt := range tests {
		if got := tt.typ.ComponentCount(); got != tt.want {
			t.Errorf("%s: ComponentCount() = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestDerefAndShape(t *testing.T) {
	m := NewMatrix(Float, 4, 3)
	col := m.Deref(0)
	if !col.IsVector() || col.VectorSize != 3 {
		t.Fatalf("matrix column = %s", col)
	}
	if c := col.Deref(0); !c.IsScalar() || c.Basic != Float {
		t.Fatalf("vector component = %s", c)
	}
	arr := &Type{Basic: Float, VectorSize: 2, Arrays: NewArraySizes(4, 5)}
	el := arr.Deref(0)
	if el.Arrays.NumDims() != 1 || el.OuterArraySize() != 5 {
		t.Fatalf("element of float2[4][5] = %s", el)
	}
	if arr.Arrays.NumDims() != 2 {
		t.Fatal("Deref mutated the original array sizes")
	}
}

func TestEqualIgnoresQualifierAndSharesStruct(t *testing.T) {
	a := NewVector(Float, 4)
	b := NewVector(Float, 4)
	b.Qualifier.Storage = Uniform
	if !a.Equal(b) {
		t.Fatal("qualifier must not affect equality")
	}
	def := &StructDef{Name: "S", Members: []Member{{Name: "x", Type: NewScalar(Int)}}}
	if !NewStruct(def, Struct).Equal(NewStruct(def, Struct)) {
		t.Fatal("same struct body must compare equal")
	}
	if NewVector(Float, 1).Equal(NewScalar(Float)) {
		t.Fatal("float1 and float differ")
	}
}

func TestMangledName(t *testing.T) {
	got := MangledName("f", []*Type{NewScalar(Int), NewVector(Float, 3), NewMatrix(Float, 4, 4)})
	if want := "f(i;vf3;mf44;"; got != want {
		t.Fatalf("MangledName = %q, want %q", got, want)
	}
}

func TestConstConvert(t *testing.T) {
	if got := ConstFloat(3.7).Convert(Int); got.I != 3 || got.Kind != Int {
		t.Errorf("float->int: %+v", got)
	}
	if got := ConstInt(-1).Convert(Uint); got.U != 0xFFFFFFFF {
		t.Errorf("int->uint: %+v", got)
	}
	if got := ConstInt(0).Convert(Bool); got.B {
		t.Errorf("int->bool: %+v", got)
	}
	if !ConstUint(7).Equal(ConstUint(7)) || ConstUint(7).Equal(ConstInt(7)) {
		t.Error("Equal must compare kind and value")
	}
}

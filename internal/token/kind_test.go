package token_test

import (
	"testing"

	"hlslc/internal/token"
)

func TestNumericVectorAndMatrixLayout(t *testing.T) {
	tests := []struct {
		text string
		want token.NumericInfo
	}{
		{"float", token.NumericInfo{Scalar: token.ScalarFloat}},
		{"float3", token.NumericInfo{Scalar: token.ScalarFloat, Size: 3}},
		{"int4", token.NumericInfo{Scalar: token.ScalarInt, Size: 4}},
		{"bool1", token.NumericInfo{Scalar: token.ScalarBool, Size: 1}},
		{"float2x3", token.NumericInfo{Scalar: token.ScalarFloat, Rows: 2, Cols: 3}},
		{"double4x1", token.NumericInfo{Scalar: token.ScalarDouble, Rows: 4, Cols: 1}},
		{"half4", token.NumericInfo{Scalar: token.ScalarFloat, Size: 4}},
		{"min16uint2", token.NumericInfo{Scalar: token.ScalarUint, Size: 2}},
		{"uint64_t", token.NumericInfo{Scalar: token.ScalarUint64}},
		{"half", token.NumericInfo{Scalar: token.ScalarFloat}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			k, ok := token.LookupKeyword(tt.text)
			if !ok {
				t.Fatalf("%q is not a keyword", tt.text)
			}
			got, ok := token.Numeric(k)
			if !ok {
				t.Fatalf("%q (%v) is not numeric", tt.text, k)
			}
			if got != tt.want {
				t.Fatalf("Numeric(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	if !token.Float4.IsVectorKeyword() || token.Float4.IsMatrixKeyword() {
		t.Fatalf("float4 must be a vector keyword only")
	}
	if !token.Float4x4.IsMatrixKeyword() || token.Float4x4.IsVectorKeyword() {
		t.Fatalf("float4x4 must be a matrix keyword only")
	}
	if !token.KwHalf.IsScalarKeyword() {
		t.Fatalf("half must be a scalar keyword")
	}
	for _, k := range []token.Kind{token.Assign, token.AddAssign, token.OrAssign} {
		if !k.IsAssignOp() {
			t.Fatalf("%v must be an assignment operator", k)
		}
	}
	if token.EqOp.IsAssignOp() {
		t.Fatalf("== must not be an assignment operator")
	}
}

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.Float2x3:        "float2x3",
		token.KwTexture2D:     "Texture2D",
		token.RightAssign:     ">>=",
		token.Ident:           "identifier",
		token.KwRowMajor:      "row_major",
		token.KwCBuffer:       "cbuffer",
		token.Uint3:           "uint3",
		token.KwSamplerState:  "SamplerState",
		token.XorOp:           "^^",
		token.KwNoPerspective: "noperspective",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", uint16(k), got, want)
		}
	}
}

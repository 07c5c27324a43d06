package sema

import (
	"slices"
	"testing"

	"hlslc/internal/ir"
	"hlslc/internal/source"
	"hlslc/internal/types"
)

func flattenFixture(t *testing.T) (*Context, *ir.Symbol, *flattenData) {
	t.Helper()
	ints := types.NewScalar(types.Int)
	ints.Arrays = types.NewArraySizes(2)
	def := &types.StructDef{Name: "S", Members: []types.Member{
		{Name: "a", Type: types.NewScalar(types.Float)},
		{Name: "b", Type: ints},
	}}
	st := types.NewStruct(def, types.Struct)
	st.Qualifier.Storage = types.VaryingIn
	st.Qualifier.SetLayout(types.LayLocation, 3)

	c := New(Options{Stage: ir.StageVertex})
	sym := c.table.NewVariable("s", st, source.NoSpan)
	d := c.flattenVariable(sym, true)
	return c, c.b.NewSymbol(sym.ID, sym.Name, sym.Type, source.NoSpan), d
}

func TestFlattenOffsets(t *testing.T) {
	_, _, d := flattenFixture(t)
	want := []int{2, 3, 0, 5, 6, 1, 2}
	if !slices.Equal(d.offsets, want) {
		t.Fatalf("offsets = %v, want %v", d.offsets, want)
	}
	names := make([]string, len(d.members))
	for i, m := range d.members {
		names[i] = m.Name
	}
	if !slices.Equal(names, []string{"s.a", "s.b[0]", "s.b[1]"}) {
		t.Fatalf("leaves = %v", names)
	}
	for i, wantLoc := range []int{3, 4, 5} {
		loc, ok := d.members[i].Type.Qualifier.Layout(types.LayLocation)
		if !ok || loc != wantLoc {
			t.Fatalf("%s location = %d, %v; want %d", d.members[i].Name, loc, ok, wantLoc)
		}
		if d.members[i].Type.Qualifier.Storage != types.VaryingIn {
			t.Fatalf("%s lost its storage", d.members[i].Name)
		}
	}
}

func TestFlattenAccess(t *testing.T) {
	c, s, d := flattenFixture(t)

	a := c.flattenAccess(source.NoSpan, s, 0, types.NewScalar(types.Float))
	if sym, ok := a.(*ir.Symbol); !ok || sym.ID != d.members[0].ID {
		t.Fatalf("s.a resolved to %v", a)
	}

	ints := types.NewScalar(types.Int)
	ints.Arrays = types.NewArraySizes(2)
	b := c.flattenAccess(source.NoSpan, s, 1, ints)
	shadow, ok := b.(*ir.Symbol)
	if !ok || !shadow.Shadow || shadow.Subset != 3 {
		t.Fatalf("s.b resolved to %v, want a shadow at subset 3", b)
	}

	b1 := c.flattenAccess(source.NoSpan, shadow, 1, types.NewScalar(types.Int))
	leaf, ok := b1.(*ir.Symbol)
	if !ok || leaf.ID != d.members[2].ID || leaf.Name != "s.b[1]" {
		t.Fatalf("s.b[1] resolved to %v", b1)
	}

	c.flattenAccess(source.NoSpan, shadow, 5, types.NewScalar(types.Int))
	if c.errors != 1 {
		t.Fatalf("out of range access reported %d errors, want 1", c.errors)
	}
}

func TestLocationSlots(t *testing.T) {
	arr := types.NewVector(types.Float, 4)
	arr.Arrays = types.NewArraySizes(3)
	tests := []struct {
		name string
		typ  *types.Type
		want int
	}{
		{"scalar", types.NewScalar(types.Float), 1},
		{"matrix", types.NewMatrix(types.Float, 4, 4), 4},
		{"double3", types.NewVector(types.Double, 3), 2},
		{"double2", types.NewVector(types.Double, 2), 1},
		{"array", arr, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locationSlots(tt.typ); got != tt.want {
				t.Fatalf("locationSlots(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

package types

import "testing"

func sampleQualifier() Qualifier {
	var q Qualifier
	q.Storage = Uniform
	q.Flags = FlagCentroid | FlagPrecise
	q.Matrix = MatrixRowMajor
	q.Builtin = BuiltinPosition
	q.Semantic = "SV_Position"
	q.SetLayout(LayBinding, 3)
	q.SetLayout(LaySet, 1)
	return q
}

func TestQualifierMergeClearedIsIdentity(t *testing.T) {
	cases := map[string]Qualifier{
		"cleared": {},
		"sample":  sampleQualifier(),
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			got := q
			if conflicts := got.Merge(Qualifier{}, MergeStrict); len(conflicts) != 0 {
				t.Fatalf("unexpected conflicts: %v", conflicts)
			}
			if got != q {
				t.Fatalf("merge with cleared changed record:\n got %s\nwant %s", got, q)
			}
			inherit := q
			inherit.Merge(Qualifier{}, MergeInheritOnly)
			if inherit != q {
				t.Fatalf("inherit-only merge with cleared changed record")
			}
		})
	}
}

func TestQualifierMergeStorage(t *testing.T) {
	tests := []struct {
		dst, src Storage
		want     Storage
		conflict bool
	}{
		{Temporary, Uniform, Uniform, false},
		{In, Out, InOut, false},
		{Out, In, InOut, false},
		{Global, Const, Const, false},
		{Const, Global, Const, false},
		{Global, Shared, Shared, false},
		{Uniform, Shared, Uniform, true},
		{VaryingIn, VaryingOut, VaryingIn, true},
	}
	for _, tt := range tests {
		t.Run(tt.dst.String()+"+"+tt.src.String(), func(t *testing.T) {
			q := Qualifier{Storage: tt.dst}
			conflicts := q.Merge(Qualifier{Storage: tt.src}, MergeStrict)
			if (len(conflicts) != 0) != tt.conflict {
				t.Fatalf("conflicts = %v, want conflict=%v", conflicts, tt.conflict)
			}
			if q.Storage != tt.want {
				t.Fatalf("storage = %s, want %s", q.Storage, tt.want)
			}
		})
	}
}

func TestQualifierMergeReportsLayoutConflicts(t *testing.T) {
	var a, b Qualifier
	a.SetLayout(LayBinding, 1)
	b.SetLayout(LayBinding, 2)
	if conflicts := a.Merge(b, MergeStrict); len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %v", conflicts)
	}

	var block, member Qualifier
	block.Matrix = MatrixRowMajor
	block.SetLayout(LayStream, 1)
	member.Matrix = MatrixColumnMajor
	if conflicts := member.Merge(block, MergeInheritOnly); conflicts != nil {
		t.Fatalf("inherit-only must not conflict: %v", conflicts)
	}
	if member.Matrix != MatrixColumnMajor {
		t.Fatalf("inherit-only overwrote member packing")
	}
	if v, ok := member.Layout(LayStream); !ok || v != 1 {
		t.Fatalf("stream not inherited: %d %v", v, ok)
	}
}

func TestQualifierMergeInterpolation(t *testing.T) {
	a := Qualifier{Flags: FlagFlat}
	if c := a.Merge(Qualifier{Flags: FlagNoPerspective}, MergeStrict); len(c) == 0 {
		t.Fatal("expected interpolation conflict")
	}
	b := Qualifier{Flags: FlagFlat}
	if c := b.Merge(Qualifier{Flags: FlagFlat | FlagCentroid}, MergeStrict); len(c) != 0 {
		t.Fatalf("same interpolation must merge: %v", c)
	}
}

package diag

import (
	"testing"

	"hlslc/internal/source"
)

func TestBagLimitAndCounts(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	r.Report(SemaTypeMismatch, SevError, source.Span{Start: 4, End: 5}, "a", nil)
	r.Report(SemaImplicitTruncation, SevWarning, source.Span{Start: 1, End: 2}, "b", nil)
	r.Report(SemaTypeMismatch, SevError, source.Span{Start: 9, End: 9}, "c", nil)

	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2 and 1", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", got)
	}
	bag.Sort()
	if bag.Items()[0].Message != "b" {
		t.Fatalf("sort must order by position, got %q first", bag.Items()[0].Message)
	}
}

func TestHasWarningsExcludesErrors(t *testing.T) {
	tests := []struct {
		name     string
		sevs     []Severity
		warnings bool
	}{
		{"empty", nil, false},
		{"errors only", []Severity{SevError, SevError}, false},
		{"warning", []Severity{SevWarning}, true},
		{"mixed", []Severity{SevError, SevWarning}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := NewBag(8)
			r := BagReporter{Bag: bag}
			for i, sev := range tt.sevs {
				r.Report(SemaBadInitializer, sev, source.Span{Start: uint32(i), End: uint32(i) + 1}, "x", nil)
			}
			if got := bag.HasWarnings(); got != tt.warnings {
				t.Fatalf("HasWarnings() = %t, want %t", got, tt.warnings)
			}
		})
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 3}
	r.Report(SemaUndeclaredIdentifier, SevError, sp, "undeclared identifier 'x'", nil)
	r.Report(SemaUndeclaredIdentifier, SevError, sp, "undeclared identifier 'x'", nil)
	r.Report(SemaUndeclaredIdentifier, SevError, sp, "undeclared identifier 'y'", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestCodeIDRanges(t *testing.T) {
	tests := map[Code]string{
		LexBadNumber:       "LEX1004",
		SynExpectSemicolon: "SYN2002",
		SemaDuplicateCase:  "SEM3022",
		IOLoadFileError:    "IO4000",
		ProjBadManifest:    "PRJ5001",
		FutNotImplemented:  "FUT7000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
		if code.Title() == codeDescription[UnknownCode] {
			t.Errorf("%s has no description", want)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SemaRedefinition, source.Span{}, "redefinition of 'f'").
		WithNote(source.Span{Start: 2, End: 3}, "previous definition")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected one diagnostic with one note, got %+v", bag.Items())
	}
}

func TestFilterAndTransform(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	r.Report(SemaImplicitTruncation, SevWarning, source.Span{Start: 1, End: 2}, "w", nil)
	r.Report(SemaTypeMismatch, SevError, source.Span{Start: 3, End: 4}, "e", nil)
	r.Report(ObsTimings, SevInfo, source.Span{}, "i", nil)

	bag.Transform(func(d *Diagnostic) {
		if d.Severity == SevWarning {
			d.Severity = SevError
		}
	})
	if bag.ErrorCount() != 2 {
		t.Fatalf("ErrorCount() = %d after promotion, want 2", bag.ErrorCount())
	}
	bag.Filter(func(d *Diagnostic) bool { return d.Severity != SevInfo })
	if bag.Len() != 2 || bag.Items()[0].Message != "w" {
		t.Fatalf("filter left %d items", bag.Len())
	}
}

package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	ov, oc, od := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = ov, oc, od })
}

func TestBanner(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    []string
		absent  []string
	}{
		{"default", "0.1.0-dev", "", "", []string{"hlslc 0.1.0-dev"}, []string{"commit:", "built:"}},
		{"release", "1.2.3", "abc123", "2026-01-15", []string{"hlslc 1.2.3", "commit: abc123", "built:  2026-01-15"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version, tt.commit, tt.date)
			b := Banner(false)
			for _, w := range tt.want {
				if !strings.Contains(b, w) {
					t.Fatalf("banner misses %q:\n%s", w, b)
				}
			}
			for _, w := range tt.absent {
				if strings.Contains(b, w) {
					t.Fatalf("banner has %q:\n%s", w, b)
				}
			}
		})
	}
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, v := range []string{"0.1.0-dev", "2.10.7", "weird"} {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Fatalf("Colored() = %q without color, want %q", got, v)
		}
	}
}

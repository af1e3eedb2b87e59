package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplateKeepsStampedValues(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	fill()
	Version, Commit, Date = "v0.3.0", "abc123", "2026-01-02"

	want := "{{.Name}} version v0.3.0\ncommit: abc123\nbuilt: 2026-01-02\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if got := Resolved(); got != "v0.3.0" {
		t.Errorf("Resolved() = %q, want v0.3.0", got)
	}
}

func TestResolvedNeverEmpty(t *testing.T) {
	if got := Resolved(); strings.TrimSpace(got) == "" {
		t.Error("Resolved() returned an empty version")
	}
}

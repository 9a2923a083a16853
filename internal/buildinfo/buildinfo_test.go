package buildinfo

import (
	"strings"
	"testing"
)

func TestBanner(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "dev", "abc1234", "2026-01-02"
	lines := Banner(" Super Serious ")
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[1] != "Super Serious" {
		t.Fatalf("name line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "App built on: 2026-01-02") || !strings.Contains(lines[2], "abc1234") {
		t.Fatalf("built line %q", lines[2])
	}
	if Short() != "abc1234" {
		t.Fatalf("Short=%q", Short())
	}
}

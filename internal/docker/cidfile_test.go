package docker

import (
	"path/filepath"
	"testing"
)

func TestIdentityFilePath(t *testing.T) {
	got := IdentityFilePath("/tmp/runner", "abc-123")
	want := filepath.Join("/tmp/runner", "container_abc-123")
	if got != want {
		t.Errorf("IdentityFilePath() = %q, want %q", got, want)
	}
}

func TestIdentityFilePath_StableAcrossCalls(t *testing.T) {
	first := IdentityFilePath("/tmp/runner", "abc-123")
	second := IdentityFilePath("/tmp/runner", "abc-123")
	if first != second {
		t.Errorf("Identity file path must be stable for a given context: %q vs %q", first, second)
	}

	other := IdentityFilePath("/tmp/runner", "abc-124")
	if other == first {
		t.Error("Distinct run identifiers must map to distinct identity files")
	}
}

package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	r := sampleRegistry()
	path := filepath.Join(t.TempDir(), "out", "registry.json")

	if err := WriteSnapshot(path, r.Snapshot()); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}

	s, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}
	if len(s.Nodes) != 3 {
		t.Fatalf("Nodes len = %d, want 3", len(s.Nodes))
	}
	if s.Nodes[0].Name != "calculator" {
		t.Errorf("Nodes[0].Name = %q, want %q", s.Nodes[0].Name, "calculator")
	}
	if len(s.Credentials) != 1 {
		t.Fatalf("Credentials len = %d, want 1", len(s.Credentials))
	}
	if s.Credentials[0].Icon != "/icons/openai.svg" {
		t.Errorf("Credentials[0].Icon = %q, want %q", s.Credentials[0].Icon, "/icons/openai.svg")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing snapshot, got nil")
	}
}

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is a serializable view of a registry, written by the dump command
// for inspection and for consumers outside the process.
type Snapshot struct {
	Nodes       []NodeDescriptor       `json:"nodes"`
	Credentials []CredentialDescriptor `json:"credentials"`
	Stats       Stats                  `json:"stats"`
	BuiltAt     time.Time              `json:"built_at"`
}

// Snapshot returns the registry contents sorted by name.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Nodes:       r.Nodes(),
		Credentials: r.Credentials(),
		Stats:       r.Stats(),
		BuiltAt:     r.builtAt,
	}
}

// WriteSnapshot serializes s to path, replacing any existing file atomically.
func WriteSnapshot(path string, s Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &s, nil
}

package registry

import (
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/policy"
)

// DefaultLoadTimeout bounds how long a single plugin may take to load.
const DefaultLoadTimeout = 10 * time.Second

// Entry is one plugin found during discovery. Load produces its manifest
// variant; it is called at most once, possibly from another goroutine.
type Entry struct {
	Path string
	Load func() (manifest.Variant, error)
}

// FileEntry returns an Entry that loads the manifest file at path.
func FileEntry(path string) Entry {
	return Entry{
		Path: path,
		Load: func() (manifest.Variant, error) { return manifest.Load(path) },
	}
}

// Options configures Build.
type Options struct {
	NodesDir       string         // root of the node plugin tree
	CredentialsDir string         // root of the credential plugin tree
	Policy         *policy.Policy // nil means policy.Default(false)
	Concurrency    int            // parallel loads per phase; <= 0 means runtime.NumCPU()
	LoadTimeout    time.Duration  // per-plugin load timeout; <= 0 means DefaultLoadTimeout
	Logger         *slog.Logger   // nil means slog.Default()
}

func (o Options) policy() *policy.Policy {
	if o.Policy == nil {
		return policy.Default(false)
	}
	return o.Policy
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return runtime.NumCPU()
	}
	return o.Concurrency
}

func (o Options) loadTimeout() time.Duration {
	if o.LoadTimeout <= 0 {
		return DefaultLoadTimeout
	}
	return o.LoadTimeout
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// NodeDescriptor is a registered node plugin.
type NodeDescriptor struct {
	Name            string                `json:"name"`
	Label           string                `json:"label"`
	Version         string                `json:"version"`
	Type            string                `json:"type,omitempty"`
	Category        string                `json:"category"`
	Description     string                `json:"description,omitempty"`
	Icon            string                `json:"icon,omitempty"` // absolute once resolved
	Author          string                `json:"author,omitempty"`
	Badge           string                `json:"badge,omitempty"`
	BaseClasses     []string              `json:"base_classes,omitempty"`
	Tags            []string              `json:"tags,omitempty"`
	CredentialNames []string              `json:"credential_names,omitempty"`
	Inputs          []manifest.InputParam `json:"inputs,omitempty"`
	FilePath        string                `json:"file_path"`
}

// Community reports whether the node was contributed by a third party.
func (d NodeDescriptor) Community() bool { return d.Author != "" }

// CredentialDescriptor is a registered credential plugin.
type CredentialDescriptor struct {
	Name        string                `json:"name"`
	Label       string                `json:"label"`
	Version     string                `json:"version"`
	Description string                `json:"description,omitempty"`
	Icon        string                `json:"icon"` // icon of the declaring node, or ""
	Inputs      []manifest.InputParam `json:"inputs,omitempty"`
	FilePath    string                `json:"file_path"`
}

func (d NodeDescriptor) clone() NodeDescriptor {
	d.BaseClasses = slices.Clone(d.BaseClasses)
	d.Tags = slices.Clone(d.Tags)
	d.CredentialNames = slices.Clone(d.CredentialNames)
	d.Inputs = slices.Clone(d.Inputs)
	return d
}

func (d CredentialDescriptor) clone() CredentialDescriptor {
	d.Inputs = slices.Clone(d.Inputs)
	return d
}

// Stats summarizes one Build.
type Stats struct {
	NodeFiles       int                   `json:"node_files"`
	CredentialFiles int                   `json:"credential_files"`
	LoadErrors      int                   `json:"load_errors"`
	Rejected        map[policy.Reason]int `json:"rejected,omitempty"`
	Collisions      int                   `json:"collisions"`
}

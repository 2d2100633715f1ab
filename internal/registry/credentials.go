package registry

import (
	"log/slog"
	"slices"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
)

// buildCredentials turns loaded credential manifests into the credential
// table, attaching icons from the node phase. Failures are logged and
// skipped, the same as for nodes.
func buildCredentials(results []loaded, icons map[string]string, log *slog.Logger, stats *Stats) map[string]*CredentialDescriptor {
	creds := make(map[string]*CredentialDescriptor)

	for _, r := range results {
		if r.err != nil {
			stats.LoadErrors++
			log.Warn("skipping credential plugin", "file", r.entry.Path, "err", r.err)
			continue
		}
		m, ok := r.variant.(*manifest.CredentialManifest)
		if !ok {
			stats.LoadErrors++
			log.Warn("skipping credential plugin", "file", r.entry.Path, "err", "manifest is a "+r.variant.Kind()+", not a credential")
			continue
		}
		if m == nil {
			stats.LoadErrors++
			log.Warn("skipping credential plugin", "file", r.entry.Path, "err", "loader returned a nil manifest")
			continue
		}

		d := newCredentialDescriptor(m, r.entry.Path, icons[m.Name])

		if cur, ok := creds[d.Name]; ok {
			stats.Collisions++
			keep := cur
			if supersedes(d.Version, d.FilePath, cur.Version, cur.FilePath) {
				keep = d
			}
			log.Warn("duplicate credential name", "name", d.Name, "kept", keep.FilePath, "files", []string{cur.FilePath, d.FilePath})
			creds[d.Name] = keep
			continue
		}
		creds[d.Name] = d
	}

	return creds
}

func newCredentialDescriptor(m *manifest.CredentialManifest, entryPath, icon string) *CredentialDescriptor {
	filePath := m.FilePath
	if filePath == "" {
		filePath = entryPath
	}
	version := m.Version
	if version == "" {
		version = manifest.DefaultVersion
	}
	return &CredentialDescriptor{
		Name:        m.Name,
		Label:       m.Label,
		Version:     version,
		Description: m.Description,
		Icon:        icon,
		Inputs:      slices.Clone(m.Inputs),
		FilePath:    filePath,
	}
}

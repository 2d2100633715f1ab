package registry

import (
	"log/slog"
	"slices"
	"sort"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/policy"
)

// nodeSet is the output of the node phase.
type nodeSet struct {
	nodes map[string]*NodeDescriptor
	// icons maps credential name to the icon of an accepted node declaring it.
	icons map[string]string
}

// buildNodes turns loaded node manifests into the node table and the
// credential icon index. Failed loads and non-node manifests are logged and
// skipped; policy rejections are counted.
func buildNodes(results []loaded, pol *policy.Policy, log *slog.Logger, stats *Stats) nodeSet {
	nodes := make(map[string]*NodeDescriptor)

	for _, r := range results {
		if r.err != nil {
			stats.LoadErrors++
			log.Warn("skipping node plugin", "file", r.entry.Path, "err", r.err)
			continue
		}
		m, ok := r.variant.(*manifest.NodeManifest)
		if !ok {
			stats.LoadErrors++
			log.Warn("skipping node plugin", "file", r.entry.Path, "err", "manifest is a "+r.variant.Kind()+", not a node")
			continue
		}
		if m == nil {
			stats.LoadErrors++
			log.Warn("skipping node plugin", "file", r.entry.Path, "err", "loader returned a nil manifest")
			continue
		}

		d := newNodeDescriptor(m, r.entry.Path)

		if reason := pol.Evaluate(m); reason != policy.Accepted {
			if stats.Rejected == nil {
				stats.Rejected = make(map[policy.Reason]int)
			}
			stats.Rejected[reason]++
			log.Debug("node not registered", "name", d.Name, "label", d.Label, "reason", string(reason), "file", d.FilePath)
			continue
		}

		if cur, ok := nodes[d.Name]; ok {
			stats.Collisions++
			keep := cur
			if supersedes(d.Version, d.FilePath, cur.Version, cur.FilePath) {
				keep = d
			}
			log.Warn("duplicate node name", "name", d.Name, "kept", keep.FilePath, "files", []string{cur.FilePath, d.FilePath})
			nodes[d.Name] = keep
			continue
		}
		nodes[d.Name] = d
	}

	return nodeSet{nodes: nodes, icons: credentialIcons(nodes)}
}

// credentialIcons builds the credential-name → icon index from accepted
// nodes. When several nodes declare the same credential, the node whose name
// sorts first provides the icon.
func credentialIcons(nodes map[string]*NodeDescriptor) map[string]string {
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	icons := make(map[string]string)
	for _, name := range names {
		d := nodes[name]
		if d.Icon == "" || !isImageAsset(d.Icon) {
			continue
		}
		for _, cred := range d.CredentialNames {
			if _, ok := icons[cred]; !ok {
				icons[cred] = d.Icon
			}
		}
	}
	return icons
}

func newNodeDescriptor(m *manifest.NodeManifest, entryPath string) *NodeDescriptor {
	filePath := m.FilePath
	if filePath == "" {
		filePath = entryPath
	}
	version := m.Version
	if version == "" {
		version = manifest.DefaultVersion
	}
	return &NodeDescriptor{
		Name:            m.Name,
		Label:           m.Label,
		Version:         version,
		Type:            m.NodeType,
		Category:        m.Category,
		Description:     m.Description,
		Icon:            resolveIcon(m.Icon, filePath),
		Author:          m.Author,
		Badge:           m.Badge,
		BaseClasses:     slices.Clone(m.BaseClasses),
		Tags:            slices.Clone(m.Tags),
		CredentialNames: slices.Clone(m.CredentialNames()),
		Inputs:          slices.Clone(m.Inputs),
		FilePath:        filePath,
	}
}

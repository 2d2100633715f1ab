package registry

import (
	"maps"
	"sort"
	"time"
)

// Registry is the immutable result of Build. Lookups return copies, so
// callers can never change what other callers see.
type Registry struct {
	nodes       map[string]*NodeDescriptor
	credentials map[string]*CredentialDescriptor
	stats       Stats
	builtAt     time.Time
}

// NewRegistry builds a registry directly from descriptors. Later entries
// with a duplicate name replace earlier ones.
func NewRegistry(nodes []NodeDescriptor, credentials []CredentialDescriptor) *Registry {
	r := &Registry{
		nodes:       make(map[string]*NodeDescriptor, len(nodes)),
		credentials: make(map[string]*CredentialDescriptor, len(credentials)),
	}
	for _, n := range nodes {
		n := n.clone()
		r.nodes[n.Name] = &n
	}
	for _, c := range credentials {
		c := c.clone()
		r.credentials[c.Name] = &c
	}
	return r
}

// Node returns the node registered under name. The boolean is false when no
// such node exists, which is expected for filtered or uninstalled plugins.
func (r *Registry) Node(name string) (NodeDescriptor, bool) {
	d, ok := r.nodes[name]
	if !ok {
		return NodeDescriptor{}, false
	}
	return d.clone(), true
}

// Credential returns the credential registered under name.
func (r *Registry) Credential(name string) (CredentialDescriptor, bool) {
	d, ok := r.credentials[name]
	if !ok {
		return CredentialDescriptor{}, false
	}
	return d.clone(), true
}

// HasNode reports whether a node is registered under name.
func (r *Registry) HasNode(name string) bool {
	_, ok := r.nodes[name]
	return ok
}

// Nodes returns all nodes sorted by name.
func (r *Registry) Nodes() []NodeDescriptor {
	out := make([]NodeDescriptor, 0, len(r.nodes))
	for _, name := range r.NodeNames() {
		out = append(out, r.nodes[name].clone())
	}
	return out
}

// Credentials returns all credentials sorted by name.
func (r *Registry) Credentials() []CredentialDescriptor {
	out := make([]CredentialDescriptor, 0, len(r.credentials))
	for _, name := range r.CredentialNames() {
		out = append(out, r.credentials[name].clone())
	}
	return out
}

// NodeNames returns the registered node names, sorted.
func (r *Registry) NodeNames() []string {
	return sortedKeys(r.nodes)
}

// CredentialNames returns the registered credential names, sorted.
func (r *Registry) CredentialNames() []string {
	return sortedKeys(r.credentials)
}

// NodesByCategory groups nodes by category for palette rendering. Each group
// is sorted by label.
func (r *Registry) NodesByCategory() map[string][]NodeDescriptor {
	groups := make(map[string][]NodeDescriptor)
	for _, d := range r.nodes {
		groups[d.Category] = append(groups[d.Category], d.clone())
	}
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool { return g[i].Label < g[j].Label })
	}
	return groups
}

// Len returns the number of registered nodes and credentials.
func (r *Registry) Len() (nodes, credentials int) {
	return len(r.nodes), len(r.credentials)
}

// Stats returns the discovery statistics of the Build that produced r.
func (r *Registry) Stats() Stats {
	s := r.stats
	s.Rejected = maps.Clone(r.stats.Rejected)
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

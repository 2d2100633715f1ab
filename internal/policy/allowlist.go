package policy

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed allowlist.yaml
var defaultAllowList []byte

// AllowList is an immutable set of permitted node labels.
type AllowList struct {
	labels map[string]struct{}
}

type allowListFile struct {
	Labels []string `yaml:"labels"`
}

// NewAllowList builds an allow-list from labels. Surrounding whitespace is
// trimmed and empty labels are ignored; matching is otherwise exact.
func NewAllowList(labels ...string) *AllowList {
	a := &AllowList{labels: make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		a.labels[l] = struct{}{}
	}
	return a
}

// DefaultAllowList returns the allow-list compiled into the binary.
func DefaultAllowList() *AllowList {
	a, err := parseAllowList(defaultAllowList)
	if err != nil {
		panic(fmt.Sprintf("embedded allow-list is malformed: %v", err))
	}
	return a
}

// LoadAllowList reads an allow-list file with the same layout as the
// embedded default (a top-level "labels" sequence).
func LoadAllowList(path string) (*AllowList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading allow-list %s: %w", path, err)
	}
	a, err := parseAllowList(data)
	if err != nil {
		return nil, fmt.Errorf("parsing allow-list %s: %w", path, err)
	}
	return a, nil
}

func parseAllowList(data []byte) (*AllowList, error) {
	var f allowListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return NewAllowList(f.Labels...), nil
}

// Contains reports whether label is permitted. A nil allow-list permits nothing.
func (a *AllowList) Contains(label string) bool {
	if a == nil {
		return false
	}
	_, ok := a.labels[label]
	return ok
}

// Len returns the number of permitted labels.
func (a *AllowList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.labels)
}

// Labels returns the permitted labels sorted alphabetically.
func (a *AllowList) Labels() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.labels))
	for l := range a.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

package policy

import "github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"

// Reason explains why a node was rejected. The zero value means accepted.
type Reason string

const (
	Accepted         Reason = ""
	ExcludedCategory Reason = "excluded category"
	CommunityNode    Reason = "community nodes disabled"
	NotAllowListed   Reason = "label not in allow-list"
)

// DefaultExcludedCategories are categories whose nodes are internal to the
// platform and never user-selectable.
var DefaultExcludedCategories = []string{"Analytic", "SpeechToText"}

// Policy holds the inclusion rules for node plugins.
type Policy struct {
	excluded           map[string]struct{}
	showCommunityNodes bool
	allow              *AllowList
}

// New returns a policy. A nil allow-list rejects every node.
func New(excludedCategories []string, showCommunityNodes bool, allow *AllowList) *Policy {
	p := &Policy{
		excluded:           make(map[string]struct{}, len(excludedCategories)),
		showCommunityNodes: showCommunityNodes,
		allow:              allow,
	}
	for _, c := range excludedCategories {
		p.excluded[c] = struct{}{}
	}
	return p
}

// Default returns the policy with the built-in category exclusions and the
// embedded allow-list.
func Default(showCommunityNodes bool) *Policy {
	return New(DefaultExcludedCategories, showCommunityNodes, DefaultAllowList())
}

// Evaluate applies the category, community and allow-list checks in that
// order and returns the first failing reason, or Accepted.
func (p *Policy) Evaluate(node *manifest.NodeManifest) Reason {
	if _, ok := p.excluded[node.Category]; ok {
		return ExcludedCategory
	}
	if node.Author != "" && !p.showCommunityNodes {
		return CommunityNode
	}
	if !p.allow.Contains(node.Label) {
		return NotAllowListed
	}
	return Accepted
}

// ShowCommunityNodes reports whether authored nodes may be registered.
func (p *Policy) ShowCommunityNodes() bool { return p.showCommunityNodes }

// AllowList returns the allow-list the policy matches labels against.
func (p *Policy) AllowList() *AllowList { return p.allow }

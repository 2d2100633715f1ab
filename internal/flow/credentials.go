package flow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/registry"
)

// ErrUnknownNode is returned when a flow references a node type that is not
// registered, either because it is not installed or because it was filtered
// out.
var ErrUnknownNode = errors.New("unknown node type")

// UnknownNode is a flow node whose type is not registered.
type UnknownNode struct {
	NodeID   string `json:"node_id"`
	NodeName string `json:"node_name"`
}

// UnknownNodeError lists every node of a flow whose type is not registered.
type UnknownNodeError struct {
	Nodes []UnknownNode
}

func (e *UnknownNodeError) Error() string {
	if len(e.Nodes) == 1 {
		n := e.Nodes[0]
		return fmt.Sprintf("chatflow node %q references %s %q", n.NodeID, ErrUnknownNode, n.NodeName)
	}
	parts := make([]string, len(e.Nodes))
	for i, n := range e.Nodes {
		parts[i] = fmt.Sprintf("%s (%s)", n.NodeID, n.NodeName)
	}
	return fmt.Sprintf("chatflow references %d %ss: %s", len(e.Nodes), ErrUnknownNode, strings.Join(parts, ", "))
}

func (e *UnknownNodeError) Unwrap() error { return ErrUnknownNode }

// Lookup is the read surface of the plugin registry used by this package.
type Lookup interface {
	HasNode(name string) bool
	Node(name string) (registry.NodeDescriptor, bool)
	Credential(name string) (registry.CredentialDescriptor, bool)
}

// Requirement lists the credential types one flow node accepts.
type Requirement struct {
	NodeID      string                          `json:"node_id"`
	NodeName    string                          `json:"node_name"`
	Label       string                          `json:"label"`
	Credentials []registry.CredentialDescriptor `json:"credentials"`
	// Missing holds declared credential names that have no registered plugin.
	Missing []string `json:"missing,omitempty"`
	// Configured is true when the node already references a stored credential.
	Configured bool `json:"configured"`
}

// RequiredCredentials reports, for every node in g that declares
// credentials, which credential types it accepts. Nodes without credentials
// are omitted. If any node has an unregistered type the result is an
// *UnknownNodeError naming all of them.
func RequiredCredentials(g *Graph, reg Lookup) ([]Requirement, error) {
	if unknown := UnknownNodes(g, reg); len(unknown) > 0 {
		return nil, &UnknownNodeError{Nodes: unknown}
	}

	var reqs []Requirement
	for _, n := range g.Nodes {
		desc, ok := reg.Node(n.Data.Name)
		if !ok || len(desc.CredentialNames) == 0 {
			continue
		}

		req := Requirement{
			NodeID:     n.ID,
			NodeName:   desc.Name,
			Label:      desc.Label,
			Configured: n.Data.Credential != "",
		}
		for _, name := range desc.CredentialNames {
			cred, ok := reg.Credential(name)
			if !ok {
				req.Missing = append(req.Missing, name)
				continue
			}
			req.Credentials = append(req.Credentials, cred)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// UnknownNodes returns the nodes in g whose type is not registered, in
// graph order.
func UnknownNodes(g *Graph, reg Lookup) []UnknownNode {
	var unknown []UnknownNode
	for _, n := range g.Nodes {
		if !reg.HasNode(n.Data.Name) {
			unknown = append(unknown, UnknownNode{NodeID: n.ID, NodeName: n.Data.Name})
		}
	}
	return unknown
}

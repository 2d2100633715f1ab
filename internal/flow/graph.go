package flow

import (
	"encoding/json"
	"fmt"
)

// Graph is the serialized flow graph stored on a chatflow.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one placed node on the canvas. Data.Name references a registered
// node type.
type Node struct {
	ID   string   `json:"id"`
	Type string   `json:"type,omitempty"`
	Data NodeData `json:"data"`
}

// NodeData is the node payload the canvas persists.
type NodeData struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Label      string                 `json:"label,omitempty"`
	Category   string                 `json:"category,omitempty"`
	Credential string                 `json:"credential,omitempty"` // id of the stored credential, if chosen
	Inputs     map[string]interface{} `json:"inputs,omitempty"`
}

// Edge connects two nodes.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Parse decodes a flow graph.
func Parse(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing flow graph: %w", err)
	}
	for i, n := range g.Nodes {
		if n.Data.Name == "" {
			return nil, fmt.Errorf("parsing flow graph: node %d (%q) has no node type name", i, n.ID)
		}
	}
	return &g, nil
}

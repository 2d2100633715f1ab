package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrChatflowNotFound is returned by a Store for an unknown chatflow id.
var ErrChatflowNotFound = errors.New("chatflow not found")

// Chatflow is the persisted chatflow record. FlowData holds the serialized
// Graph.
type Chatflow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FlowData string `json:"flowData"`
}

// Store looks chatflows up by id.
type Store interface {
	ChatflowByID(ctx context.Context, id string) (*Chatflow, error)
}

// DirStore serves chatflows exported as <id>.json files in a directory.
type DirStore struct {
	Dir string
}

// ChatflowByID implements Store.
func (s DirStore) ChatflowByID(ctx context.Context, id string) (*Chatflow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" || filepath.Base(id) != id {
		return nil, fmt.Errorf("%w: invalid id %q", ErrChatflowNotFound, id)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, id+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrChatflowNotFound, id)
		}
		return nil, fmt.Errorf("reading chatflow %s: %w", id, err)
	}

	var cf Chatflow
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing chatflow %s: %w", id, err)
	}
	if cf.ID == "" {
		cf.ID = id
	}
	return &cf, nil
}

// Service answers credential questions about stored chatflows.
type Service struct {
	store Store
	reg   Lookup
}

// NewService returns a Service reading chatflows from store and resolving
// node types against reg.
func NewService(store Store, reg Lookup) *Service {
	return &Service{store: store, reg: reg}
}

// CredentialsForChatflow loads the chatflow with id and reports the
// credentials its nodes require.
func (s *Service) CredentialsForChatflow(ctx context.Context, id string) ([]Requirement, error) {
	cf, err := s.store.ChatflowByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := Parse([]byte(cf.FlowData))
	if err != nil {
		return nil, fmt.Errorf("chatflow %s: %w", id, err)
	}
	return RequiredCredentials(g, s.reg)
}

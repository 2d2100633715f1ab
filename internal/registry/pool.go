package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrAlreadyInitialized is returned by Init when the process-wide
	// registry has already been built.
	ErrAlreadyInitialized = errors.New("registry already initialized")
	// ErrNotInitialized is returned by Default before Init has succeeded.
	ErrNotInitialized = errors.New("registry not initialized")
)

var (
	poolMu  sync.Mutex
	current *Registry
)

// Build discovers the plugins under opts.NodesDir and opts.CredentialsDir and
// returns the resulting registry. A missing or unreadable plugin directory
// is fatal; a broken individual plugin is logged and skipped.
func Build(ctx context.Context, opts Options) (*Registry, error) {
	nodeEntries, err := NodeEntries(opts.NodesDir)
	if err != nil {
		return nil, fmt.Errorf("discovering node plugins: %w", err)
	}
	credEntries, err := CredentialEntries(opts.CredentialsDir)
	if err != nil {
		return nil, fmt.Errorf("discovering credential plugins: %w", err)
	}
	return BuildEntries(ctx, nodeEntries, credEntries, opts)
}

// BuildEntries is Build for plugin entries that have already been enumerated.
// Node entries are loaded and registered before any credential entry, since
// credentials take their icons from the nodes that declare them.
func BuildEntries(ctx context.Context, nodeEntries, credEntries []Entry, opts Options) (*Registry, error) {
	log := opts.logger()
	stats := Stats{
		NodeFiles:       len(nodeEntries),
		CredentialFiles: len(credEntries),
	}

	nodeResults, err := loadAll(ctx, nodeEntries, opts)
	if err != nil {
		return nil, fmt.Errorf("loading node plugins: %w", err)
	}
	ns := buildNodes(nodeResults, opts.policy(), log, &stats)

	credResults, err := loadAll(ctx, credEntries, opts)
	if err != nil {
		return nil, fmt.Errorf("loading credential plugins: %w", err)
	}
	creds := buildCredentials(credResults, ns.icons, log, &stats)

	r := &Registry{
		nodes:       ns.nodes,
		credentials: creds,
		stats:       stats,
		builtAt:     time.Now(),
	}
	log.Info("plugin registry built",
		"nodes", len(r.nodes),
		"credentials", len(r.credentials),
		"node_files", stats.NodeFiles,
		"credential_files", stats.CredentialFiles,
		"load_errors", stats.LoadErrors,
		"collisions", stats.Collisions,
	)
	return r, nil
}

// Init builds the process-wide registry. It must be called once during
// startup; later calls return ErrAlreadyInitialized until Reset.
func Init(ctx context.Context, opts Options) (*Registry, error) {
	poolMu.Lock()
	defer poolMu.Unlock()

	if current != nil {
		return nil, ErrAlreadyInitialized
	}
	r, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	current = r
	return r, nil
}

// Default returns the process-wide registry built by Init.
func Default() (*Registry, error) {
	poolMu.Lock()
	defer poolMu.Unlock()

	if current == nil {
		return nil, ErrNotInitialized
	}
	return current, nil
}

// Reset discards the process-wide registry so Init can run again.
func Reset() {
	poolMu.Lock()
	defer poolMu.Unlock()
	current = nil
}

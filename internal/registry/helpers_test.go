package registry

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/policy"
)

// writeFile creates rel below dir with content, creating parent directories.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// pluginTree creates empty nodes/ and credentials/ roots.
func pluginTree(t *testing.T) (nodesDir, credsDir string) {
	t.Helper()
	root := t.TempDir()
	nodesDir = filepath.Join(root, "nodes")
	credsDir = filepath.Join(root, "credentials")
	require.NoError(t, os.MkdirAll(nodesDir, 0755))
	require.NoError(t, os.MkdirAll(credsDir, 0755))
	return nodesDir, credsDir
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions(nodesDir, credsDir string, allow ...string) Options {
	return Options{
		NodesDir:       nodesDir,
		CredentialsDir: credsDir,
		Policy:         policy.New(policy.DefaultExcludedCategories, false, policy.NewAllowList(allow...)),
		Logger:         quietLogger(),
	}
}

// memEntry returns an in-memory entry for v with FilePath set to path.
func memEntry(path string, v manifest.Variant) Entry {
	v.Base().FilePath = path
	return Entry{Path: path, Load: func() (manifest.Variant, error) { return v, nil }}
}

func nodeManifest(name, label, category string) *manifest.NodeManifest {
	return &manifest.NodeManifest{
		BaseManifest: manifest.BaseManifest{Name: name, Type: manifest.TypeNode, Label: label, Version: "1.0.0"},
		Category:     category,
	}
}

func credentialManifest(name string) *manifest.CredentialManifest {
	return &manifest.CredentialManifest{
		BaseManifest: manifest.BaseManifest{Name: name, Type: manifest.TypeCredential, Label: name, Version: "1.0.0"},
	}
}

const fooToolYAML = `name: fooTool
type: node
label: Foo Tool
category: Tools
icon: foo.png
credential:
  credential_names: [fooCredentialApi]
`

const fooCredentialYAML = `name: fooCredentialApi
type: credential
label: Foo Credential
`

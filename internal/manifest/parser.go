package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// Load reads a manifest file, validates it against the manifest schema,
// detects its type and returns the decoded variant with FilePath set to the
// absolute path of the file. JSON manifests are accepted as YAML documents.
func Load(path string) (Variant, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path %s: %w", path, err)
	}
	data, err := readFile(abs)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, abs)
}

// LoadBytes is Load for manifest content that has already been read.
// path is recorded as the variant's FilePath and used in error messages.
func LoadBytes(data []byte, path string) (Variant, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Result: result}
	}

	typeName, err := detectType(data)
	if err != nil {
		return nil, fmt.Errorf("detecting manifest type in %s: %w", path, err)
	}

	var v Variant
	switch typeName {
	case TypeNode:
		v, err = parseTyped[NodeManifest](data, path)
	case TypeCredential:
		v, err = parseTyped[CredentialManifest](data, path)
	default:
		return nil, fmt.Errorf("unknown manifest type %q in %s", typeName, path)
	}
	if err != nil {
		return nil, err
	}

	base := v.Base()
	base.FilePath = path
	if base.Version == "" {
		base.Version = DefaultVersion
	}
	if _, err := base.SemVer(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return v, nil
}

// ParseNode loads a manifest file and requires it to be a node.
func ParseNode(path string) (*NodeManifest, error) {
	v, err := Load(path)
	if err != nil {
		return nil, err
	}
	node, ok := v.(*NodeManifest)
	if !ok {
		return nil, fmt.Errorf("manifest %s is a %s, not a node", path, v.Kind())
	}
	return node, nil
}

// ParseCredential loads a manifest file and requires it to be a credential.
func ParseCredential(path string) (*CredentialManifest, error) {
	v, err := Load(path)
	if err != nil {
		return nil, err
	}
	cred, ok := v.(*CredentialManifest)
	if !ok {
		return nil, fmt.Errorf("manifest %s is a %s, not a credential", path, v.Kind())
	}
	return cred, nil
}

// SemVer parses the manifest version. Bare numbers such as "2" or "2.1"
// are accepted and padded, matching how plugin authors usually write them.
func (b *BaseManifest) SemVer() (*semver.Version, error) {
	raw := b.Version
	if raw == "" {
		raw = DefaultVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return v, nil
}

// parseTyped unmarshals YAML data into a typed manifest struct.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// detectType unmarshals YAML data into a generic map and extracts the type field.
func detectType(data []byte) (string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("unmarshaling YAML: %w", err)
	}

	typeVal, ok := raw["type"]
	if !ok {
		return "", fmt.Errorf("manifest missing required 'type' field")
	}

	typeName, ok := typeVal.(string)
	if !ok {
		return "", fmt.Errorf("manifest 'type' field is not a string")
	}

	return typeName, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

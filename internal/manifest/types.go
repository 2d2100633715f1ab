package manifest

// Variant is a decoded plugin manifest. It is implemented only by
// *NodeManifest and *CredentialManifest.
type Variant interface {
	// Kind returns the manifest type discriminator (TypeNode or TypeCredential).
	Kind() string
	// Base returns the fields shared by all manifest types.
	Base() *BaseManifest

	variant()
}

// BaseManifest contains fields shared by all manifest types.
type BaseManifest struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Label       string `yaml:"label" json:"label"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// FilePath is the absolute path the manifest was loaded from.
	FilePath string `yaml:"-" json:"file_path,omitempty"`
}

// NodeManifest represents a node plugin manifest.
type NodeManifest struct {
	BaseManifest `yaml:",inline"`
	NodeType     string         `yaml:"node_type,omitempty" json:"node_type,omitempty"`
	Category     string         `yaml:"category" json:"category"`
	Icon         string         `yaml:"icon,omitempty" json:"icon,omitempty"`
	Author       string         `yaml:"author,omitempty" json:"author,omitempty"`
	Badge        string         `yaml:"badge,omitempty" json:"badge,omitempty"`
	BaseClasses  []string       `yaml:"base_classes,omitempty" json:"base_classes,omitempty"`
	Tags         []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Credential   *CredentialRef `yaml:"credential,omitempty" json:"credential,omitempty"`
	Inputs       []InputParam   `yaml:"inputs,omitempty" json:"inputs,omitempty"`
}

// CredentialManifest represents a credential plugin manifest.
type CredentialManifest struct {
	BaseManifest `yaml:",inline"`
	Inputs       []InputParam `yaml:"inputs,omitempty" json:"inputs,omitempty"`
}

// CredentialRef is a node's declaration that it needs one of the named
// credentials to run.
type CredentialRef struct {
	Label           string   `yaml:"label,omitempty" json:"label,omitempty"`
	Name            string   `yaml:"name,omitempty" json:"name,omitempty"`
	CredentialNames []string `yaml:"credential_names" json:"credential_names"`
	Optional        bool     `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// InputParam describes one configurable input of a node or credential.
type InputParam struct {
	Label       string      `yaml:"label" json:"label"`
	Name        string      `yaml:"name" json:"name"`
	Type        string      `yaml:"type" json:"type"`
	Optional    bool        `yaml:"optional,omitempty" json:"optional,omitempty"`
	Default     interface{} `yaml:"default,omitempty" json:"default,omitempty"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
}

// Kind implements Variant.
func (m *NodeManifest) Kind() string { return TypeNode }

// Base implements Variant.
func (m *NodeManifest) Base() *BaseManifest { return &m.BaseManifest }

func (m *NodeManifest) variant() {}

// CredentialNames returns the credential names the node declares, or nil.
func (m *NodeManifest) CredentialNames() []string {
	if m.Credential == nil {
		return nil
	}
	return m.Credential.CredentialNames
}

// Kind implements Variant.
func (m *CredentialManifest) Kind() string { return TypeCredential }

// Base implements Variant.
func (m *CredentialManifest) Base() *BaseManifest { return &m.BaseManifest }

func (m *CredentialManifest) variant() {}

// ManifestType constants for the type discriminator field.
const (
	TypeNode       = "node"
	TypeCredential = "credential"
)

// DefaultVersion is assumed for manifests that omit a version.
const DefaultVersion = "1.0.0"

// ValidTypes contains all valid manifest type values.
var ValidTypes = []string{
	TypeNode,
	TypeCredential,
}

package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoad_Node(t *testing.T) {
	v, err := Load(testPath("valid-node.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	node, ok := v.(*NodeManifest)
	if !ok {
		t.Fatalf("expected *NodeManifest, got %T", v)
	}

	if node.Kind() != TypeNode {
		t.Errorf("Kind() = %q, want %q", node.Kind(), TypeNode)
	}
	if node.Name != "chatOpenAI" {
		t.Errorf("Name = %q, want %q", node.Name, "chatOpenAI")
	}
	if node.Label != "ChatOpenAI" {
		t.Errorf("Label = %q, want %q", node.Label, "ChatOpenAI")
	}
	if node.Category != "Chat Models" {
		t.Errorf("Category = %q, want %q", node.Category, "Chat Models")
	}
	if node.Icon != "openai.svg" {
		t.Errorf("Icon = %q, want %q", node.Icon, "openai.svg")
	}
	if node.Version != "6.0" {
		t.Errorf("Version = %q, want %q", node.Version, "6.0")
	}
	if got := node.CredentialNames(); !slices.Equal(got, []string{"openAIApi"}) {
		t.Errorf("CredentialNames() = %v, want [openAIApi]", got)
	}
	if len(node.Inputs) != 2 {
		t.Errorf("Inputs len = %d, want 2", len(node.Inputs))
	}
	if node.Author != "" {
		t.Errorf("Author = %q, want empty", node.Author)
	}

	abs, err := filepath.Abs(testPath("valid-node.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if node.FilePath != abs {
		t.Errorf("FilePath = %q, want %q", node.FilePath, abs)
	}
}

func TestLoad_Credential(t *testing.T) {
	v, err := Load(testPath("valid-credential.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cred, ok := v.(*CredentialManifest)
	if !ok {
		t.Fatalf("expected *CredentialManifest, got %T", v)
	}
	if cred.Kind() != TypeCredential {
		t.Errorf("Kind() = %q, want %q", cred.Kind(), TypeCredential)
	}
	if cred.Name != "openAIApi" {
		t.Errorf("Name = %q, want %q", cred.Name, "openAIApi")
	}
	if cred.Version != "1" {
		t.Errorf("Version = %q, want %q", cred.Version, "1")
	}
	if len(cred.Inputs) != 1 {
		t.Fatalf("Inputs len = %d, want 1", len(cred.Inputs))
	}
	if cred.Inputs[0].Type != "password" {
		t.Errorf("Inputs[0].Type = %q, want %q", cred.Inputs[0].Type, "password")
	}
}

func TestLoad_JSON(t *testing.T) {
	node, err := ParseNode(testPath("valid-node.json"))
	if err != nil {
		t.Fatalf("ParseNode error: %v", err)
	}
	if node.Name != "calculator" {
		t.Errorf("Name = %q, want %q", node.Name, "calculator")
	}
	if node.Author != "community-dev" {
		t.Errorf("Author = %q, want %q", node.Author, "community-dev")
	}
	if node.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", node.Version, DefaultVersion)
	}
	if got := node.CredentialNames(); got != nil {
		t.Errorf("CredentialNames() = %v, want nil", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		invalid bool // schema violation rather than a parse/version error
	}{
		{"invalid-missing-name.yaml", true},
		{"invalid-bad-type.yaml", true},
		{"invalid-bad-name-pattern.yaml", true},
		{"invalid-node-missing-category.yaml", true},
		{"invalid-empty-credential-names.yaml", true},
		{"invalid-bad-version.yaml", false},
		{"invalid-not-yaml.yaml", false},
		{"nonexistent.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			v, err := Load(testPath(tt.file))
			if err == nil {
				t.Fatalf("Load(%s) succeeded, want error", tt.file)
			}
			if v != nil {
				t.Errorf("Load(%s) returned %T alongside the error", tt.file, v)
			}
			var invalid *InvalidError
			if got := errors.As(err, &invalid); got != tt.invalid {
				t.Errorf("errors.As(InvalidError) = %v, want %v (error: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestParseNode_WrongKind(t *testing.T) {
	_, err := ParseNode(testPath("valid-credential.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not a node") {
		t.Errorf("ParseNode(credential) error = %v, want \"not a node\"", err)
	}

	_, err = ParseCredential(testPath("valid-node.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not a credential") {
		t.Errorf("ParseCredential(node) error = %v, want \"not a credential\"", err)
	}
}

func TestParseCredential(t *testing.T) {
	cred, err := ParseCredential(testPath("valid-credential.yaml"))
	if err != nil {
		t.Fatalf("ParseCredential error: %v", err)
	}
	if cred.Name != "openAIApi" {
		t.Errorf("Name = %q, want %q", cred.Name, "openAIApi")
	}
}

func TestLoadBytes_RecordsPath(t *testing.T) {
	const path = "/plugins/credentials/SerpApi.credential.yaml"
	v, err := LoadBytes([]byte("name: serpApi\ntype: credential\nlabel: Serp API\n"), path)
	if err != nil {
		t.Fatalf("LoadBytes error: %v", err)
	}
	if got := v.Base().FilePath; got != path {
		t.Errorf("FilePath = %q, want %q", got, path)
	}
}

func TestSemVer(t *testing.T) {
	tests := []struct {
		version string
		want    string
		wantErr bool
	}{
		{"", "1.0.0", false},
		{"2", "2.0.0", false},
		{"2.1", "2.1.0", false},
		{"v3.0.1", "3.0.1", false},
		{"latest", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			b := &BaseManifest{Version: tt.version}
			v, err := b.SemVer()
			if tt.wantErr {
				if err == nil {
					t.Errorf("SemVer(%q) = %v, want error", tt.version, v)
				}
				return
			}
			if err != nil {
				t.Fatalf("SemVer(%q) error: %v", tt.version, err)
			}
			if v.String() != tt.want {
				t.Errorf("SemVer(%q) = %s, want %s", tt.version, v, tt.want)
			}
		})
	}
}

func TestLoad_TempDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.yaml")
	content := "name: fooTool\ntype: node\nlabel: Foo Tool\ncategory: Tools\nicon: foo.png\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	node, err := ParseNode(path)
	if err != nil {
		t.Fatalf("ParseNode error: %v", err)
	}
	if node.FilePath != path {
		t.Errorf("FilePath = %q, want %q", node.FilePath, path)
	}
	if node.Icon != "foo.png" {
		t.Errorf("Icon = %q, want %q", node.Icon, "foo.png")
	}
}

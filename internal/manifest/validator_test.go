package manifest

import (
	"slices"
	"testing"
)

func TestValidateFile_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid-node.yaml", "valid-credential.yaml", "valid-node.json"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile error: %v", err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got issues: %+v", result.Issues)
			}
		})
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	tests := []struct {
		file string
		path string
	}{
		{"invalid-missing-name.yaml", ""},
		{"invalid-bad-type.yaml", "/type"},
		{"invalid-bad-name-pattern.yaml", "/name"},
		{"invalid-node-missing-category.yaml", ""},
		{"invalid-empty-credential-names.yaml", "/credential/credential_names"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid, got valid")
			}
			if len(result.Issues) == 0 {
				t.Fatal("expected issues, got none")
			}

			var paths []string
			for _, issue := range result.Issues {
				if issue.Keyword == "" || issue.Message == "" {
					t.Errorf("issue missing keyword or message: %+v", issue)
				}
				paths = append(paths, issue.Path)
			}
			if !slices.Contains(paths, tt.path) {
				t.Errorf("issue paths = %q, want one at %q", paths, tt.path)
			}
		})
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	if _, err := ValidateFile(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema returned nil schema")
	}
}

func TestInvalidError_Message(t *testing.T) {
	err := &InvalidError{
		Path: "/p/Bad.yaml",
		Result: &ValidationResult{Issues: []ValidationIssue{
			{Path: "/name", Message: "missing name", Keyword: "required"},
			{Path: "/label", Message: "missing label", Keyword: "required"},
		}},
	}
	want := "invalid manifest /p/Bad.yaml: /name: missing name (and 1 more)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

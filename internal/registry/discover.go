package registry

import (
	"path/filepath"
	"strings"
)

// manifestExts are the extensions of loadable plugin manifests.
var manifestExts = []string{".yaml", ".yml", ".json"}

// credentialInfix marks a manifest as a credential plugin: Foo.credential.yaml.
const credentialInfix = ".credential"

// isManifestFile returns true if the filename has a loadable manifest extension.
func isManifestFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range manifestExts {
		if ext == e {
			return true
		}
	}
	return false
}

// isCredentialFile returns true if the filename follows the credential
// plugin naming convention.
func isCredentialFile(name string) bool {
	if !isManifestFile(name) {
		return false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasSuffix(strings.ToLower(stem), credentialInfix)
}

// isNodeFile returns true if the filename is a loadable manifest that is not
// a credential manifest.
func isNodeFile(name string) bool {
	return isManifestFile(name) && !isCredentialFile(name)
}

// NodeEntries lists the node plugins below root.
func NodeEntries(root string) ([]Entry, error) {
	return entriesFromDir(root, isNodeFile)
}

// CredentialEntries lists the credential plugins below root.
func CredentialEntries(root string) ([]Entry, error) {
	return entriesFromDir(root, isCredentialFile)
}

func entriesFromDir(root string, match func(name string) bool) ([]Entry, error) {
	files, err := ListFiles(root)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, f := range files {
		if !match(filepath.Base(f)) {
			continue
		}
		entries = append(entries, FileEntry(f))
	}
	return entries, nil
}

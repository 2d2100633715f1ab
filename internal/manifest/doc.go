// Package manifest handles parsing and validation of plugin manifests.
// A plugin is a YAML or JSON file whose "type" field selects the variant it
// decodes into: a node (*NodeManifest) or a credential (*CredentialManifest).
// Every manifest is validated against the embedded JSON Schema before it is
// decoded.
package manifest

// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName           string `yaml:"cli_name"`
	DisplayName       string `yaml:"display_name"`
	Description       string `yaml:"description"`
	HomeDir           string `yaml:"home_dir"`
	EnvPrefix         string `yaml:"env_prefix"`
	ComponentsPackage string `yaml:"components_package"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:           "nexusagent",
			DisplayName:       "NexusAgent",
			Description:       "Plugin registry for the NexusAgent flow builder",
			HomeDir:           ".nexusagent",
			EnvPrefix:         "NEXUS",
			ComponentsPackage: "nexus-components",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "nexusagent").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "NexusAgent").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".nexusagent").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "NEXUS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ComponentsPackage returns the directory name of the installed plugin
// package whose nodes/ and credentials/ subdirectories are scanned by default.
func ComponentsPackage() string { load(); return defaults.ComponentsPackage }

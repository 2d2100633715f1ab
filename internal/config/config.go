package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/branding"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/policy"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/registry"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyNodesPath          = "nodes_path"
	KeyCredentialsPath    = "credentials_path"
	KeyShowCommunityNodes = "show_community_nodes"
	KeyAllowListFile      = "allowlist_file"
	KeyLoadConcurrency    = "load_concurrency"
	KeyLoadTimeout        = "load_timeout"
	KeyLogLevel           = "log_level"
)

// Keys lists every recognised configuration key.
var Keys = []string{
	KeyNodesPath,
	KeyCredentialsPath,
	KeyShowCommunityNodes,
	KeyAllowListFile,
	KeyLoadConcurrency,
	KeyLoadTimeout,
	KeyLogLevel,
}

// Dir returns the path to the config directory (~/.nexusagent/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.nexusagent/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// PluginRoot returns the default install location of the plugin package.
func PluginRoot() string {
	return filepath.Join(Dir(), "plugins", branding.ComponentsPackage())
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyNodesPath, filepath.Join(PluginRoot(), "nodes"))
	viper.SetDefault(KeyCredentialsPath, filepath.Join(PluginRoot(), "credentials"))
	viper.SetDefault(KeyShowCommunityNodes, false)
	viper.SetDefault(KeyAllowListFile, "")
	viper.SetDefault(KeyLoadConcurrency, runtime.NumCPU())
	viper.SetDefault(KeyLoadTimeout, registry.DefaultLoadTimeout)
	viper.SetDefault(KeyLogLevel, "info")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	SetDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnown reports whether key is a recognised configuration key.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// LoadTimeout returns the per-plugin load timeout.
func LoadTimeout() time.Duration {
	return viper.GetDuration(KeyLoadTimeout)
}

// LogLevel parses the configured log level. Unknown values fall back to info.
func LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString(KeyLogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Policy builds the node inclusion policy from configuration. When
// allowlist_file is set it replaces the embedded allow-list.
func Policy() (*policy.Policy, error) {
	allow := policy.DefaultAllowList()
	if path := viper.GetString(KeyAllowListFile); path != "" {
		a, err := policy.LoadAllowList(path)
		if err != nil {
			return nil, err
		}
		allow = a
	}
	return policy.New(policy.DefaultExcludedCategories, viper.GetBool(KeyShowCommunityNodes), allow), nil
}

// Registry returns the registry options described by the configuration.
func Registry(logger *slog.Logger) (registry.Options, error) {
	pol, err := Policy()
	if err != nil {
		return registry.Options{}, fmt.Errorf("building plugin policy: %w", err)
	}
	return registry.Options{
		NodesDir:       viper.GetString(KeyNodesPath),
		CredentialsDir: viper.GetString(KeyCredentialsPath),
		Policy:         pol,
		Concurrency:    viper.GetInt(KeyLoadConcurrency),
		LoadTimeout:    LoadTimeout(),
		Logger:         logger,
	}, nil
}

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/branding"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/config"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/registry"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// logger is built from configuration before every command runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers the node and credential plugins installed for the flow builder,
filters them through the category, community and allow-list policies, and
lets you inspect the resulting registry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: config.LogLevel(),
		}))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("nodes-path", "", "Directory containing node plugin manifests")
	flags.String("credentials-path", "", "Directory containing credential plugin manifests")
	flags.Bool("show-community-nodes", false, "Register nodes contributed by third-party authors")
	flags.String("allowlist-file", "", "Replace the built-in node allow-list with this file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		config.KeyNodesPath:          "nodes-path",
		config.KeyCredentialsPath:    "credentials-path",
		config.KeyShowCommunityNodes: "show-community-nodes",
		config.KeyAllowListFile:      "allowlist-file",
		config.KeyLogLevel:           "log-level",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// loadRegistry builds the process-wide plugin registry from configuration.
func loadRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	opts, err := config.Registry(logger)
	if err != nil {
		return nil, err
	}
	r, err := registry.Init(cmd.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("initializing plugin registry: %w", err)
	}
	return r, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

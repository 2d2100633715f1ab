package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/config"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/policy"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/registry"
)

var doctorSince string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the plugin installation",
	Long: `Verify that the plugin directories exist, build the registry, and report how
many plugins were registered, rejected by policy, or failed to load.

With --since, also list the nodes and credentials added or removed since a
snapshot written by the dump command.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorSince, "since", "", "Compare against a registry snapshot written by dump")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Plugin directories:")
	healthy := true
	for _, key := range []string{config.KeyNodesPath, config.KeyCredentialsPath} {
		dir := viper.GetString(key)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			fmt.Fprintf(out, "  [MISS] %s: %s does not exist\n", key, dir)
			healthy = false
			continue
		}
		fmt.Fprintf(out, "  [ OK ] %s: %s\n", key, dir)
	}
	if !healthy {
		return fmt.Errorf("plugin package is not installed correctly")
	}

	pol, err := config.Policy()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPolicy:\n  allow-list: %d labels\n  community nodes: %v\n", pol.AllowList().Len(), pol.ShowCommunityNodes())

	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	stats := reg.Stats()
	nodes, creds := reg.Len()
	fmt.Fprintln(out, "\nRegistry:")
	fmt.Fprintf(out, "  nodes:       %d registered from %d files\n", nodes, stats.NodeFiles)
	fmt.Fprintf(out, "  credentials: %d registered from %d files\n", creds, stats.CredentialFiles)
	fmt.Fprintf(out, "  load errors: %d\n", stats.LoadErrors)
	fmt.Fprintf(out, "  collisions:  %d\n", stats.Collisions)

	reasons := make([]string, 0, len(stats.Rejected))
	for r := range stats.Rejected {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(out, "  rejected (%s): %d\n", r, stats.Rejected[policy.Reason(r)])
	}

	if doctorSince != "" {
		prev, err := registry.ReadSnapshot(doctorSince)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nChanges since %s:\n", doctorSince)
		n := printChanges(out, "node", snapshotNames(prev.Nodes, func(d registry.NodeDescriptor) string { return d.Name }), reg.NodeNames())
		n += printChanges(out, "credential", snapshotNames(prev.Credentials, func(d registry.CredentialDescriptor) string { return d.Name }), reg.CredentialNames())
		if n == 0 {
			fmt.Fprintln(out, "  none")
		}
	}

	if stats.LoadErrors > 0 {
		fmt.Fprintln(out, "\nSome plugins failed to load; the warnings above name each file.")
	}
	return nil
}

func snapshotNames[T any](items []T, name func(T) string) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = name(item)
	}
	slices.Sort(names)
	return names
}

// printChanges writes one line per name added to or removed from before and
// returns how many lines it wrote. Both slices must be sorted.
func printChanges(w io.Writer, kind string, before, after []string) int {
	n := 0
	for _, name := range after {
		if _, found := slices.BinarySearch(before, name); !found {
			fmt.Fprintf(w, "  + %s %s\n", kind, name)
			n++
		}
	}
	for _, name := range before {
		if _, found := slices.BinarySearch(after, name); !found {
			fmt.Fprintf(w, "  - %s %s\n", kind, name)
			n++
		}
	}
	return n
}

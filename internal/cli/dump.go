package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/registry"
)

var dumpOut string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the resolved registry as JSON",
	Long: `Build the registry and write every registered node and credential, with
discovery statistics, as a JSON snapshot. Without --out the snapshot is
printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}

		snap := reg.Snapshot()
		if dumpOut == "" {
			return printJSON(cmd, snap)
		}
		if err := registry.WriteSnapshot(dumpOut, snap); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d nodes and %d credentials to %s\n", len(snap.Nodes), len(snap.Credentials), dumpOut)
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", "", "Write the snapshot to this file")
	rootCmd.AddCommand(dumpCmd)
}

package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/flow"
)

var (
	flowChatflowsDir string
	flowJSON         bool
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Check chatflows against the plugin registry",
}

var flowCredentialsCmd = &cobra.Command{
	Use:   "credentials <flow-file | chatflow-id>",
	Short: "List the credentials each node of a chatflow requires",
	Long: `Resolve every node of a chatflow against the registry and list the
credential types each node accepts.

The argument is either a flow graph JSON file or, with --chatflows-dir, the id
of a chatflow exported as <id>.json in that directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlowCredentials,
}

func init() {
	flowCredentialsCmd.Flags().StringVar(&flowChatflowsDir, "chatflows-dir", "", "Directory of exported chatflow records")
	flowCredentialsCmd.Flags().BoolVar(&flowJSON, "json", false, "Output in JSON format")
	flowCmd.AddCommand(flowCredentialsCmd)
	rootCmd.AddCommand(flowCmd)
}

func runFlowCredentials(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	var reqs []flow.Requirement
	if flowChatflowsDir != "" {
		svc := flow.NewService(flow.DirStore{Dir: flowChatflowsDir}, reg)
		reqs, err = svc.CredentialsForChatflow(cmd.Context(), args[0])
	} else {
		var data []byte
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading flow file: %w", err)
		}
		var g *flow.Graph
		g, err = flow.Parse(data)
		if err == nil {
			reqs, err = flow.RequiredCredentials(g, reg)
		}
	}
	if err != nil {
		return err
	}

	if flowJSON {
		if reqs == nil {
			reqs = []flow.Requirement{}
		}
		return printJSON(cmd, reqs)
	}

	if len(reqs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No credentials required.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NODE\tTYPE\tCREDENTIALS\tCONFIGURED")
	for _, r := range reqs {
		var names []string
		for _, c := range r.Credentials {
			names = append(names, c.Name)
		}
		for _, m := range r.Missing {
			names = append(names, m+" (not installed)")
		}
		configured := "no"
		if r.Configured {
			configured = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.NodeID, r.NodeName, strings.Join(names, ", "), configured)
	}
	return w.Flush()
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/registry"
)

var credentialsJSON bool

var credentialsCmd = &cobra.Command{
	Use:     "credentials",
	Aliases: []string{"creds"},
	Short:   "Inspect registered credential plugins",
}

var credentialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}

		creds := reg.Credentials()
		if credentialsJSON {
			return printJSON(cmd, creds)
		}
		if len(creds) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No credentials registered.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tLABEL\tVERSION\tICON")
		for _, c := range creds {
			icon := c.Icon
			if icon == "" {
				icon = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Label, c.Version, icon)
		}
		return w.Flush()
	},
}

var credentialsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one registered credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd)
		if err != nil {
			return err
		}
		c, ok := reg.Credential(args[0])
		if !ok {
			return fmt.Errorf("credential %q is not registered", args[0])
		}
		if credentialsJSON {
			return printJSON(cmd, c)
		}
		printCredential(cmd, c)
		return nil
	},
}

func init() {
	credentialsCmd.PersistentFlags().BoolVar(&credentialsJSON, "json", false, "Output in JSON format")
	credentialsCmd.AddCommand(credentialsListCmd)
	credentialsCmd.AddCommand(credentialsGetCmd)
	rootCmd.AddCommand(credentialsCmd)
}

func printCredential(cmd *cobra.Command, c registry.CredentialDescriptor) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:    %s\n", c.Name)
	fmt.Fprintf(out, "Label:   %s\n", c.Label)
	fmt.Fprintf(out, "Version: %s\n", c.Version)
	if c.Icon != "" {
		fmt.Fprintf(out, "Icon:    %s\n", c.Icon)
	}
	for _, in := range c.Inputs {
		fmt.Fprintf(out, "  - %s [%s]\n", in.Name, in.Type)
	}
	fmt.Fprintf(out, "File:    %s\n", c.FilePath)
}

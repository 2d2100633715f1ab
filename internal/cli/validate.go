package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/config"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/policy"
)

var validateKind string

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>...",
	Short: "Validate plugin manifests",
	Long: `Validate node and credential manifests against the manifest schema and,
for nodes, report whether the configured policy would register them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateKind, "kind", "", "Require every manifest to be of this type (node or credential)")
	rootCmd.AddCommand(validateCmd)
}

// loadManifest loads path, requiring the given kind when it is set.
func loadManifest(path, kind string) (manifest.Variant, error) {
	switch kind {
	case manifest.TypeNode:
		m, err := manifest.ParseNode(path)
		if err != nil {
			return nil, err
		}
		return m, nil
	case manifest.TypeCredential:
		m, err := manifest.ParseCredential(path)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return manifest.Load(path)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateKind != "" && validateKind != manifest.TypeNode && validateKind != manifest.TypeCredential {
		return fmt.Errorf("invalid --kind %q (want %s or %s)", validateKind, manifest.TypeNode, manifest.TypeCredential)
	}

	pol, err := config.Policy()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		v, err := loadManifest(path, validateKind)
		if err != nil {
			failed++
			var invalid *manifest.InvalidError
			if errors.As(err, &invalid) {
				fmt.Fprintf(out, "[FAIL] %s\n", path)
				for _, issue := range invalid.Result.Issues {
					fmt.Fprintf(out, "    %s: %s (%s)\n", issuePath(issue.Path), issue.Message, issue.Keyword)
				}
				continue
			}
			fmt.Fprintf(out, "[FAIL] %s: %v\n", path, err)
			continue
		}

		switch m := v.(type) {
		case *manifest.NodeManifest:
			if reason := pol.Evaluate(m); reason != policy.Accepted {
				fmt.Fprintf(out, "[ OK ] %s (node %s, not registered: %s)\n", path, m.Name, reason)
			} else {
				fmt.Fprintf(out, "[ OK ] %s (node %s)\n", path, m.Name)
			}
		case *manifest.CredentialManifest:
			fmt.Fprintf(out, "[ OK ] %s (credential %s)\n", path, m.Name)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d manifests failed validation", failed, len(args))
	}
	return nil
}

func issuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

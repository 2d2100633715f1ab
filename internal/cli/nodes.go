package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/registry"
)

var (
	nodesCategoryFilter string
	nodesTagFilter      string
	nodesCommunityOnly  bool
	nodesJSON           bool
	nodesByCategory     bool
	nodeGetJSON         bool
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Inspect registered node plugins",
}

var nodesListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List registered nodes",
	Long: `List the node plugins that passed the category, community and allow-list
policies.

The query matches against node names, labels and descriptions (case-insensitive
substring). Use --category and --tag to narrow the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNodesList,
}

var nodesGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one registered node",
	Args:  cobra.ExactArgs(1),
	RunE:  runNodesGet,
}

func init() {
	nodesListCmd.Flags().StringVar(&nodesCategoryFilter, "category", "", "Filter by category (e.g., \"Chat Models\", Tools)")
	nodesListCmd.Flags().StringVar(&nodesTagFilter, "tag", "", "Filter by tags (comma-separated, matches any)")
	nodesListCmd.Flags().BoolVar(&nodesCommunityOnly, "community", false, "Only show community nodes")
	nodesListCmd.Flags().BoolVar(&nodesJSON, "json", false, "Output in JSON format")
	nodesListCmd.Flags().BoolVar(&nodesByCategory, "by-category", false, "Group nodes by category, as the canvas palette does")
	nodesGetCmd.Flags().BoolVar(&nodeGetJSON, "json", false, "Output in JSON format")

	nodesCmd.AddCommand(nodesListCmd)
	nodesCmd.AddCommand(nodesGetCmd)
	rootCmd.AddCommand(nodesCmd)
}

func runNodesList(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	filterTags := splitList(nodesTagFilter)
	match := func(n registry.NodeDescriptor) bool {
		return matchesNode(n, query, nodesCategoryFilter, filterTags, nodesCommunityOnly)
	}

	if nodesByCategory {
		return printNodesByCategory(cmd, reg.NodesByCategory(), match)
	}

	var entries []registry.NodeDescriptor
	for _, n := range reg.Nodes() {
		if match(n) {
			entries = append(entries, n)
		}
	}

	if nodesJSON {
		if entries == nil {
			entries = []registry.NodeDescriptor{}
		}
		return printJSON(cmd, entries)
	}

	if len(entries) == 0 {
		msg := "No nodes found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if nodesCategoryFilter != "" {
			msg += fmt.Sprintf(" with --category=%s", nodesCategoryFilter)
		}
		if nodesTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", nodesTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg+".")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tCATEGORY\tVERSION\tCREDENTIALS")
	for _, n := range entries {
		creds := "-"
		if len(n.CredentialNames) > 0 {
			creds = strings.Join(n.CredentialNames, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.Name, n.Label, n.Category, n.Version, creds)
	}
	return w.Flush()
}

// printNodesByCategory prints the matching nodes of each category, categories
// in name order and nodes in label order.
func printNodesByCategory(cmd *cobra.Command, groups map[string][]registry.NodeDescriptor, match func(registry.NodeDescriptor) bool) error {
	filtered := make(map[string][]registry.NodeDescriptor)
	for category, nodes := range groups {
		for _, n := range nodes {
			if match(n) {
				filtered[category] = append(filtered[category], n)
			}
		}
	}

	if nodesJSON {
		return printJSON(cmd, filtered)
	}
	if len(filtered) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No nodes found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	for i, category := range slices.Sorted(maps.Keys(filtered)) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading := category
		if heading == "" {
			heading = "Uncategorized"
		}
		fmt.Fprintf(w, "%s (%d)\n", heading, len(filtered[category]))
		for _, n := range filtered[category] {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", n.Label, n.Name, n.Version)
		}
	}
	return w.Flush()
}

func runNodesGet(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	n, ok := reg.Node(args[0])
	if !ok {
		return fmt.Errorf("node %q is not registered (not installed, or filtered out by policy)", args[0])
	}

	if nodeGetJSON {
		return printJSON(cmd, n)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:        %s\n", n.Name)
	fmt.Fprintf(out, "Label:       %s\n", n.Label)
	fmt.Fprintf(out, "Category:    %s\n", n.Category)
	fmt.Fprintf(out, "Version:     %s\n", n.Version)
	if n.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", n.Description)
	}
	if n.Icon != "" {
		fmt.Fprintf(out, "Icon:        %s\n", n.Icon)
	}
	if n.Author != "" {
		fmt.Fprintf(out, "Author:      %s (community)\n", n.Author)
	}
	if len(n.CredentialNames) > 0 {
		fmt.Fprintf(out, "Credentials: %s\n", strings.Join(n.CredentialNames, ", "))
	}
	if len(n.Inputs) > 0 {
		fmt.Fprintln(out, "Inputs:")
		for _, in := range n.Inputs {
			opt := ""
			if in.Optional {
				opt = " (optional)"
			}
			fmt.Fprintf(out, "  - %s [%s]%s\n", in.Name, in.Type, opt)
		}
	}
	fmt.Fprintf(out, "File:        %s\n", n.FilePath)
	return nil
}

// matchesNode returns true if the node matches every non-empty filter.
func matchesNode(n registry.NodeDescriptor, query, category string, tags []string, communityOnly bool) bool {
	if category != "" && !strings.EqualFold(n.Category, category) {
		return false
	}
	if communityOnly && !n.Community() {
		return false
	}
	if len(tags) > 0 && !hasAnyTag(n.Tags, tags) {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Name), q) ||
		strings.Contains(strings.ToLower(n.Label), q) ||
		strings.Contains(strings.ToLower(n.Description), q)
}

// hasAnyTag reports whether any of the node's tags is in want (lower-cased).
func hasAnyTag(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.ToLower(h) == w {
				return true
			}
		}
	}
	return false
}

// splitList parses a comma-separated flag into lower-cased, trimmed values.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/speakeasy-api/apireader/cmd/apireader/commands/cmdutil"
	"github.com/speakeasy-api/apireader/validation"
	"github.com/spf13/cobra"
)

var listRulesCmd = &cobra.Command{
	Use:   "list-rules",
	Short: "List all available validation rules",
	Long: `List all available validation rules with the object kind they check and the rulesets
that include them.

Examples:
  apireader list-rules
  apireader list-rules --ruleset strict
  apireader list-rules --format json`,
	Args: cobra.NoArgs,
	Run:  runListRules,
}

var (
	listRulesFormat  string
	listRulesRuleset string
)

func init() {
	listRulesCmd.Flags().StringVarP(&listRulesFormat, "format", "f", "text", "Output format: text or json")
	listRulesCmd.Flags().StringVar(&listRulesRuleset, "ruleset", "", "Filter by ruleset (e.g., default, strict, all)")
}

type ruleInfo struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Rulesets []string `json:"rulesets"`
}

func runListRules(cmd *cobra.Command, _ []string) {
	stdout, _ := cmdutil.Writers(cmd)
	if err := listRules(stdout, validation.DefaultRegistry(), listRulesRuleset, listRulesFormat); err != nil {
		cmdutil.Die(err)
	}
}

func listRules(w io.Writer, registry *validation.Registry, ruleset, format string) error {
	infos := collectRules(registry, ruleset)

	switch format {
	case "json":
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "text":
		printRulesText(w, infos)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func collectRules(registry *validation.Registry, ruleset string) []ruleInfo {
	infos := []ruleInfo{}
	for _, rule := range registry.AllRules() {
		rulesets := registry.RulesetsContaining(rule.ID)
		if ruleset != "" && !slices.Contains(rulesets, ruleset) {
			continue
		}
		infos = append(infos, ruleInfo{
			ID:       rule.ID,
			Kind:     string(rule.Kind),
			Rulesets: rulesets,
		})
	}
	return infos
}

func printRulesText(w io.Writer, infos []ruleInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No rules found matching the specified filters.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tKIND\tRULESETS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.ID, info.Kind, strings.Join(info.Rulesets, ", "))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d rules total\n", len(infos))
}

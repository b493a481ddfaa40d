package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/xavierfonsecaphd/space-restructure/internal/resolve"
	"github.com/xavierfonsecaphd/space-restructure/internal/walk"
	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan <input-dir>",
	Short: "Print the rename mapping without writing anything",
	Long: `Plan walks the exported tree and prints the flat name each page and
attachment would receive, plus any collisions and structure problems,
without touching the filesystem. Useful before committing to a large
restructure.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("separator", types.DefaultSeparator, "separator joining ancestry tokens in flat page names")
	planCmd.Flags().Int("max-name-length", types.DefaultMaxNameLength, "maximum flat name stem length in runes")
	planCmd.Flags().Bool("flat-titles", false, "name pages by title alone; duplicates get numeric suffixes")
	planCmd.Flags().StringSlice("exclude", nil, "glob patterns of paths to skip (repeatable)")
	planCmd.Flags().Bool("json", false, "output the plan as JSON")

	rootCmd.AddCommand(planCmd)
}

// planDoc is the JSON shape of a dry-run plan.
type planDoc struct {
	Pages       []planEntry              `json:"pages"`
	Attachments []planEntry              `json:"attachments"`
	Collisions  []types.Collision        `json:"collisions,omitempty"`
	Truncations []types.Truncation       `json:"truncations,omitempty"`
	Problems    []types.StructureProblem `json:"problems,omitempty"`
}

type planEntry struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide an input directory")
	}

	walkCfg := types.WalkConfig{Exclude: sliceSetting(cmd, "exclude", "walk.exclude")}
	nameCfg := types.NameConfig{
		Separator:     stringSetting(cmd, "separator", "names.separator"),
		MaxNameLength: intSetting(cmd, "max-name-length", "names.max_name_length"),
		FlatTitles:    boolSetting(cmd, "flat-titles", "names.flat_titles"),
	}

	snap, err := walk.Walk(args[0], walkCfg)
	if err != nil {
		return err
	}
	mapping := resolve.Resolve(snap, nameCfg)

	doc := planDoc{
		Pages:       planEntries(mapping.Pages),
		Attachments: planEntries(mapping.Attachments),
		Collisions:  mapping.Collisions,
		Truncations: mapping.Truncations,
		Problems:    snap.Problems,
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling plan: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, e := range doc.Pages {
		fmt.Printf("page: %s -> %s\n", e.Source, e.Dest)
	}
	for _, e := range doc.Attachments {
		fmt.Printf("attachment: %s -> %s\n", e.Source, e.Dest)
	}
	if len(doc.Collisions) > 0 {
		fmt.Println("\nCollisions:")
		for _, c := range doc.Collisions {
			fmt.Printf("  %s wanted %s, got %s\n", c.SourcePath, c.Candidate, c.Resolved)
		}
	}
	if len(doc.Problems) > 0 {
		fmt.Fprintln(os.Stderr, "\nSkipped folders:")
		for _, p := range doc.Problems {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", p.Path, p.Reason)
		}
	}
	fmt.Printf("\nPlan: %d pages, %d attachments, %d collisions\n",
		len(doc.Pages), len(doc.Attachments), len(doc.Collisions))
	return nil
}

func planEntries(mapping map[string]string) []planEntry {
	entries := make([]planEntry, 0, len(mapping))
	for src, dest := range mapping {
		entries = append(entries, planEntry{Source: src, Dest: dest})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })
	return entries
}

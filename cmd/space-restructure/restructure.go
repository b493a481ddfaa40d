package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xavierfonsecaphd/space-restructure/internal/index"
	"github.com/xavierfonsecaphd/space-restructure/internal/relocate"
	"github.com/xavierfonsecaphd/space-restructure/internal/resolve"
	"github.com/xavierfonsecaphd/space-restructure/internal/walk"
	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

var restructureCmd = &cobra.Command{
	Use:   "restructure <input-dir> <output-dir>",
	Short: "Flatten a space export into an import-ready layout",
	Long: `Restructure walks the exported tree, computes collision-free flat names
that encode each page's ancestry, rewrites every relative link, and writes
the result to <output-dir>/pages and <output-dir>/attachments together
with a run report.

Broken links and name collisions are report content, not failures: the
command exits non-zero only when the input tree cannot be read or the
output cannot be created.`,
	RunE: runRestructure,
}

func init() {
	restructureCmd.Flags().String("separator", types.DefaultSeparator, "separator joining ancestry tokens in flat page names")
	restructureCmd.Flags().Int("max-name-length", types.DefaultMaxNameLength, "maximum flat name stem length in runes")
	restructureCmd.Flags().Bool("flat-titles", false, "name pages by title alone; duplicates get numeric suffixes")
	restructureCmd.Flags().String("space-key", "", "space key to inject into page frontmatter that has none")
	restructureCmd.Flags().StringSlice("exclude", nil, "glob patterns of paths to skip (repeatable)")
	restructureCmd.Flags().String("report", "README.md", "run report filename under the output directory")
	restructureCmd.Flags().String("manifest", "manifest.yaml", "rename manifest filename under the output directory (empty disables)")
	restructureCmd.Flags().String("index-db", "", "optional SQLite rename index path")

	rootCmd.AddCommand(restructureCmd)
}

func runRestructure(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("provide an input directory and an output directory")
	}
	inputDir, outputDir := args[0], args[1]
	cfg := restructureConfig(cmd)

	snap, err := walk.Walk(inputDir, cfg.Walk)
	if err != nil {
		return err
	}
	if len(snap.Pages) == 0 && len(snap.Attachments) == 0 {
		return fmt.Errorf("no pages or attachments found under %s", inputDir)
	}

	mapping := resolve.Resolve(snap, cfg.Names)

	report, err := relocate.Run(snap, mapping, cfg, inputDir, outputDir, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.IndexDB != "" {
		if err := index.Write(cfg.IndexDB, mapping); err != nil {
			fmt.Fprintf(os.Stderr, "warning: rename index not written: %v\n", err)
		}
	}

	if report.NeedsAttention() {
		fmt.Fprintf(os.Stderr, "note: review %s in the output directory before importing\n", cfg.ReportFile)
	}
	return nil
}

// restructureConfig assembles the run configuration from flags, falling back
// to config-file/environment values for flags left unset.
func restructureConfig(cmd *cobra.Command) types.RestructureConfig {
	return types.RestructureConfig{
		Walk: types.WalkConfig{
			Exclude: sliceSetting(cmd, "exclude", "walk.exclude"),
		},
		Names: types.NameConfig{
			Separator:     stringSetting(cmd, "separator", "names.separator"),
			MaxNameLength: intSetting(cmd, "max-name-length", "names.max_name_length"),
			FlatTitles:    boolSetting(cmd, "flat-titles", "names.flat_titles"),
		},
		SpaceKey:     stringSetting(cmd, "space-key", "space_key"),
		ReportFile:   stringSetting(cmd, "report", "report_file"),
		ManifestFile: stringSetting(cmd, "manifest", "manifest_file"),
		IndexDB:      stringSetting(cmd, "index-db", "index_db"),
	}
}

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

func sliceSetting(cmd *cobra.Command, flag, key string) []string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetStringSlice(key)
	}
	v, _ := cmd.Flags().GetStringSlice(flag)
	return v
}

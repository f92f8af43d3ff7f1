// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lessonpour/internal/catalog"
	"github.com/pdiddy/lessonpour/internal/pour"
	"github.com/pdiddy/lessonpour/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Pour lesson-content cells into per-page JSON files",
	Long: `Extract reads one dump (--input) or every .json file in a directory
(--dir), locates table cells that carry lesson content, and writes three
files per dump: {unit}_pg1.json, {unit}_pg2.json, {unit}_pg3.json, each
mapping lesson key to its cells for that page.

In directory mode a failing file is reported and the batch continues; in
single-file mode a failure terminates the run.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("input", "", "single dump file to process")
	extractCmd.Flags().String("dir", "", "directory of dump files to process")
	extractCmd.Flags().String("out", ".", "output directory, created if missing")
	extractCmd.Flags().Bool("all", false, "keep every cell, bypassing the content classifier")
	extractCmd.Flags().String("report", "", "write a YAML run report to this path")
	extractCmd.Flags().Bool("catalog", false, "record the run in the catalog database")
	extractCmd.Flags().Bool("watch", false, "keep running and re-pour files as they change (directory mode)")

	viper.BindPFlag("extract.include_all", extractCmd.Flags().Lookup("all"))
	viper.BindPFlag("extract.out_dir", extractCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(extractCmd)
}

// extractConfig assembles the pour configuration from flags and the viper
// config file. Flags win over config values through the bindings above.
func extractConfig() types.PourConfig {
	return types.PourConfig{
		Classifier: types.ClassifierConfig{
			IncludeAll:         viper.GetBool("extract.include_all"),
			HeaderStylePrefix:  viper.GetString("extract.header_style_prefix"),
			BodyStyleSubstring: viper.GetString("extract.body_style_substring"),
		},
		PageSectionKeys: viper.GetStringSlice("extract.page_section_keys"),
		OutDir:          viper.GetString("extract.out_dir"),
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	dir, _ := cmd.Flags().GetString("dir")
	if (input == "") == (dir == "") {
		err := fmt.Errorf("exactly one of --input or --dir is required")
		printError(err)
		return err
	}

	source := input
	if source == "" {
		source = dir
	}

	cfg := extractConfig()
	cmd.SilenceUsage = true

	var (
		batch   pour.BatchResult
		results []pour.FileResult
	)

	if input != "" {
		res, err := pour.PourFile(input, cfg, os.Stdout)
		if err != nil {
			printError(err)
			return err
		}
		batch.Poured = 1
		results = []pour.FileResult{res}
	} else {
		var err error
		batch, results, err = pour.PourDir(dir, cfg, os.Stdout)
		if err != nil {
			printError(err)
			return err
		}
		printBatchSummary(batch)
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		params := pour.ReportParams{
			Input:      source,
			OutDir:     cfg.OutDir,
			IncludeAll: cfg.Classifier.IncludeAll,
		}
		if err := pour.WriteReport(reportPath, params, batch, results); err != nil {
			printError(err)
			return err
		}
		printNote("wrote run report to " + reportPath)
	}

	if record, _ := cmd.Flags().GetBool("catalog"); record {
		if err := recordRun(source, cfg, batch, results); err != nil {
			printError(err)
			return err
		}
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if dir == "" {
			err := fmt.Errorf("--watch requires --dir")
			printError(err)
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := pour.Watch(ctx, dir, cfg, os.Stdout); err != nil {
			printError(err)
			return err
		}
	}

	return nil
}

// resolveCatalogDB picks the catalog database path for the catalog
// command: an explicit flag value wins, then the same resolution the
// extract command uses when recording.
func resolveCatalogDB(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return catalogPath(viper.GetString("extract.out_dir"))
}

func catalogPath(outDir string) string {
	if p := viper.GetString("catalog.db"); p != "" {
		return p
	}
	if outDir == "" {
		outDir = "."
	}
	return filepath.Join(outDir, catalog.DefaultDBName)
}

func recordRun(input string, cfg types.PourConfig, batch pour.BatchResult, results []pour.FileResult) error {
	store, err := catalog.Open(catalogPath(cfg.OutDir))
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.RecordRun(context.Background(), input, cfg.OutDir, cfg.Classifier.IncludeAll, batch, results)
	if err != nil {
		return err
	}
	printNote("recorded run " + id)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lessonpour/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List pour runs recorded in the catalog database",
	Long: `Catalog lists runs previously recorded with extract --catalog: when
they ran, what they read, where output went, and how many files poured.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().String("db", "", "catalog database path (default: from config, then the extract output directory)")
	catalogCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	dbPath = resolveCatalogDB(dbPath)
	limit, _ := cmd.Flags().GetInt("limit")
	cmd.SilenceUsage = true

	store, err := catalog.Open(dbPath)
	if err != nil {
		printError(err)
		return err
	}
	defer store.Close()

	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		printError(err)
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %-6s  %-6s  %s\n",
		"Run", "Started", "Input", "Poured", "Failed", "Cells")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 112))

	for _, r := range runs {
		cells, err := store.CellTotal(context.Background(), r.ID)
		if err != nil {
			printError(err)
			return err
		}
		input := r.Input
		if len(input) > 30 {
			input = input[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %-6d  %-6d  %d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), input, r.Poured, r.Failed, cells)
	}
	return nil
}

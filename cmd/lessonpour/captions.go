// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lessonpour/internal/captions"
	"github.com/pdiddy/lessonpour/pkg/types"
)

var captionsCmd = &cobra.Command{
	Use:   "captions",
	Short: "Collect caption text from unit master files",
	Long: `Captions walks a directory tree, reads every unit master file
(Y*_TG_L*_U*.json), and writes one JSON index mapping each file stem to
its ordered, de-duplicated caption texts. Centered captions are kept only
when they contain page numbers unless --all-centered is set.`,
	RunE: runCaptions,
}

func init() {
	captionsCmd.Flags().String("dir", "", "base directory to walk for unit master files")
	captionsCmd.Flags().String("out", "unit_caption_texts.json", "output index file")
	captionsCmd.Flags().Bool("all-centered", false, "keep centered captions even without digits")

	rootCmd.AddCommand(captionsCmd)
}

func runCaptions(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		err := fmt.Errorf("--dir is required")
		printError(err)
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	allCentered, _ := cmd.Flags().GetBool("all-centered")
	cmd.SilenceUsage = true

	cfg := types.CaptionsConfig{AllCentered: allCentered}
	index, err := captions.CollectDir(dir, cfg, os.Stderr)
	if err != nil {
		printError(err)
		return err
	}
	if err := captions.WriteIndex(out, index); err != nil {
		printError(err)
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Wrote %s with %d entries", out, len(index))))
	return nil
}

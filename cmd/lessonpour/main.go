// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lessonpour CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lessonpour CLI.
var rootCmd = &cobra.Command{
	Use:   "lessonpour",
	Short: "Pour lesson content out of textbook-generation JSON dumps",
	Long: `lessonpour extracts lesson-content cells from textbook-generation JSON
dumps and re-buckets them by lesson and page into simplified JSON files.

The extract command runs the cell pipeline over a file or a directory of
dumps; captions collects caption-styled text across unit master files;
catalog lists previously recorded runs.`,
	// Subcommands render their own errors; without this cobra would
	// echo each one a second time.
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lessonpour.yaml or ~/.config/lessonpour/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lessonpour")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lessonpour"))
		}
	}

	viper.SetEnvPrefix("LESSONPOUR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

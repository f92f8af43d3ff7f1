// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPath(t *testing.T) {
	t.Cleanup(func() { viper.Set("catalog.db", "") })

	viper.Set("catalog.db", "custom/runs.db")
	assert.Equal(t, "custom/runs.db", catalogPath("out"))

	viper.Set("catalog.db", "")
	assert.Equal(t, filepath.Join("out", "lessonpour.db"), catalogPath("out"))
	assert.Equal(t, "lessonpour.db", catalogPath(""))
}

func TestResolveCatalogDB(t *testing.T) {
	t.Cleanup(func() {
		viper.Set("catalog.db", "")
		viper.Set("extract.out_dir", ".")
	})
	viper.Set("catalog.db", "")

	// An explicit flag value wins.
	assert.Equal(t, "given.db", resolveCatalogDB("given.db"))

	// Otherwise the catalog command resolves the same path extract
	// records to, so runs stay visible without repeating --db.
	viper.Set("extract.out_dir", "out")
	assert.Equal(t, filepath.Join("out", "lessonpour.db"), resolveCatalogDB(""))

	viper.Set("catalog.db", "cfg.db")
	assert.Equal(t, "cfg.db", resolveCatalogDB(""))
}

func TestRunExtract_RequiresExactlyOneSource(t *testing.T) {
	setFlag := func(name, value string) {
		require.NoError(t, extractCmd.Flags().Set(name, value))
	}
	t.Cleanup(func() {
		setFlag("input", "")
		setFlag("dir", "")
	})

	// Neither source given.
	err := runExtract(extractCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of --input or --dir")

	// Both sources given.
	setFlag("input", "a.json")
	setFlag("dir", "dumps")
	err = runExtract(extractCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of --input or --dir")
}

func TestRootCommandSilencesErrorEcho(t *testing.T) {
	// Subcommands print their own error lines; cobra must not repeat them.
	assert.True(t, rootCmd.SilenceErrors)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lessonpour/internal/pour"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "lessonpour.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordRunAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	results := []pour.FileResult{
		{
			File:       "dumps/Y1_TG_L3_U3.json",
			UnitSuffix: "L3_U3",
			LessonKeys: []string{"Y1_TG_L3_U3_L01", "Y1_TG_L3_U3_L02"},
			Counts: [pour.PageCount]map[string]int{
				{"Y1_TG_L3_U3_L01": 3, "Y1_TG_L3_U3_L02": 2},
				{"Y1_TG_L3_U3_L01": 0, "Y1_TG_L3_U3_L02": 1},
				{"Y1_TG_L3_U3_L01": 0, "Y1_TG_L3_U3_L02": 0},
			},
		},
		{File: "dumps/broken.json", Err: "parsing document: oops"},
	}
	batch := pour.BatchResult{Poured: 1, Failed: 1}

	id, err := store.RecordRun(ctx, "dumps/", "out/", true, batch, results)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	runs, err := store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "dumps/", run.Input)
	assert.Equal(t, "out/", run.OutDir)
	assert.True(t, run.IncludeAll)
	assert.Equal(t, 1, run.Poured)
	assert.Equal(t, 1, run.Failed)
	assert.False(t, run.StartedAt.IsZero())

	total, err := store.CellTotal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
}

func TestRunsLimitAndOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var last string
	for i := 0; i < 3; i++ {
		id, err := store.RecordRun(ctx, "dumps/", "out/", false, pour.BatchResult{Poured: i}, nil)
		require.NoError(t, err)
		last = id
	}

	runs, err := store.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, last, runs[0].ID, "newest run listed first")
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "lessonpour.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestCellTotal_UnknownRun(t *testing.T) {
	store := openTestStore(t)
	total, err := store.CellTotal(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

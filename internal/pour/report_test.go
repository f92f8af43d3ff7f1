// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pour

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	params := ReportParams{Input: "dumps/", OutDir: "out/", IncludeAll: true}
	batch := BatchResult{Poured: 1, Failed: 1}
	results := []FileResult{
		{
			File:       "dumps/Y1_TG_L3_U3.json",
			UnitSuffix: "L3_U3",
			LessonKeys: []string{"Y1_TG_L3_U3_L01"},
			Counts: [PageCount]map[string]int{
				{"Y1_TG_L3_U3_L01": 4},
				{"Y1_TG_L3_U3_L01": 0},
				{"Y1_TG_L3_U3_L01": 1},
			},
		},
		{
			File: "dumps/broken.json",
			Err:  "parsing document dumps/broken.json: unexpected end of JSON input",
		},
	}

	require.NoError(t, WriteReport(path, params, batch, results))

	report, err := ReadReport(path)
	require.NoError(t, err)

	assert.Equal(t, params, report.Params)
	assert.Equal(t, 1, report.Summary.Poured)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.False(t, report.Summary.Timestamp.IsZero())

	require.Len(t, report.Files, 2)
	assert.Equal(t, "L3_U3", report.Files[0].UnitSuffix)
	assert.Equal(t, []int{4, 0, 1}, report.Files[0].PageCells)
	assert.Empty(t, report.Files[0].Error)
	assert.Empty(t, report.Files[1].PageCells)
	assert.Contains(t, report.Files[1].Error, "parsing document")
}

func TestReadReport_Missing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading run report")
}

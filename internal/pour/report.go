// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pour

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// RunReport is the on-disk record of one pour run. The operator can keep
// it next to the output files to see what was produced from what, without
// re-running the batch.
type RunReport struct {
	Params  ReportParams  `yaml:"params"`
	Files   []FileReport  `yaml:"files"`
	Summary ReportSummary `yaml:"summary"`
}

// ReportParams stores the run parameters in a serializable form.
type ReportParams struct {
	Input      string `yaml:"input"`
	OutDir     string `yaml:"out_dir"`
	IncludeAll bool   `yaml:"include_all"`
}

// FileReport stores the per-file outcome.
type FileReport struct {
	File       string `yaml:"file"`
	UnitSuffix string `yaml:"unit_suffix,omitempty"`
	// PageCells holds the total cell count written per page, in page order.
	PageCells []int  `yaml:"page_cells,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

// ReportSummary stores run totals and a timestamp.
type ReportSummary struct {
	Poured    int       `yaml:"poured"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteReport saves the run parameters and per-file outcomes to a YAML file.
func WriteReport(path string, params ReportParams, batch BatchResult, results []FileResult) error {
	report := RunReport{
		Params: params,
		Summary: ReportSummary{
			Poured:    batch.Poured,
			Failed:    batch.Failed,
			Timestamp: time.Now(),
		},
	}

	for _, r := range results {
		fr := FileReport{
			File:       r.File,
			UnitSuffix: r.UnitSuffix,
			Error:      r.Err,
		}
		if r.Err == "" {
			for page := 1; page <= PageCount; page++ {
				fr.PageCells = append(fr.PageCells, r.CellTotal(page))
			}
		}
		report.Files = append(report.Files, fr)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously written run report from disk.
func ReadReport(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report: %w", err)
	}
	var report RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing run report: %w", err)
	}
	return &report, nil
}

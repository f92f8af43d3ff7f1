// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pour re-buckets lesson-content cells from textbook-generation
// JSON dumps into per-page output files: one file per page, each mapping
// lesson key to the qualifying cells found in that page's section.
package pour

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/lessonpour/internal/document"
	"github.com/pdiddy/lessonpour/pkg/types"
)

// PageCount is the fixed number of page buckets per unit.
const PageCount = 3

// lessonKeyRe matches child keys that identify one lesson within a unit,
// e.g. "Y1_TG_L3_U3_L01".
var lessonKeyRe = regexp.MustCompile(`(?i)_L\d{2}$`)

var defaultSectionKeys = []string{"lesson0", "lesson1", "lesson2"}

// PageBuckets holds, per page, the mapping from lesson key to the cells
// assigned to that page. Every lesson key appears in every page, with an
// empty slice when nothing landed there.
type PageBuckets [PageCount]map[string][]map[string]any

// FileResult summarizes the outcome of pouring one input file.
type FileResult struct {
	File       string
	UnitSuffix string
	LessonKeys []string
	// Counts holds per-page cell counts keyed by lesson key.
	Counts [PageCount]map[string]int
	// Outputs are the three page file paths written.
	Outputs [PageCount]string
	// Err is the failure message when the file could not be processed.
	Err string
}

// CellTotal returns the number of cells written for page (1-based).
func (r FileResult) CellTotal(page int) int {
	total := 0
	for _, n := range r.Counts[page-1] {
		total += n
	}
	return total
}

// sectionKeys returns the configured page-section key names, padded or
// truncated to exactly PageCount entries.
func sectionKeys(cfg types.PourConfig) []string {
	keys := cfg.PageSectionKeys
	if len(keys) == 0 {
		keys = defaultSectionKeys
	}
	if len(keys) > PageCount {
		keys = keys[:PageCount]
	}
	for len(keys) < PageCount {
		keys = append(keys, defaultSectionKeys[len(keys)])
	}
	return keys
}

// lessonKeys returns the lesson keys present under the root object, sorted.
// When none match, ten keys {rootKey}_L01 through {rootKey}_L10 are
// synthesized so fully sectionless dumps still produce predictable output.
func lessonKeys(root map[string]any, rootKey string) []string {
	var keys []string
	for k := range root {
		if lessonKeyRe.MatchString(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		for i := 1; i <= 10; i++ {
			keys = append(keys, fmt.Sprintf("%s_L%02d", rootKey, i))
		}
	}
	return keys
}

// collect runs the scan-collect-classify pipeline over v and returns the
// qualifying cells plus the number of table nodes encountered.
func collect(v any, cls document.Classifier) (cells []map[string]any, tables int) {
	cells = make([]map[string]any, 0)
	for _, table := range document.Tables(v) {
		tables++
		for _, cell := range document.Cells(table) {
			if cls.Match(cell) {
				cells = append(cells, cell)
			}
		}
	}
	return cells, tables
}

// Buckets partitions the qualifying cells of doc into page buckets, one
// map per page, keyed by lesson key. Lessons with page-section arrays are
// scanned section by section; lessons without any page structure are
// deep-scanned into page 1. Zero-yield warnings go to w.
func Buckets(doc map[string]any, rootKey string, cfg types.PourConfig, w io.Writer) (PageBuckets, []string) {
	cls := document.NewClassifier(cfg.Classifier)
	sections := sectionKeys(cfg)

	root, _ := doc[rootKey].(map[string]any)
	keys := lessonKeys(root, rootKey)

	var buckets PageBuckets
	for i := range buckets {
		buckets[i] = make(map[string][]map[string]any, len(keys))
	}

	for _, key := range keys {
		lesson, _ := root[key].(map[string]any)

		hasSections := false
		for _, sk := range sections {
			if _, ok := lesson[sk].([]any); ok {
				hasSections = true
				break
			}
		}

		if hasSections {
			total := 0
			for i, sk := range sections {
				cells, _ := collect(lesson[sk], cls)
				buckets[i][key] = cells
				total += len(cells)
			}
			if total == 0 && len(document.Tables(lesson)) > 0 {
				fmt.Fprintf(w, "warning: %s: tables present but no qualifying cells in any page section\n", key)
			}
			continue
		}

		cells, tables := collect(lesson, cls)
		buckets[0][key] = cells
		buckets[1][key] = make([]map[string]any, 0)
		buckets[2][key] = make([]map[string]any, 0)
		if len(cells) == 0 && tables > 0 {
			fmt.Fprintf(w, "warning: %s: %d table(s) found but no qualifying cells\n", key, tables)
		}
	}

	return buckets, keys
}

// PourFile processes one input file end to end: load, resolve the root
// key, bucket cells by lesson and page, and write the three page files.
// Status and warnings go to w.
func PourFile(path string, cfg types.PourConfig, w io.Writer) (FileResult, error) {
	doc, err := document.Load(path)
	if err != nil {
		return FileResult{File: path}, err
	}
	rootKey, err := document.RootKey(doc)
	if err != nil {
		return FileResult{File: path}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	suffix := document.UnitSuffix(rootKey, path)

	buckets, keys := Buckets(doc.(map[string]any), rootKey, cfg, w)

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "."
	}
	outputs, err := WritePages(outDir, suffix, buckets)
	if err != nil {
		return FileResult{File: path, UnitSuffix: suffix}, err
	}

	result := FileResult{
		File:       path,
		UnitSuffix: suffix,
		LessonKeys: keys,
		Outputs:    outputs,
	}
	for i := range buckets {
		result.Counts[i] = make(map[string]int, len(keys))
		for k, cells := range buckets[i] {
			result.Counts[i][k] = len(cells)
		}
	}

	fmt.Fprintf(w, "poured %s -> %s, %s, %s\n",
		filepath.Base(path), outputs[0], outputs[1], outputs[2])
	return result, nil
}

// BatchResult holds the outcome of a directory batch run.
type BatchResult struct {
	Poured int
	Failed int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int { return r.Poured + r.Failed }

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool { return r.Failed > 0 }

// PourDir processes every .json file in dir (case-insensitive extension,
// non-recursive), isolating failures per file: a failed file is reported
// on w and the batch continues. An empty directory is a warning, not an
// error.
func PourDir(dir string, cfg types.PourConfig, w io.Writer) (BatchResult, []FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var batch BatchResult
	var results []FileResult

	matched := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		matched++
		path := filepath.Join(dir, entry.Name())

		res, err := PourFile(path, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			res.Err = err.Error()
			batch.Failed++
		} else {
			batch.Poured++
		}
		results = append(results, res)
	}

	if matched == 0 {
		fmt.Fprintf(w, "warning: no .json files found in %s\n", dir)
	}
	return batch, results, nil
}

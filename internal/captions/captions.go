// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package captions extracts caption-styled paragraph text from unit master
// files. Styles are matched after normalization (unicode dashes folded,
// override suffixes stripped), and page-range phrasing in the collected
// text is repaired ("pages 12 13" or "pages 1213" become "pages 12-13").
package captions

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/lessonpour/internal/document"
	"github.com/pdiddy/lessonpour/pkg/types"
)

// unitFileRe matches unit master files, e.g. "Y49397_TG_L3_U3.json".
var unitFileRe = regexp.MustCompile(`^Y\d+_TG_L\d+_U\d+\.json$`)

var (
	pageSepRe    = regexp.MustCompile(`(?i)\bpages?\s+(\d{1,2})\s*(?:[-\x{2013}\x{2014}\x{2212}]|\s+)\s*(\d{1,2})\b`)
	pageGluedRe  = regexp.MustCompile(`(?i)\bpages?\s+(\d{3,4})\b`)
	spaceRe      = regexp.MustCompile(`\s+`)
	underscoreRe = regexp.MustCompile(`_+`)
	overrideRe   = regexp.MustCompile(`\s*\+\s*$`)
	digitRe      = regexp.MustCompile(`\d`)
)

// dashFold maps the dash variants seen in authoring tools onto a plain
// hyphen so style and text comparisons are stable.
var dashFold = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‑", "-", // non-breaking hyphen
	"−", "-", // minus sign
	"‒", "-", // figure dash
	"⁃", "-", // hyphen bullet
)

// normText folds dashes and collapses runs of whitespace.
func normText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(dashFold.Replace(s), " "))
}

// styleKey canonicalizes a style name: dashes folded, the trailing "+"
// override marker stripped ("caption_centered+" -> "caption_centered"),
// lowercased, separators collapsed to single underscores.
func styleKey(s string) string {
	s = strings.TrimSpace(dashFold.Replace(s))
	s = overrideRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return strings.Trim(underscoreRe.ReplaceAllString(s, "_"), "_")
}

// fixPageRanges normalizes page-range phrasing: separated pairs
// ("pages 12 13", "pages 12-13" with any dash) and glued digit blocks
// ("pages 811" -> "pages 8-11", "pages 1213" -> "pages 12-13").
func fixPageRanges(text string) string {
	text = pageSepRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := pageSepRe.FindStringSubmatch(m)
		a, _ := strconv.Atoi(sub[1])
		b, _ := strconv.Atoi(sub[2])
		return fmt.Sprintf("pages %d-%d", a, b)
	})
	return pageGluedRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := pageGluedRe.FindStringSubmatch(m)
		block := sub[1]
		split := 1
		if len(block) == 4 {
			split = 2
		}
		a, _ := strconv.Atoi(block[:split])
		b, _ := strconv.Atoi(block[split:])
		return fmt.Sprintf("pages %d-%d", a, b)
	})
}

// uniqueOrdered keeps the first occurrence of each string under the
// normalized-text key, preserving order.
func uniqueOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		k := normText(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

// FromDoc returns the ordered, de-duplicated caption texts of one parsed
// document: para nodes styled "caption" always, "caption_centered" only
// when the text contains a digit unless cfg.AllCentered is set.
func FromDoc(doc any, cfg types.CaptionsConfig) []string {
	var out []string
	for _, node := range document.Nodes(doc) {
		if t, _ := node["type"].(string); t != "para" {
			continue
		}
		style, _ := node["style"].(string)
		key := styleKey(style)
		if key != "caption" && key != "caption_centered" {
			continue
		}

		runs, _ := node["runs"].([]any)
		var pieces []string
		for _, r := range runs {
			run, ok := r.(map[string]any)
			if !ok {
				continue
			}
			text, _ := run["text"].(string)
			pieces = append(pieces, text)
		}
		txt := normText(strings.Join(uniqueOrdered(pieces), ""))
		if txt == "" {
			continue
		}
		if key == "caption_centered" && !cfg.AllCentered && !digitRe.MatchString(txt) {
			continue
		}
		out = append(out, fixPageRanges(txt))
	}
	return uniqueOrdered(out)
}

// CollectDir walks baseDir recursively, reads each unit master file, and
// returns a map from file stem to its caption list. Unreadable or
// malformed files are reported on w and skipped.
func CollectDir(baseDir string, cfg types.CaptionsConfig, w io.Writer) (map[string][]string, error) {
	var files []string
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && unitFileRe.MatchString(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", baseDir, err)
	}
	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})

	results := make(map[string][]string, len(files))
	for _, path := range files {
		doc, err := document.Load(path)
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", path, err)
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		results[stem] = FromDoc(doc, cfg)
	}
	return results, nil
}

// WriteIndex serializes the file-stem to caption-list mapping as
// pretty-printed JSON.
func WriteIndex(path string, index map[string][]string) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling caption index: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

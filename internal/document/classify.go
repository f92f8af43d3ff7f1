// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"

	"github.com/pdiddy/lessonpour/pkg/types"
)

const (
	defaultHeaderStylePrefix  = "lesson_C-hd"
	defaultBodyStyleSubstring = "lesson_Body"
)

// Classifier decides whether a cell counts as lesson content by scanning
// its block list for marker styles.
type Classifier struct {
	includeAll bool
	headerPfx  string
	bodySubstr string
}

// NewClassifier builds a Classifier from cfg, filling in the default style
// markers where cfg leaves them empty.
func NewClassifier(cfg types.ClassifierConfig) Classifier {
	c := Classifier{
		includeAll: cfg.IncludeAll,
		headerPfx:  cfg.HeaderStylePrefix,
		bodySubstr: cfg.BodyStyleSubstring,
	}
	if c.headerPfx == "" {
		c.headerPfx = defaultHeaderStylePrefix
	}
	if c.bodySubstr == "" {
		c.bodySubstr = defaultBodyStyleSubstring
	}
	return c
}

// Match reports whether cell qualifies as lesson content. In include-all
// mode every cell qualifies. Otherwise a single header hit or a single
// body hit among the cell's blocks is sufficient; a cell without a block
// array never qualifies.
func (c Classifier) Match(cell map[string]any) bool {
	if c.includeAll {
		return true
	}
	blocks, ok := cell["blocks"].([]any)
	if !ok {
		return false
	}
	for _, b := range blocks {
		blk, ok := b.(map[string]any)
		if !ok {
			continue
		}
		if c.headerHit(blk) || c.bodyHit(blk) {
			return true
		}
	}
	return false
}

// headerHit: a level-2 or level-3 header whose style starts with the
// configured prefix. Trailing style variation ("lesson_C-hd-alt") still hits.
func (c Classifier) headerHit(blk map[string]any) bool {
	if t, _ := blk["type"].(string); t != "header" {
		return false
	}
	lvl, ok := blk["level"].(float64)
	if !ok || (lvl != 2 && lvl != 3) {
		return false
	}
	style, _ := blk["style"].(string)
	return strings.HasPrefix(style, c.headerPfx)
}

// bodyHit: a para whose style contains the configured substring,
// case-insensitively.
func (c Classifier) bodyHit(blk map[string]any) bool {
	if t, _ := blk["type"].(string); t != "para" {
		return false
	}
	style, _ := blk["style"].(string)
	return strings.Contains(strings.ToLower(style), strings.ToLower(c.bodySubstr))
}

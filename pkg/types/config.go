// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration and shared value types for lessonpour.
package types

// ClassifierConfig controls which cells count as lesson content.
type ClassifierConfig struct {
	// IncludeAll bypasses the classifier entirely: every cell qualifies.
	IncludeAll bool

	// HeaderStylePrefix is the style prefix a level-2/3 header block must
	// carry for a header hit. Empty means the default "lesson_C-hd".
	HeaderStylePrefix string

	// BodyStyleSubstring is the case-insensitive substring a para block's
	// style must contain for a body hit. Empty means the default "lesson_Body".
	BodyStyleSubstring string
}

// PourConfig carries the settings for one pour run.
type PourConfig struct {
	Classifier ClassifierConfig

	// PageSectionKeys names the per-page sub-arrays of a lesson object,
	// in page order. Empty means the defaults lesson0, lesson1, lesson2.
	PageSectionKeys []string

	// OutDir is the directory page files are written to, created if absent.
	OutDir string
}

// CaptionsConfig controls caption extraction across unit master files.
type CaptionsConfig struct {
	// AllCentered keeps caption_centered paragraphs even when they contain
	// no digits. By default only numeric centered captions are kept.
	AllCentered bool
}

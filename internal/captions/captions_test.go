// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package captions

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lessonpour/pkg/types"
)

func TestStyleKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"caption", "caption"},
		{"Caption Centered", "caption_centered"},
		{"caption_centered+", "caption_centered"},
		{"caption_centered +", "caption_centered"},
		{"caption–centered", "caption_centered"},
		{"  caption--centered  ", "caption_centered"},
		{"_caption__centered_", "caption_centered"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, styleKey(tt.in), "styleKey(%q)", tt.in)
	}
}

func TestFixPageRanges(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"see pages 12 13 for details", "see pages 12-13 for details"},
		{"see pages 12–13", "see pages 12-13"},
		{"see page 12-13", "see pages 12-13"},
		{"see pages 1213", "see pages 12-13"},
		{"see pages 811", "see pages 8-11"},
		{"see pages 2021 and later", "see pages 20-21 and later"},
		{"page 7 only", "page 7 only"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fixPageRanges(tt.in), "fixPageRanges(%q)", tt.in)
	}
}

func para(style string, texts ...string) map[string]any {
	runs := make([]any, len(texts))
	for i, txt := range texts {
		runs[i] = map[string]any{"text": txt}
	}
	return map[string]any{"type": "para", "style": style, "runs": runs}
}

func TestFromDoc(t *testing.T) {
	doc := map[string]any{
		"unit": []any{
			para("caption", "Read aloud, ", "pages 4 5"),
			para("caption", "Read aloud, pages 4 5"), // duplicate after normalization
			para("caption_centered", "Warm-up"),      // no digits, dropped by default
			para("caption_centered+", "Card 12"),
			para("body", "not a caption"),
			para("caption"), // empty text, dropped
		},
	}

	got := FromDoc(doc, types.CaptionsConfig{})
	assert.Equal(t, []string{"Read aloud, pages 4-5", "Card 12"}, got)

	got = FromDoc(doc, types.CaptionsConfig{AllCentered: true})
	assert.Equal(t, []string{"Read aloud, pages 4-5", "Warm-up", "Card 12"}, got)
}

func TestFromDoc_DedupesRunsWithinParagraph(t *testing.T) {
	doc := para("caption", "Sound Cards", "Sound Cards")
	got := FromDoc(doc, types.CaptionsConfig{})
	require.Len(t, got, 1)
	assert.Equal(t, "Sound Cards", got[0])
}

func TestCollectDir(t *testing.T) {
	tmp := t.TempDir()
	nested := filepath.Join(tmp, "units", "level3")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	unit := map[string]any{
		"Y49397_TG_L3_U3": []any{para("caption", "pages 8 9")},
	}
	data, err := json.Marshal(unit)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(nested, "Y49397_TG_L3_U3.json"), data, 0o644))

	// Non-matching and malformed files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(nested, "notes.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "Y1_TG_L1_U1.json"), []byte("{broken"), 0o644))

	var warnings bytes.Buffer
	index, err := CollectDir(tmp, types.CaptionsConfig{}, &warnings)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"Y49397_TG_L3_U3": {"pages 8-9"},
	}, index)
	assert.Contains(t, warnings.String(), "could not read")
}

func TestWriteIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captions.json")
	index := map[string][]string{"Y1_TG_L1_U1": {"pages 2-3"}}

	require.NoError(t, WriteIndex(path, index))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string][]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, index, got)
}

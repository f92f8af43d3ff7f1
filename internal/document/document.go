// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads textbook-generation JSON dumps and resolves their
// identifying keys. A dump has exactly one top-level key (the root key),
// which encodes the unit identity used to name output files.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// unitSuffixRe captures the short unit identifier (e.g. "L3_U3") out of a
// root key like "Y49397_TG_L3_U3".
var unitSuffixRe = regexp.MustCompile(`_TG_(L\d+_U\d+)`)

// Load reads the file at path and parses it as a JSON value.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return doc, nil
}

// RootKey returns the single top-level key of doc. A document whose root is
// not an object, or whose root object has any other number of keys, is a
// structural error.
func RootKey(doc any) (string, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return "", fmt.Errorf("expected exactly 1 root key, found 0 (document root is not an object)")
	}
	if len(obj) != 1 {
		return "", fmt.Errorf("expected exactly 1 root key, found %d", len(obj))
	}
	for k := range obj {
		return k, nil
	}
	return "", fmt.Errorf("expected exactly 1 root key, found 0")
}

// UnitSuffix derives the short unit identifier used to name output files.
// It tries the root key first, then the base name of the source file with
// its extension stripped, and finally falls back to the root key verbatim.
// Naming never fails; an unmatched key just produces odd file names.
func UnitSuffix(rootKey, filePath string) string {
	if m := unitSuffixRe.FindStringSubmatch(rootKey); m != nil {
		return m[1]
	}
	base := filepath.Base(filePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if m := unitSuffixRe.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return rootKey
}

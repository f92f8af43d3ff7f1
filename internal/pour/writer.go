// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pour

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WritePages serializes the three page buckets to
// {unitSuffix}_pg{1,2,3}.json under outDir, creating the directory if
// needed. Each file is a pretty-printed object mapping lesson key to its
// cell array, keys in sorted order. Existing files are overwritten.
func WritePages(outDir, unitSuffix string, buckets PageBuckets) ([PageCount]string, error) {
	var paths [PageCount]string

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return paths, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	for i, bucket := range buckets {
		name := fmt.Sprintf("%s_pg%d.json", unitSuffix, i+1)
		path := filepath.Join(outDir, name)

		data, err := json.MarshalIndent(bucket, "", "  ")
		if err != nil {
			return paths, fmt.Errorf("marshaling page %d: %w", i+1, err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths[i] = path
	}

	return paths, nil
}

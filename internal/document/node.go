// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import "sort"

// Nodes returns every object node nested anywhere inside v, depth-first.
// Arrays are walked element by element; object values are walked in sorted
// key order so traversal is deterministic. Input is assumed acyclic.
func Nodes(v any) []map[string]any {
	var out []map[string]any
	walk(v, &out)
	return out
}

func walk(v any, out *[]map[string]any) {
	switch n := v.(type) {
	case map[string]any:
		*out = append(*out, n)
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(n[k], out)
		}
	case []any:
		for _, item := range n {
			walk(item, out)
		}
	}
}

// Tables returns every nested table node inside v, depth-first. A table is
// an object with type "table" and a truthy rows field. Table nodes are not
// skipped over when recursing, so tables nested inside tables are also
// returned.
func Tables(v any) []map[string]any {
	var tables []map[string]any
	for _, n := range Nodes(v) {
		if isTable(n) {
			tables = append(tables, n)
		}
	}
	return tables
}

func isTable(n map[string]any) bool {
	if t, _ := n["type"].(string); t != "table" {
		return false
	}
	return truthy(n["rows"])
}

// truthy mirrors the source format's loose presence check on the rows
// field: absent, false, zero, and empty-string are falsy; an empty array
// is still truthy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}

// Cells returns the cell nodes of one table in row-major order. Rows that
// are not arrays are skipped, as are row entries that are not cell objects.
func Cells(table map[string]any) []map[string]any {
	rows, _ := table["rows"].([]any)
	var cells []map[string]any
	for _, row := range rows {
		entries, ok := row.([]any)
		if !ok {
			continue
		}
		for _, e := range entries {
			cell, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if t, _ := cell["type"].(string); t == "cell" {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

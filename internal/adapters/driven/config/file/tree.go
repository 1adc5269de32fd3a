package file

import (
	"sort"
	"strings"
)

// flatten turns nested TOML tables into dot-notation keys:
// {"merge": {"ignore_protection": true}} becomes {"merge.ignore_protection": true}.
func flatten(tree map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, tree, "")
	return out
}

func flattenInto(out, tree map[string]any, prefix string) {
	for key, val := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := val.(map[string]any); ok {
			flattenInto(out, table, key)
			continue
		}
		out[key] = val
	}
}

// nest is the inverse of flatten. A key whose path collides with a
// value already placed is written verbatim at the top level.
func nest(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	// Shallow keys first, so a leaf always wins over a table nested under it.
	sort.Slice(keys, func(i, j int) bool {
		di, dj := strings.Count(keys[i], "."), strings.Count(keys[j], ".")
		if di != dj {
			return di < dj
		}
		return keys[i] < keys[j]
	})

	root := make(map[string]any)
	for _, key := range keys {
		if !place(root, strings.Split(key, "."), flat[key]) {
			root[key] = flat[key]
		}
	}
	return root
}

func place(table map[string]any, path []string, val any) bool {
	for _, part := range path[:len(path)-1] {
		next, exists := table[part]
		if !exists {
			child := make(map[string]any)
			table[part] = child
			table = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return false
		}
		table = child
	}

	leaf := path[len(path)-1]
	if _, taken := table[leaf]; taken {
		return false
	}
	table[leaf] = val
	return true
}

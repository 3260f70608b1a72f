package search

// DedupeByName drops every item whose name was already seen. The first
// occurrence wins and order is preserved.
func DedupeByName[T any](items []T, name func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		n := name(it)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, it)
	}
	return out
}

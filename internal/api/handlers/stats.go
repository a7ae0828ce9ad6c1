package handlers

// countByField folds a scanned table into per-category counts.
func countByField[T any](items []T, field func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[field(item)]++
	}
	return counts
}

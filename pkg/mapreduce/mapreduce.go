// Package mapreduce aggregates per-title count maps into batch-level
// distributions for the run manifest.
package mapreduce

// Reduce merges a slice of count maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for key, count := range counts {
			finalResults[key] += count
		}
	}

	return finalResults
}

package mapreduce

import (
	"fmt"
	"sort"
)

// TopCounts returns the top N entries of a count map as "key:count"
// strings, highest count first. Ties break alphabetically so the output
// is stable.
func TopCounts(counts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	formatted := make([]string, limit)
	for i := 0; i < limit; i++ {
		formatted[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}

	return formatted
}

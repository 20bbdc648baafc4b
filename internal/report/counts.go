package report

import (
	"sort"

	"gopkg.in/guregu/null.v3"
)

// Count is one category and its number of rows.
type Count struct {
	Label string
	N     int
}

// ValueCounts counts non-missing values, most frequent first. Ties are
// broken alphabetically so output is stable.
func ValueCounts(vals []null.String) []Count {
	byLabel := make(map[string]int)
	for _, v := range vals {
		if v.Valid {
			byLabel[v.String]++
		}
	}
	counts := make([]Count, 0, len(byLabel))
	for label, n := range byLabel {
		counts = append(counts, Count{Label: label, N: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// OrderedCounts counts values in a fixed category order; categories with no
// rows are reported as zero and values outside order are ignored.
func OrderedCounts(vals []null.String, order []string) []Count {
	byLabel := make(map[string]int, len(order))
	for _, v := range vals {
		if v.Valid {
			byLabel[v.String]++
		}
	}
	counts := make([]Count, len(order))
	for i, label := range order {
		counts[i] = Count{Label: label, N: byLabel[label]}
	}
	return counts
}

// Head returns at most n leading counts.
func Head(counts []Count, n int) []Count {
	if n >= 0 && len(counts) > n {
		return counts[:n]
	}
	return counts
}

func total(counts []Count) int {
	t := 0
	for _, c := range counts {
		t += c.N
	}
	return t
}

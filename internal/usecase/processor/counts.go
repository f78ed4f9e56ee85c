package processor

import (
	"cmp"
	"slices"

	"macroDash/internal/domain"
)

// Count — значение и число его вхождений, с долей от общего.
type Count struct {
	Key   string       `json:"key"`
	Count int          `json:"count"`
	Share domain.Ratio `json:"share"`
}

// ranking сортирует счётчики по убыванию, при равенстве по ключу. Пустые ключи не учитываются.
func ranking(counts map[string]int, total int) []Count {
	out := make([]Count, 0, len(counts))
	for k, n := range counts {
		if k == "" {
			continue
		}
		out = append(out, Count{Key: k, Count: n, Share: domain.NewRatio(float64(n), float64(total)).Percent()})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// top возвращает первые n элементов; n <= 0 — все.
func top[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

func sumCounts(items []Count) int {
	n := 0
	for _, c := range items {
		n += c.Count
	}
	return n
}

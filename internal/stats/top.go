package stats

import (
	"sort"

	"github.com/verte-zerg/aprendemos/internal/model"
)

// HardestFacts returns the top N facts by lowest accuracy, then by the
// number of answers.
func HardestFacts(aggs []model.FactAggregate, n int) []model.FactAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.FactAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		ai, aj := Accuracy(items[i].Correct, items[i].Total), Accuracy(items[j].Correct, items[j].Total)
		if ai != aj {
			return ai < aj
		}
		if items[i].Total != items[j].Total {
			return items[i].Total > items[j].Total
		}
		if items[i].A != items[j].A {
			return items[i].A < items[j].A
		}
		return items[i].B < items[j].B
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

package stats

import (
	"sort"

	"github.com/verte-zerg/aprendemos/internal/model"
)

// WeakRules returns up to top rule labels with the lowest spelling accuracy.
// Rules without misses are never weak.
func WeakRules(aggs []model.RuleAggregate, top int) []string {
	candidates := make([]model.RuleAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Words > 0 && (agg.Completed < agg.Words || agg.WrongCount+agg.HalfCount > 0) {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := ruleAccuracy(candidates[i])
		aj := ruleAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Rule < candidates[j].Rule
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for i := 0; i < top; i++ {
		out = append(out, candidates[i].Rule)
	}
	return out
}

// ruleAccuracy ranks a rule by words spelled, then by penalty per word.
func ruleAccuracy(agg model.RuleAggregate) float64 {
	if agg.Words == 0 {
		return 1.0
	}
	penalty := (float64(agg.WrongCount) + 0.5*float64(agg.HalfCount)) / float64(agg.Words)
	return float64(agg.Completed)/float64(agg.Words) - penalty/100
}

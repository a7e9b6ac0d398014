package dictee

import (
	"math"

	"github.com/samber/lo"
)

const (
	basePoints       = 100
	perfectBonus     = 50
	wrongCost        = 15
	halfCost         = 5
	flashCost        = 30
	speedBonus       = 20
	meaningBonus     = 25
	meaningPenalty   = 10
	speedBonusWindow = 0.5
)

// ScoreParams is the outcome of one word as seen by the scorer.
type ScoreParams struct {
	Completed      bool
	WrongCount     int
	HalfCount      int
	UsedFlash      bool
	MeaningCorrect *bool
	TimeUsed       int // seconds
	TimePerWord    int // seconds
	Level          Level
}

// Points returns the non-negative score of a word.
func Points(p ScoreParams) int {
	total := 0.0
	if p.Completed {
		total = basePoints
		if p.WrongCount == 0 && p.HalfCount == 0 {
			total += perfectBonus
		}
		total -= float64(wrongCost * p.WrongCount)
		total -= float64(halfCost * p.HalfCount)
		if p.UsedFlash {
			total -= flashCost
		}
		if p.TimeUsed > 0 && float64(p.TimeUsed) < float64(p.TimePerWord)*speedBonusWindow {
			total += speedBonus
		}
	}
	if p.MeaningCorrect != nil {
		if *p.MeaningCorrect {
			total += meaningBonus
		} else {
			total -= meaningPenalty
		}
	}
	total = math.Round(total * p.Level.Config().Multiplier)
	if total < 0 {
		return 0
	}
	return int(total)
}

// ParamsFor derives scoring inputs from a round result.
func ParamsFor(r RoundResult, level Level) ScoreParams {
	return ScoreParams{
		Completed:      r.Completed,
		WrongCount:     r.WrongCount(),
		HalfCount:      r.HalfCount(),
		UsedFlash:      r.UsedFlash,
		MeaningCorrect: r.MeaningCorrect,
		TimeUsed:       r.TimeUsed,
		TimePerWord:    level.Config().TimePerWord,
		Level:          level,
	}
}

// TotalPoints sums the points of every result.
func TotalPoints(results []RoundResult) int {
	return lo.SumBy(results, func(r RoundResult) int { return r.Points })
}

// CorrectCount returns how many words were spelled to the end.
func CorrectCount(results []RoundResult) int {
	return lo.CountBy(results, func(r RoundResult) bool { return r.Completed })
}

// MeaningCount returns how many meaning quizzes were answered correctly.
func MeaningCount(results []RoundResult) int {
	return lo.CountBy(results, func(r RoundResult) bool {
		return r.MeaningCorrect != nil && *r.MeaningCorrect
	})
}

// Percentage returns the rounded share of words spelled, 0 for an empty list.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ResultMessage maps a session percentage to its encouragement.
func ResultMessage(percentage int) string {
	switch {
	case percentage >= 80:
		return "Excelente!"
	case percentage >= 50:
		return "Buen trabajo!"
	default:
		return "Sigue practicando!"
	}
}

// IsNewRecord reports whether total beats or ties the stored best. A zero
// total never counts.
func IsNewRecord(total, best int) bool {
	return total > 0 && total >= best
}

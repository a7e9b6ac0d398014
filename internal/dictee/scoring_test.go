package dictee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestPointsPerfectFastCorrectMeaning(t *testing.T) {
	got := Points(ScoreParams{
		Completed:      true,
		MeaningCorrect: boolPtr(true),
		TimeUsed:       5,
		TimePerWord:    40,
		Level:          LevelBeginner,
	})
	assert.Equal(t, 195, got)
}

func TestPointsFailedWrongMeaningClampsToZero(t *testing.T) {
	got := Points(ScoreParams{
		Completed:      false,
		WrongCount:     3,
		HalfCount:      1,
		MeaningCorrect: boolPtr(false),
		TimeUsed:       0,
		TimePerWord:    24,
		Level:          LevelIntermediate,
	})
	assert.Equal(t, 0, got)
}

func TestPointsNearMissLosesPerfectBonus(t *testing.T) {
	got := Points(ScoreParams{Completed: true, HalfCount: 1, TimePerWord: 40, Level: LevelBeginner})
	assert.Equal(t, 95, got)
}

func TestPointsPenalties(t *testing.T) {
	got := Points(ScoreParams{
		Completed:   true,
		WrongCount:  2,
		HalfCount:   2,
		UsedFlash:   true,
		TimeUsed:    30,
		TimePerWord: 40,
		Level:       LevelBeginner,
	})
	assert.Equal(t, 100-30-10-30, got)
}

func TestPointsSpeedBonusWindow(t *testing.T) {
	base := ScoreParams{Completed: true, TimePerWord: 40, Level: LevelBeginner}

	p := base
	p.TimeUsed = 19
	assert.Equal(t, 170, Points(p))

	p.TimeUsed = 20
	assert.Equal(t, 150, Points(p))

	p.TimeUsed = 0
	assert.Equal(t, 150, Points(p))
}

func TestPointsLevelMultiplierRounds(t *testing.T) {
	got := Points(ScoreParams{Completed: true, HalfCount: 1, TimePerWord: 24, Level: LevelIntermediate})
	assert.Equal(t, 143, got)

	got = Points(ScoreParams{Completed: true, WrongCount: 1, MeaningCorrect: boolPtr(true), TimePerWord: 16, Level: LevelExpert})
	assert.Equal(t, 220, got)
}

func TestPointsMeaningIndependentOfCompletion(t *testing.T) {
	got := Points(ScoreParams{Completed: false, MeaningCorrect: boolPtr(true), Level: LevelExpert})
	assert.Equal(t, 50, got)
}

func TestPointsNeverNegative(t *testing.T) {
	for wrong := 0; wrong <= 10; wrong++ {
		for half := 0; half <= 12; half++ {
			for _, lvl := range Levels() {
				for _, meaning := range []*bool{nil, boolPtr(true), boolPtr(false)} {
					p := ScoreParams{
						Completed:      true,
						WrongCount:     wrong,
						HalfCount:      half,
						UsedFlash:      true,
						MeaningCorrect: meaning,
						TimePerWord:    lvl.Config().TimePerWord,
						Level:          lvl,
					}
					assert.GreaterOrEqual(t, Points(p), 0)
					p.Completed = false
					assert.GreaterOrEqual(t, Points(p), 0)
				}
			}
		}
	}
}

func TestPointsUnknownLevelUsesBeginner(t *testing.T) {
	got := Points(ScoreParams{Completed: true, TimePerWord: 40, Level: Level(9)})
	assert.Equal(t, 150, got)
}

func TestAggregates(t *testing.T) {
	results := []RoundResult{
		{Completed: true, Points: 150, MeaningCorrect: boolPtr(true)},
		{Completed: false, Points: 0, MeaningCorrect: boolPtr(false)},
		{Completed: true, Points: 95},
	}
	assert.Equal(t, 245, TotalPoints(results))
	assert.Equal(t, 2, CorrectCount(results))
	assert.Equal(t, 1, MeaningCount(results))
	assert.Zero(t, TotalPoints(nil))
}

func TestResultMessageBuckets(t *testing.T) {
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Zero(t, Percentage(0, 0))
	assert.Equal(t, "Excelente!", ResultMessage(80))
	assert.Equal(t, "Buen trabajo!", ResultMessage(50))
	assert.Equal(t, "Sigue practicando!", ResultMessage(49))
}

func TestIsNewRecord(t *testing.T) {
	assert.True(t, IsNewRecord(120, 120))
	assert.True(t, IsNewRecord(121, 120))
	assert.False(t, IsNewRecord(119, 120))
	assert.False(t, IsNewRecord(0, 0))
}

package scoring

import "fmt"

// RuleScore computes the deterministic percentage score:
// 100 * correct / total. Missing answers count as wrong, never as an
// error. An empty question list is an error (nothing to score).
func RuleScore(questions []Question, answers AnswerSet) (float64, error) {
	if len(questions) == 0 {
		return 0, fmt.Errorf("%w: empty question list", ErrInvalidInput)
	}

	correct := 0
	for _, q := range questions {
		if err := validateQuestion(q); err != nil {
			return 0, err
		}
		selected, err := selectedIndex(q, answers)
		if err != nil {
			return 0, err
		}
		if selected == q.CorrectIndex {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100, nil
}

// 规则评级阈值（边界取闭区间）
const (
	strongScoreMin   = 80.0
	strongDurMax     = 300.0
	moderateScoreMin = 50.0
	moderateDurMax   = 600.0
)

// ClassifyStrength maps (score, duration) to a strength label with
// fixed thresholds, evaluated in order:
//
//	score >= 80 && duration <= 300 -> Strong
//	score >= 50 && duration <= 600 -> Moderate
//	otherwise                      -> Weak
//
// Boundaries are inclusive: (80,300) is Strong, (50,600) is Moderate.
func ClassifyStrength(score, durationSeconds float64) Strength {
	switch {
	case score >= strongScoreMin && durationSeconds <= strongDurMax:
		return StrengthStrong
	case score >= moderateScoreMin && durationSeconds <= moderateDurMax:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

package service

import (
	"critical_thinking_backend/internal/scoring"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackBands(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		mlScore float64
		want    string
	}{
		{"both high", 90, 85, "Excellent critical thinking skills!"},
		{"rule high ml low", 90, 60, "Good analytical abilities with room for improvement"},
		{"middle band", 70, 90, "Good analytical abilities with room for improvement"},
		{"exactly 80 falls to middle", 80, 80, "Good analytical abilities with room for improvement"},
		{"low band", 40, 50, "Keep practicing - focus on evaluating arguments systematically"},
		{"exactly 60 falls to low", 60, 95, "Keep practicing - focus on evaluating arguments systematically"},
		{"zero", 0, 0, "Keep practicing - focus on evaluating arguments systematically"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &scoring.EvaluationResult{Score: tt.score, MLScore: tt.mlScore}
			assert.Equal(t, tt.want, feedbackFor(result))
		})
	}
}

func TestStripAnswersHidesCorrectIndex(t *testing.T) {
	questions := []scoring.Question{
		{
			ID:           1,
			Text:         "下列哪项属于逻辑谬误？",
			Options:      []string{"诉诸权威", "归纳推理", "演绎推理", "类比论证"},
			CorrectIndex: 0,
			Explanation:  "诉诸权威不构成有效论证",
		},
	}

	student := stripAnswers(questions)

	assert.Len(t, student, 1)
	assert.Equal(t, 1, student[0].ID)
	assert.Equal(t, questions[0].Text, student[0].Text)
	assert.Equal(t, questions[0].Options, student[0].Options)
}

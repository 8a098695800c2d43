package scoring

import (
	"errors"
	"testing"
)

func sampleQuestions() []Question {
	return []Question{
		{ID: 1, Text: "What is AI?", Options: []string{"Tech", "Food"}, CorrectIndex: 0, Explanation: "AI means Artificial Intelligence."},
		{ID: 2, Text: "What is 2+2?", Options: []string{"3", "4"}, CorrectIndex: 1, Explanation: "Basic math."},
	}
}

func TestRuleScore_AllCorrect(t *testing.T) {
	score, err := RuleScore(sampleQuestions(), AnswerSet{1: 0, 2: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 100.0 {
		t.Errorf("expected 100.0, got %f", score)
	}
}

func TestRuleScore_AllWrongOrMissing(t *testing.T) {
	cases := []struct {
		name    string
		answers AnswerSet
	}{
		{"all wrong", AnswerSet{1: 1, 2: 0}},
		{"all missing", AnswerSet{}},
		{"nil answers", nil},
		{"unanswered sentinel", AnswerSet{1: Unanswered, 2: Unanswered}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := RuleScore(sampleQuestions(), tc.answers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if score != 0.0 {
				t.Errorf("expected 0.0, got %f", score)
			}
		})
	}
}

func TestRuleScore_HalfCorrect(t *testing.T) {
	// 两题答对一题 -> 50
	score, err := RuleScore(sampleQuestions(), AnswerSet{1: 0, 2: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 50.0 {
		t.Errorf("expected 50.0, got %f", score)
	}
}

func TestRuleScore_EmptyQuestions(t *testing.T) {
	_, err := RuleScore(nil, AnswerSet{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRuleScore_AnswerIndexOutOfRange(t *testing.T) {
	_, err := RuleScore(sampleQuestions(), AnswerSet{1: 5})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClassifyStrength(t *testing.T) {
	cases := []struct {
		score    float64
		duration float64
		want     Strength
	}{
		{85, 200, StrengthStrong},
		{80, 300, StrengthStrong}, // 边界取闭区间
		{100, 0, StrengthStrong},
		{85, 400, StrengthModerate}, // 分高但超时，降为 Moderate
		{80, 301, StrengthModerate},
		{50, 600, StrengthModerate},
		{79.9, 100, StrengthModerate},
		{50, 601, StrengthWeak},
		{49.9, 100, StrengthWeak},
		{30, 900, StrengthWeak},
		{0, 0, StrengthWeak},
	}
	for _, tc := range cases {
		got := ClassifyStrength(tc.score, tc.duration)
		if got != tc.want {
			t.Errorf("ClassifyStrength(%v, %v) = %s, want %s", tc.score, tc.duration, got, tc.want)
		}
		// 纯函数：重复调用结果一致
		if again := ClassifyStrength(tc.score, tc.duration); again != got {
			t.Errorf("ClassifyStrength(%v, %v) not deterministic: %s then %s", tc.score, tc.duration, got, again)
		}
	}
}

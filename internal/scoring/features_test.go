package scoring

import (
	"errors"
	"testing"
)

func TestExtract_VectorPerQuestion(t *testing.T) {
	questions := sampleQuestions()
	features, err := Extract(questions, AnswerSet{1: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(features) != len(questions) {
		t.Fatalf("expected %d vectors, got %d", len(questions), len(features))
	}
	for i, f := range features {
		if len(f.Row()) != FeatureDim {
			t.Errorf("vector %d has %d features, want %d", i, len(f.Row()), FeatureDim)
		}
	}

	first := features[0]
	if first.TextLength != float64(len("What is AI?")) {
		t.Errorf("unexpected text length %v", first.TextLength)
	}
	if first.IsCorrect != 1 {
		t.Errorf("question 1 answered correctly, IsCorrect = %v", first.IsCorrect)
	}
	if first.OptionCount != 2 {
		t.Errorf("unexpected option count %v", first.OptionCount)
	}
	if first.ExplanationLength != float64(len("AI means Artificial Intelligence.")) {
		t.Errorf("unexpected explanation length %v", first.ExplanationLength)
	}
	if first.Position != 0 {
		t.Errorf("unexpected position %v", first.Position)
	}

	// 未作答按 -1 处理，必判错
	second := features[1]
	if second.IsCorrect != 0 {
		t.Errorf("unanswered question should be incorrect, IsCorrect = %v", second.IsCorrect)
	}
	if second.Position != 1 {
		t.Errorf("unexpected position %v", second.Position)
	}
}

func TestExtract_PositionFollowsListOrder(t *testing.T) {
	// Position 按遍历顺序重新计算，与题目 ID 无关
	questions := []Question{
		{ID: 42, Text: "q", Options: []string{"a", "b"}, CorrectIndex: 0},
		{ID: 7, Text: "q", Options: []string{"a", "b"}, CorrectIndex: 0},
	}
	features, err := Extract(questions, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if features[0].Position != 0 || features[1].Position != 1 {
		t.Errorf("positions = %v, %v; want 0, 1", features[0].Position, features[1].Position)
	}
}

func TestExtract_MissingExplanation(t *testing.T) {
	questions := []Question{
		{ID: 1, Text: "q", Options: []string{"a", "b"}, CorrectIndex: 0},
	}
	features, err := Extract(questions, AnswerSet{1: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if features[0].ExplanationLength != 0 {
		t.Errorf("missing explanation should have length 0, got %v", features[0].ExplanationLength)
	}
}

func TestExtract_InvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		questions []Question
		answers   AnswerSet
	}{
		{"empty questions", nil, AnswerSet{}},
		{"single option", []Question{{ID: 1, Text: "q", Options: []string{"a"}, CorrectIndex: 0}}, nil},
		{"correct index out of range", []Question{{ID: 1, Text: "q", Options: []string{"a", "b"}, CorrectIndex: 2}}, nil},
		{"answer index out of range", sampleQuestions(), AnswerSet{1: 9}},
		{"negative answer index", sampleQuestions(), AnswerSet{1: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Extract(tc.questions, tc.answers); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

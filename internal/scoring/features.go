package scoring

import "fmt"

// Extract turns a (questions, answers) pair into one FeatureVector per
// question, in question-list order. An unanswered question is checked
// against the Unanswered sentinel, which never matches a correct index.
// No side effects.
func Extract(questions []Question, answers AnswerSet) ([]FeatureVector, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrInvalidInput)
	}

	features := make([]FeatureVector, 0, len(questions))
	for pos, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		selected, err := selectedIndex(q, answers)
		if err != nil {
			return nil, err
		}

		correct := 0.0
		if selected == q.CorrectIndex {
			correct = 1.0
		}

		features = append(features, FeatureVector{
			TextLength:        float64(len(q.Text)),
			IsCorrect:         correct,
			OptionCount:       float64(len(q.Options)),
			ExplanationLength: float64(len(q.Explanation)),
			Position:          float64(pos),
		})
	}
	return features, nil
}

// Rows flattens feature vectors into numeric rows for model input.
func Rows(features []FeatureVector) [][]float64 {
	rows := make([][]float64, len(features))
	for i, f := range features {
		rows[i] = f.Row()
	}
	return rows
}

// ValidateQuestions checks the structural contract of a question list:
// non-empty, at least two options each, correct index in range. Used by
// collaborators at generation time so malformed questions never reach
// the scoring path.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: empty question list", ErrInvalidInput)
	}
	for _, q := range questions {
		if err := validateQuestion(q); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(q Question) error {
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: question %d has %d options, need at least 2", ErrInvalidInput, q.ID, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: question %d correct_index %d out of range [0,%d)", ErrInvalidInput, q.ID, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// selectedIndex 取用户所选下标；未作答返回 Unanswered，越界视为非法输入
func selectedIndex(q Question, answers AnswerSet) (int, error) {
	selected, ok := answers[q.ID]
	if !ok {
		return Unanswered, nil
	}
	if selected != Unanswered && (selected < 0 || selected >= len(q.Options)) {
		return 0, fmt.Errorf("%w: question %d answer index %d out of range [0,%d)", ErrInvalidInput, q.ID, selected, len(q.Options))
	}
	return selected, nil
}

package scoring

// Strength 三档能力评级
type Strength string

const (
	StrengthStrong   Strength = "Strong"
	StrengthModerate Strength = "Moderate"
	StrengthWeak     Strength = "Weak"
)

// Question 单道选择题，生成后不可变
type Question struct {
	ID           int      `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// AnswerSet 题目ID -> 所选选项下标。允许部分作答，未作答按 Unanswered 处理
type AnswerSet map[int]int

// Unanswered is the sentinel index for a question the user skipped.
// It never equals a valid correct_index, so it always counts as wrong.
const Unanswered = -1

// FeatureDim is the fixed width of a per-question feature vector.
const FeatureDim = 5

// FeatureVector 每道题固定顺序的五维数值特征
type FeatureVector struct {
	TextLength        float64 `json:"textLength"`
	IsCorrect         float64 `json:"isCorrect"` // 0 or 1
	OptionCount       float64 `json:"optionCount"`
	ExplanationLength float64 `json:"explanationLength"`
	Position          float64 `json:"position"` // 0-based，按打分时的遍历顺序重新计算
}

// Row returns the vector in its canonical column order.
func (f FeatureVector) Row() []float64 {
	return []float64{f.TextLength, f.IsCorrect, f.OptionCount, f.ExplanationLength, f.Position}
}

// EvaluationResult 一次测试的完整评估结果
type EvaluationResult struct {
	Score        float64  `json:"score"` // 规则得分 [0,100]
	RuleStrength Strength `json:"ruleStrength"`
	MLStrength   Strength `json:"mlStrength"`
	MLScore      float64  `json:"mlScore"`
}

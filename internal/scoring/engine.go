package scoring

// Engine 评估编排：规则得分、特征抽取、ML 得分、规则评级、ML 评级。
// 规则与 ML 两套结果并列返回，互不遮蔽；评级特征固定用规则得分，
// 即使得分回归模型漂移，评级输入也保持稳定
type Engine struct {
	scoreModel    *TrainableModel
	strengthModel *TrainableModel
}

func NewEngine(scoreModel, strengthModel *TrainableModel) *Engine {
	return &Engine{
		scoreModel:    scoreModel,
		strengthModel: strengthModel,
	}
}

// Evaluate runs one full evaluation. Steps are ordered for result
// consistency: rule score first, then features, ML score, rule strength,
// ML strength over the (rule score, duration) pair.
func (e *Engine) Evaluate(questions []Question, answers AnswerSet, durationSeconds float64) (*EvaluationResult, error) {
	ruleScore, err := RuleScore(questions, answers)
	if err != nil {
		return nil, err
	}

	features, err := Extract(questions, answers)
	if err != nil {
		return nil, err
	}

	mlScore, err := e.scoreModel.PredictScore(Rows(features))
	if err != nil {
		return nil, err
	}

	ruleStrength := ClassifyStrength(ruleScore, durationSeconds)

	mlStrength, err := e.strengthModel.PredictStrength(ruleScore, durationSeconds)
	if err != nil {
		return nil, err
	}

	return &EvaluationResult{
		Score:        ruleScore,
		RuleStrength: ruleStrength,
		MLStrength:   mlStrength,
		MLScore:      mlScore,
	}, nil
}

package scoring

import (
	"errors"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	scoreModel := NewScoreModel(dir)
	strengthModel := NewStrengthModel(dir)
	if err := scoreModel.LoadOrBootstrap(); err != nil {
		t.Fatalf("score model bootstrap: %v", err)
	}
	if err := strengthModel.LoadOrBootstrap(); err != nil {
		t.Fatalf("strength model bootstrap: %v", err)
	}
	return NewEngine(scoreModel, strengthModel)
}

func TestEngine_Evaluate(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Evaluate(sampleQuestions(), AnswerSet{1: 0, 2: 0}, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != 50.0 {
		t.Errorf("rule score = %f, want 50.0", result.Score)
	}
	// (50, 200) 命中第二档
	if result.RuleStrength != StrengthModerate {
		t.Errorf("rule strength = %s, want Moderate", result.RuleStrength)
	}
	if result.MLScore < 0 || result.MLScore > 100 {
		t.Errorf("ml score %f out of [0,100]", result.MLScore)
	}
	switch result.MLStrength {
	case StrengthStrong, StrengthModerate, StrengthWeak:
	default:
		t.Errorf("ml strength %q is not a known label", result.MLStrength)
	}
}

func TestEngine_EvaluateDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	questions := sampleQuestions()
	answers := AnswerSet{1: 0, 2: 1}

	first, err := engine.Evaluate(questions, answers, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Evaluate(questions, answers, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *first != *second {
		t.Errorf("evaluation not deterministic: %+v vs %+v", first, second)
	}

	// 全对且快：规则评级必为 Strong
	if first.Score != 100.0 {
		t.Errorf("rule score = %f, want 100.0", first.Score)
	}
	if first.RuleStrength != StrengthStrong {
		t.Errorf("rule strength = %s, want Strong", first.RuleStrength)
	}
}

func TestEngine_EvaluateEmptyQuestions(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Evaluate(nil, AnswerSet{}, 100); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEngine_ScoreIndependentOfDuration(t *testing.T) {
	engine := newTestEngine(t)
	questions := sampleQuestions()
	answers := AnswerSet{1: 0}

	fast, err := engine.Evaluate(questions, answers, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slow, err := engine.Evaluate(questions, answers, 1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fast.Score != slow.Score {
		t.Errorf("score must not depend on duration: %f vs %f", fast.Score, slow.Score)
	}
	if fast.MLScore != slow.MLScore {
		t.Errorf("ml score must not depend on duration: %f vs %f", fast.MLScore, slow.MLScore)
	}
	// 评级则依赖用时
	if fast.RuleStrength == slow.RuleStrength {
		t.Logf("rule strength unchanged (%s); thresholds may coincide", fast.RuleStrength)
	}
}

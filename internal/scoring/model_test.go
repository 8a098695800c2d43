package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correctRows() [][]float64 {
	return [][]float64{
		{100, 1, 4, 60, 0},
		{120, 1, 4, 80, 1},
	}
}

func incorrectRows() [][]float64 {
	return [][]float64{
		{100, 0, 4, 60, 0},
		{120, 0, 4, 80, 1},
	}
}

func TestScoreModel_BootstrapAndPredict(t *testing.T) {
	dir := t.TempDir()
	m := NewScoreModel(dir)
	require.NoError(t, m.LoadOrBootstrap())

	// 自举后 bundle 已落盘
	_, err := os.Stat(filepath.Join(dir, "score_model.json"))
	require.NoError(t, err)

	high, err := m.PredictScore(correctRows())
	require.NoError(t, err)
	low, err := m.PredictScore(incorrectRows())
	require.NoError(t, err)

	assert.Greater(t, high, low, "correct answers should score above incorrect ones")
	assert.GreaterOrEqual(t, high, 0.0)
	assert.LessOrEqual(t, high, 100.0)
	assert.GreaterOrEqual(t, low, 0.0)
	assert.LessOrEqual(t, low, 100.0)
}

func TestTrainableModel_PredictBeforeLoad(t *testing.T) {
	m := NewScoreModel(t.TempDir())
	_, err := m.PredictScore(correctRows())
	assert.ErrorIs(t, err, ErrModelUnavailable)

	s := NewStrengthModel(t.TempDir())
	_, err = s.PredictStrength(80, 200)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestTrainableModel_DimensionMismatch(t *testing.T) {
	m := NewScoreModel(t.TempDir())
	require.NoError(t, m.LoadOrBootstrap())

	_, err := m.PredictScore([][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrPrediction)
}

func TestTrainableModel_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	m1 := NewScoreModel(dir)
	require.NoError(t, m1.LoadOrBootstrap())
	before, err := m1.PredictScore(correctRows())
	require.NoError(t, err)

	// 模拟进程重启：新实例从持久化 bundle 加载
	m2 := NewScoreModel(dir)
	require.NoError(t, m2.LoadOrBootstrap())
	after, err := m2.PredictScore(correctRows())
	require.NoError(t, err)

	assert.Equal(t, before, after, "persisted model must reproduce pre-restart predictions")
}

func TestStrengthModel_BootstrapClassifiesExtremes(t *testing.T) {
	m := NewStrengthModel(t.TempDir())
	require.NoError(t, m.LoadOrBootstrap())

	strong, err := m.PredictStrength(98, 90)
	require.NoError(t, err)
	assert.Equal(t, StrengthStrong, strong)

	weak, err := m.PredictStrength(12, 1150)
	require.NoError(t, err)
	assert.Equal(t, StrengthWeak, weak)

	// 同一输入重复预测结果一致
	again, err := m.PredictStrength(98, 90)
	require.NoError(t, err)
	assert.Equal(t, strong, again)
}

func TestTrainableModel_RetrainReplacesAndPersists(t *testing.T) {
	dir := t.TempDir()
	m := NewStrengthModel(dir)
	require.NoError(t, m.LoadOrBootstrap())

	var mirrored string
	m.SetPersistHook(func(path string) { mirrored = path })

	// 反转标注重训：原先 Strong 的区域标成 Weak
	x := [][]float64{
		{95, 100}, {90, 150}, {85, 200},
		{20, 900}, {15, 1000}, {10, 1100},
	}
	labels := []string{"Weak", "Weak", "Weak", "Strong", "Strong", "Strong"}
	require.NoError(t, m.RetrainClassifier(x, labels))
	assert.Equal(t, m.Path(), mirrored, "persist hook should fire after swap")

	got, err := m.PredictStrength(95, 100)
	require.NoError(t, err)
	assert.Equal(t, StrengthWeak, got)

	// 原子替换：不留临时文件
	_, err = os.Stat(m.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))

	// 重启后加载重训结果
	m2 := NewStrengthModel(dir)
	require.NoError(t, m2.LoadOrBootstrap())
	reloaded, err := m2.PredictStrength(95, 100)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestTrainableModel_RetrainValidation(t *testing.T) {
	m := NewStrengthModel(t.TempDir())
	require.NoError(t, m.LoadOrBootstrap())

	err := m.RetrainClassifier([][]float64{{1, 2, 3}}, []string{"Strong"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = m.RetrainClassifier([][]float64{{80, 200}}, []string{"Strong", "Weak"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = m.RetrainClassifier(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTrainableModel_RetrainBeforeLoad(t *testing.T) {
	m := NewScoreModel(t.TempDir())
	err := m.RetrainRegressor(correctRows(), []float64{90, 95})
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

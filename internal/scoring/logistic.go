package scoring

import (
	"fmt"
	"math"
)

// softmaxClassifier 多分类逻辑回归，批量梯度下降训练。
// 权重零初始化，训练完全确定，同一批数据重训得到同一组参数
type softmaxClassifier struct {
	// Weights [类别数][dim+1]，每行最后一项为截距
	Weights   [][]float64 `json:"weights"`
	Epochs    int         `json:"epochs"`
	LearnRate float64     `json:"learnRate"`
}

func newSoftmaxClassifier() *softmaxClassifier {
	return &softmaxClassifier{Epochs: 2000, LearnRate: 0.1}
}

// Fit trains on encoded class labels in [0, numClasses).
func (c *softmaxClassifier) Fit(x [][]float64, y []int, numClasses int) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("%w: classifier needs equal, non-zero sample and label counts (got %d, %d)", ErrInvalidInput, len(x), len(y))
	}
	if numClasses < 2 {
		return fmt.Errorf("%w: need at least 2 classes, got %d", ErrInvalidInput, numClasses)
	}
	dim := len(x[0]) + 1

	aug := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != dim-1 {
			return fmt.Errorf("%w: ragged training data at row %d", ErrInvalidInput, i)
		}
		if y[i] < 0 || y[i] >= numClasses {
			return fmt.Errorf("%w: label code %d out of range [0,%d) at row %d", ErrInvalidInput, y[i], numClasses, i)
		}
		aug[i] = append(append(make([]float64, 0, dim), row...), 1)
	}

	w := make([][]float64, numClasses)
	for k := range w {
		w[k] = make([]float64, dim)
	}

	n := float64(len(aug))
	grad := make([][]float64, numClasses)
	for k := range grad {
		grad[k] = make([]float64, dim)
	}

	for epoch := 0; epoch < c.Epochs; epoch++ {
		for k := range grad {
			for j := range grad[k] {
				grad[k][j] = 0
			}
		}
		for i, row := range aug {
			probs := softmax(logits(w, row))
			for k := range w {
				target := 0.0
				if y[i] == k {
					target = 1.0
				}
				diff := probs[k] - target
				for j, v := range row {
					grad[k][j] += diff * v
				}
			}
		}
		for k := range w {
			for j := range w[k] {
				w[k][j] -= c.LearnRate * grad[k][j] / n
			}
		}
	}

	c.Weights = w
	return nil
}

// Predict returns the most probable class code for one feature row.
func (c *softmaxClassifier) Predict(row []float64) (int, error) {
	if len(c.Weights) == 0 {
		return 0, ErrModelUnavailable
	}
	if len(row) != len(c.Weights[0])-1 {
		return 0, fmt.Errorf("%w: feature dimension %d does not match model dimension %d", ErrPrediction, len(row), len(c.Weights[0])-1)
	}
	aug := append(append(make([]float64, 0, len(row)+1), row...), 1)
	probs := softmax(logits(c.Weights, aug))

	best := 0
	for k, p := range probs {
		if p > probs[best] {
			best = k
		}
	}
	return best, nil
}

func logits(w [][]float64, augRow []float64) []float64 {
	z := make([]float64, len(w))
	for k, wk := range w {
		for j, v := range augRow {
			z[k] += wk[j] * v
		}
	}
	return z
}

func softmax(z []float64) []float64 {
	max := z[0]
	for _, v := range z[1:] {
		if v > max {
			max = v
		}
	}
	var sum float64
	out := make([]float64, len(z))
	for k, v := range z {
		out[k] = math.Exp(v - max)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
	return out
}

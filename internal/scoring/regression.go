package scoring

import (
	"fmt"
	"math"
)

// ridgeRegression 岭回归，正规方程求解。特征维度小（5 维），直接高斯消元即可
type ridgeRegression struct {
	// Weights 长度 dim+1，最后一项为截距
	Weights []float64 `json:"weights"`
	Lambda  float64   `json:"lambda"`
}

func newRidgeRegression(lambda float64) *ridgeRegression {
	return &ridgeRegression{Lambda: lambda}
}

// Fit solves (X'X + lambda*I) w = X'y with an appended bias column.
// The bias term is not penalized.
func (r *ridgeRegression) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("%w: regression needs equal, non-zero sample and target counts (got %d, %d)", ErrInvalidInput, len(x), len(y))
	}
	dim := len(x[0]) + 1 // 含截距

	// 增广样本
	aug := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != dim-1 {
			return fmt.Errorf("%w: ragged training data at row %d", ErrInvalidInput, i)
		}
		aug[i] = append(append(make([]float64, 0, dim), row...), 1)
	}

	// 构造 X'X + lambda*I 与 X'y
	a := make([][]float64, dim)
	b := make([]float64, dim)
	for j := range a {
		a[j] = make([]float64, dim)
	}
	for i, row := range aug {
		for j := 0; j < dim; j++ {
			b[j] += row[j] * y[i]
			for k := 0; k < dim; k++ {
				a[j][k] += row[j] * row[k]
			}
		}
	}
	for j := 0; j < dim-1; j++ {
		a[j][j] += r.Lambda
	}

	w, err := solveLinearSystem(a, b)
	if err != nil {
		return err
	}
	r.Weights = w
	return nil
}

// Predict returns the regression output for one feature row.
func (r *ridgeRegression) Predict(row []float64) (float64, error) {
	if len(r.Weights) == 0 {
		return 0, ErrModelUnavailable
	}
	if len(row) != len(r.Weights)-1 {
		return 0, fmt.Errorf("%w: feature dimension %d does not match model dimension %d", ErrPrediction, len(row), len(r.Weights)-1)
	}
	out := r.Weights[len(r.Weights)-1]
	for j, v := range row {
		out += r.Weights[j] * v
	}
	return out, nil
}

// solveLinearSystem 高斯消元 + 部分主元
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("%w: singular normal equations", ErrInvalidInput)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			b[row] -= f * b[col]
		}
	}

	w := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * w[k]
		}
		w[row] = sum / a[row][row]
	}
	return w, nil
}

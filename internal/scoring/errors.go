package scoring

import "errors"

var (
	// ErrInvalidInput 空题目列表、选项下标越界、特征维度不合法等入参错误
	ErrInvalidInput = errors.New("invalid scoring input")
	// ErrModelUnavailable 模型未加载（或自举训练失败）
	ErrModelUnavailable = errors.New("scoring model unavailable")
	// ErrPrediction 特征维度与已训练模型不匹配等推理错误
	ErrPrediction = errors.New("prediction failed")
)

package model

import "encoding/json"

// 测试状态
const (
	TestStatusGenerated = "generated" // 题目已生成，等待作答
	TestStatusEvaluated = "evaluated" // 已提交并完成评估
)

// Test 一次批判性思维测试：题目快照、作答记录与评估结果。
// Questions/Answers 以 JSON 快照落库，题目生成后不可变
// swagger:model Test
type Test struct {
	BaseModel
	UserID       uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Questions    json.RawMessage `gorm:"type:json" json:"questions,omitempty"`
	Answers      json.RawMessage `gorm:"type:json" json:"answers,omitempty"`
	DurationSec  float64         `gorm:"default:0" json:"durationSec"` // 提交时上报的作答用时（秒）
	RuleScore    float64         `json:"ruleScore"`
	MLScore      float64         `gorm:"column:ml_score" json:"mlScore"`
	RuleStrength string          `gorm:"size:20" json:"ruleStrength"` // Strong / Moderate / Weak
	MLStrength   string          `gorm:"column:ml_strength;size:20" json:"mlStrength"`
	Feedback     string          `gorm:"type:text" json:"feedback"`
	Status       string          `gorm:"size:20;default:'generated'" json:"status"`
}

func (Test) TableName() string {
	return "tests"
}

// RetrainSample 管理员重训分类模型的已标注样本
type RetrainSample struct {
	Score       float64 `json:"score" binding:"required"`
	DurationSec float64 `json:"durationSec" binding:"required"`
	Strength    string  `json:"strength" binding:"required"` // Strong / Moderate / Weak
}

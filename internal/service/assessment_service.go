package service

import (
	"context"
	"critical_thinking_backend/internal/config"
	"critical_thinking_backend/internal/model"
	"critical_thinking_backend/internal/repository"
	"critical_thinking_backend/internal/scoring"
	"critical_thinking_backend/internal/util"
	"critical_thinking_backend/pkg/logger"
	"critical_thinking_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	questionCacheKeyPrefix = "test:questions:"
	questionCacheTTL       = 24 * time.Hour

	// defaultDurationSec 客户端没有上报用时的兜底值。评级依赖用时，
	// 缺省按 10 分钟算而不是直接丢弃
	defaultDurationSec = 600
)

type AssessmentService struct {
	TestRepo *repository.TestRepository
	AI       *AIService
	Models   *ModelService
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewAssessmentService(testRepo *repository.TestRepository, ai *AIService, models *ModelService, rdb *redis.Client, cfg *config.Config) *AssessmentService {
	return &AssessmentService{
		TestRepo: testRepo,
		AI:       ai,
		Models:   models,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

// StudentQuestion 下发给学生的题目视图，不含答案和解析
type StudentQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type GenerateTestResponse struct {
	TestID    uint              `json:"testId"`
	Questions []StudentQuestion `json:"questions"`
}

// GenerateTest 调用出题服务生成一套题并落库。题目 ID 按列表顺序
// 从 1 起编号，落库后不再变化
func (s *AssessmentService) GenerateTest(ctx context.Context, userID uint) (*GenerateTestResponse, error) {
	content, err := s.AI.CompleteJSON(ctx, []AIChatMessage{
		{Role: "user", Content: CriticalThinkingPrompt},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []scoring.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedQuestions, err)
	}
	for i := range payload.Questions {
		payload.Questions[i].ID = i + 1
	}
	if err := scoring.ValidateQuestions(payload.Questions); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedQuestions, err)
	}

	questionsJSON, err := json.Marshal(payload.Questions)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		UserID:    userID,
		Questions: questionsJSON,
		Status:    model.TestStatusGenerated,
	}
	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}

	student := stripAnswers(payload.Questions)
	s.cacheQuestions(ctx, userID, test.ID, student)

	return &GenerateTestResponse{TestID: test.ID, Questions: student}, nil
}

// GetStudentQuestions 取题目（优先 Redis 缓存，miss 则回源数据库）
func (s *AssessmentService) GetStudentQuestions(ctx context.Context, userID, testID uint) ([]StudentQuestion, error) {
	if cached, ok := s.cachedQuestions(ctx, userID, testID); ok {
		return cached, nil
	}

	test, err := s.findOwnedTest(userID, testID)
	if err != nil {
		return nil, err
	}
	questions, err := unmarshalQuestions(test)
	if err != nil {
		return nil, err
	}

	student := stripAnswers(questions)
	s.cacheQuestions(ctx, userID, testID, student)
	return student, nil
}

type EvaluateTestRequest struct {
	TestID      uint        `json:"testId" binding:"required"`
	Answers     map[int]int `json:"answers" binding:"required"` // 题目ID -> 所选选项下标
	DurationSec float64     `json:"durationSec"`
}

type EvaluateTestResponse struct {
	TestID   uint                      `json:"testId"`
	Result   *scoring.EvaluationResult `json:"result"`
	Feedback string                    `json:"feedback"`
}

// EvaluateTest 评估一次提交：规则得分 + ML 得分 + 两套评级 + 评语，
// 全部写回 Test 行。已评估过的测试不允许重复提交
func (s *AssessmentService) EvaluateTest(userID uint, req EvaluateTestRequest) (*EvaluateTestResponse, error) {
	test, err := s.findOwnedTest(userID, req.TestID)
	if err != nil {
		return nil, err
	}
	if test.Status == model.TestStatusEvaluated {
		return nil, util.ErrTestAlreadyEvaluated
	}

	questions, err := unmarshalQuestions(test)
	if err != nil {
		return nil, err
	}

	duration := req.DurationSec
	if duration <= 0 {
		duration = defaultDurationSec
	}

	result, err := s.Models.Engine().Evaluate(questions, scoring.AnswerSet(req.Answers), duration)
	if err != nil {
		return nil, err
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	test.Answers = answersJSON
	test.DurationSec = duration
	test.RuleScore = result.Score
	test.MLScore = result.MLScore
	test.RuleStrength = string(result.RuleStrength)
	test.MLStrength = string(result.MLStrength)
	test.Feedback = feedbackFor(result)
	test.Status = model.TestStatusEvaluated
	if err := s.TestRepo.Update(test); err != nil {
		return nil, err
	}

	monitoring.EvaluationCounter.WithLabelValues(string(result.RuleStrength)).Inc()

	return &EvaluateTestResponse{
		TestID:   test.ID,
		Result:   result,
		Feedback: test.Feedback,
	}, nil
}

// GetTestResult 查询一次测试的评估结果
func (s *AssessmentService) GetTestResult(userID, testID uint) (*model.Test, error) {
	return s.findOwnedTest(userID, testID)
}

func (s *AssessmentService) ListMyTests(userID uint, page, limit int) ([]model.Test, int64, error) {
	return s.TestRepo.ListByUser(userID, page, limit)
}

// ListEvaluated 教师/管理员查看全部已评估的测试
func (s *AssessmentService) ListEvaluated(page, limit int) ([]model.Test, int64, error) {
	return s.TestRepo.ListEvaluated(page, limit)
}

func (s *AssessmentService) DeleteTest(id uint) error {
	return s.TestRepo.Delete(id)
}

// feedbackFor 按分数段生成评语（规则分 0-100，ML 分 0-100）
func feedbackFor(result *scoring.EvaluationResult) string {
	switch {
	case result.Score > 80 && result.MLScore > 80:
		return "Excellent critical thinking skills!"
	case result.Score > 60:
		return "Good analytical abilities with room for improvement"
	default:
		return "Keep practicing - focus on evaluating arguments systematically"
	}
}

func (s *AssessmentService) findOwnedTest(userID, testID uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	if test.UserID != userID {
		return nil, util.ErrTestNotFound
	}
	return test, nil
}

func unmarshalQuestions(test *model.Test) ([]scoring.Question, error) {
	var questions []scoring.Question
	if err := json.Unmarshal(test.Questions, &questions); err != nil {
		return nil, fmt.Errorf("%w: test %d: %v", util.ErrMalformedQuestions, test.ID, err)
	}
	return questions, nil
}

func stripAnswers(questions []scoring.Question) []StudentQuestion {
	out := make([]StudentQuestion, len(questions))
	for i, q := range questions {
		out[i] = StudentQuestion{ID: q.ID, Text: q.Text, Options: q.Options}
	}
	return out
}

// 缓存只是加速，读写失败都不阻塞主流程
func (s *AssessmentService) cacheQuestions(ctx context.Context, userID, testID uint, questions []StudentQuestion) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return
	}
	key := fmt.Sprintf("%s%d:u%d", questionCacheKeyPrefix, testID, userID)
	if err := s.Redis.Set(ctx, key, data, questionCacheTTL).Err(); err != nil {
		logger.Log.Warn("question cache write failed", zap.Uint("testId", testID), zap.Error(err))
	}
}

func (s *AssessmentService) cachedQuestions(ctx context.Context, userID, testID uint) ([]StudentQuestion, bool) {
	if s.Redis == nil {
		return nil, false
	}
	key := fmt.Sprintf("%s%d:u%d", questionCacheKeyPrefix, testID, userID)
	val, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var questions []StudentQuestion
	if err := json.Unmarshal([]byte(val), &questions); err != nil {
		return nil, false
	}
	return questions, true
}

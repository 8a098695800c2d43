package service

import (
	"context"
	"critical_thinking_backend/internal/config"
	"critical_thinking_backend/internal/model"
	"critical_thinking_backend/internal/scoring"
	"critical_thinking_backend/pkg/logger"
	"critical_thinking_backend/pkg/monitoring"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ModelService 管理两个评分模型的生命周期：启动时加载或自举、
// 推理入口（通过 Engine）以及管理员重训。重训成功后可选地把
// bundle 镜像到对象存储，镜像失败只记日志，不影响评分
type ModelService struct {
	cfg           *config.Config
	storage       *StorageService
	scoreModel    *scoring.TrainableModel
	strengthModel *scoring.TrainableModel
	engine        *scoring.Engine
}

func NewModelService(cfg *config.Config, storage *StorageService) *ModelService {
	s := &ModelService{
		cfg:           cfg,
		storage:       storage,
		scoreModel:    scoring.NewScoreModel(cfg.Model.Dir),
		strengthModel: scoring.NewStrengthModel(cfg.Model.Dir),
	}
	s.engine = scoring.NewEngine(s.scoreModel, s.strengthModel)

	if cfg.Model.Mirror && storage != nil {
		s.scoreModel.SetPersistHook(s.mirrorBundle)
		s.strengthModel.SetPersistHook(s.mirrorBundle)
	}
	return s
}

// Init 启动时调用。任一模型加载且自举失败则启动失败——按契约，
// ML 评分缺失必须显式暴露，不能静默退化成纯规则评分
func (s *ModelService) Init() error {
	for _, m := range []*scoring.TrainableModel{s.scoreModel, s.strengthModel} {
		if err := m.LoadOrBootstrap(); err != nil {
			return fmt.Errorf("init %s: %w", m.Name(), err)
		}
		logger.Log.Info("scoring model ready",
			zap.String("model", m.Name()),
			zap.String("bundle", m.Path()),
		)
	}
	return nil
}

// Engine 返回评估编排器
func (s *ModelService) Engine() *scoring.Engine {
	return s.engine
}

// RetrainStrength 用已标注的 (得分, 用时, 评级) 样本整体重训分类模型
func (s *ModelService) RetrainStrength(samples []model.RetrainSample) error {
	x := make([][]float64, 0, len(samples))
	labels := make([]string, 0, len(samples))
	for i, sample := range samples {
		switch scoring.Strength(sample.Strength) {
		case scoring.StrengthStrong, scoring.StrengthModerate, scoring.StrengthWeak:
		default:
			return fmt.Errorf("%w: sample %d has unknown strength %q", scoring.ErrInvalidInput, i, sample.Strength)
		}
		x = append(x, []float64{sample.Score, sample.DurationSec})
		labels = append(labels, sample.Strength)
	}

	err := s.strengthModel.RetrainClassifier(x, labels)
	s.countRetrain(s.strengthModel.Name(), err)
	return err
}

// RetrainScore 用题目特征行与目标分重训回归模型
func (s *ModelService) RetrainScore(features [][]float64, targets []float64) error {
	err := s.scoreModel.RetrainRegressor(features, targets)
	s.countRetrain(s.scoreModel.Name(), err)
	return err
}

// Status 返回各模型 bundle 的当前状态
func (s *ModelService) Status() []map[string]interface{} {
	var out []map[string]interface{}
	for _, m := range []*scoring.TrainableModel{s.scoreModel, s.strengthModel} {
		entry := map[string]interface{}{
			"model":  m.Name(),
			"bundle": m.Path(),
		}
		if info, err := os.Stat(m.Path()); err == nil {
			entry["persistedAt"] = info.ModTime()
			entry["sizeBytes"] = info.Size()
		}
		out = append(out, entry)
	}
	return out
}

func (s *ModelService) countRetrain(name string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	monitoring.RetrainCounter.WithLabelValues(name, result).Inc()
}

func (s *ModelService) mirrorBundle(bundlePath string) {
	key := fmt.Sprintf("bundles/%s-%s-%s",
		time.Now().UTC().Format("20060102T150405"),
		uuid.New().String()[:8],
		filepath.Base(bundlePath),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.storage.UploadFile(ctx, key, bundlePath, "application/json"); err != nil {
		logger.Log.Error("model bundle mirror failed",
			zap.String("bundle", bundlePath),
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	logger.Log.Info("model bundle mirrored", zap.String("key", key))
}

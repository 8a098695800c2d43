package service

import (
	"critical_thinking_backend/internal/config"
	"critical_thinking_backend/internal/model"
	"critical_thinking_backend/internal/scoring"
	"critical_thinking_backend/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestModelService(t *testing.T) *ModelService {
	t.Helper()
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}
	cfg := &config.Config{}
	cfg.Model.Dir = t.TempDir()
	s := NewModelService(cfg, nil)
	require.NoError(t, s.Init())
	return s
}

func TestModelServiceInitBootstraps(t *testing.T) {
	s := newTestModelService(t)

	status := s.Status()
	require.Len(t, status, 2)
	for _, entry := range status {
		assert.Contains(t, entry, "persistedAt", "bundle for %v should be on disk after Init", entry["model"])
	}
}

func TestRetrainStrengthRejectsUnknownLabel(t *testing.T) {
	s := newTestModelService(t)

	err := s.RetrainStrength([]model.RetrainSample{
		{Score: 90, DurationSec: 100, Strength: "Strong"},
		{Score: 50, DurationSec: 400, Strength: "Medium"}, // 非法评级
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, scoring.ErrInvalidInput)
}

func TestRetrainStrengthReplacesModel(t *testing.T) {
	s := newTestModelService(t)

	samples := []model.RetrainSample{
		{Score: 95, DurationSec: 100, Strength: "Strong"},
		{Score: 90, DurationSec: 150, Strength: "Strong"},
		{Score: 60, DurationSec: 400, Strength: "Moderate"},
		{Score: 55, DurationSec: 500, Strength: "Moderate"},
		{Score: 20, DurationSec: 900, Strength: "Weak"},
		{Score: 10, DurationSec: 1000, Strength: "Weak"},
	}
	require.NoError(t, s.RetrainStrength(samples))

	engine := s.Engine()
	require.NotNil(t, engine)
}

package scoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	kindRegressor  = "regressor"
	kindClassifier = "classifier"

	bundleVersion = 1
)

// modelBundle 模型、scaler、encoder 三件套打包成单个带版本的 bundle 持久化，
// 整体原子替换，避免三个文件各自落盘导致的不一致
type modelBundle struct {
	Version    int                `json:"version"`
	Kind       string             `json:"kind"`
	Dim        int                `json:"dim"`
	TrainedAt  time.Time          `json:"trainedAt"`
	Regressor  *ridgeRegression   `json:"regressor,omitempty"`
	Classifier *softmaxClassifier `json:"classifier,omitempty"`
	Scaler     *StandardScaler    `json:"scaler,omitempty"`
	Encoder    *LabelEncoder      `json:"encoder,omitempty"`
}

// TrainableModel wraps a statistical model plus its fitted scaler (and,
// for classifiers, label encoder) behind one lifecycle: LoadOrBootstrap
// at process start, lock-free concurrent predicts, and an exclusive
// retrain path that refits and re-persists everything atomically.
type TrainableModel struct {
	mu     sync.RWMutex
	name   string
	path   string
	kind   string
	dim    int
	loaded bool

	reg    *ridgeRegression
	clf    *softmaxClassifier
	scaler *StandardScaler
	enc    *LabelEncoder

	// onPersist 持久化成功后的回调（如镜像上传到对象存储）
	onPersist func(bundlePath string)
}

// NewScoreModel 分项得分回归模型（5 维题目特征 -> 得分）
func NewScoreModel(dir string) *TrainableModel {
	return &TrainableModel{
		name: "score_model",
		path: filepath.Join(dir, "score_model.json"),
		kind: kindRegressor,
		dim:  FeatureDim,
	}
}

// NewStrengthModel 能力评级分类模型（(得分, 用时) -> Strong/Moderate/Weak）
func NewStrengthModel(dir string) *TrainableModel {
	return &TrainableModel{
		name: "strength_model",
		path: filepath.Join(dir, "strength_model.json"),
		kind: kindClassifier,
		dim:  2,
	}
}

// Name returns the model's artifact name.
func (m *TrainableModel) Name() string { return m.name }

// Path returns the bundle file location.
func (m *TrainableModel) Path() string { return m.path }

// SetPersistHook registers a callback invoked after every successful
// bundle swap, with the bundle path. Used to mirror artifacts to object
// storage; failures there must not affect scoring.
func (m *TrainableModel) SetPersistHook(fn func(bundlePath string)) {
	m.onPersist = fn
}

// LoadOrBootstrap loads the persisted bundle if present; otherwise fits
// the embedded synthetic dataset and persists before first use, so the
// service never lacks a model. Early-life predictions are calibrated
// only to synthetic data and should be treated as low-confidence.
func (m *TrainableModel) LoadOrBootstrap() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loaded {
		return nil
	}

	if err := m.loadLocked(); err == nil {
		m.loaded = true
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: loading %s: %v", ErrModelUnavailable, m.path, err)
	}

	if err := m.bootstrapLocked(); err != nil {
		return fmt.Errorf("%w: bootstrap training of %s: %v", ErrModelUnavailable, m.name, err)
	}
	m.loaded = true
	return nil
}

func (m *TrainableModel) loadLocked() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}
	var b modelBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("corrupt bundle: %v", err)
	}
	if b.Kind != m.kind {
		return fmt.Errorf("bundle kind %q, want %q", b.Kind, m.kind)
	}
	if b.Dim != m.dim {
		return fmt.Errorf("bundle dimension %d, want %d", b.Dim, m.dim)
	}
	if b.Scaler == nil {
		return fmt.Errorf("bundle missing scaler")
	}
	switch m.kind {
	case kindRegressor:
		if b.Regressor == nil {
			return fmt.Errorf("bundle missing regressor")
		}
	case kindClassifier:
		if b.Classifier == nil || b.Encoder == nil {
			return fmt.Errorf("bundle missing classifier or encoder")
		}
	}
	m.reg = b.Regressor
	m.clf = b.Classifier
	m.scaler = b.Scaler
	m.enc = b.Encoder
	return nil
}

func (m *TrainableModel) bootstrapLocked() error {
	switch m.kind {
	case kindRegressor:
		x, y := syntheticScoreData()
		return m.refitRegressorLocked(x, y)
	case kindClassifier:
		x, labels := syntheticStrengthData()
		return m.refitClassifierLocked(x, labels)
	default:
		return fmt.Errorf("unknown model kind %q", m.kind)
	}
}

// PredictScore scales each feature row, runs the regressor, and returns
// the prediction averaged over all rows (one row per question), clamped
// to [0,100].
func (m *TrainableModel) PredictScore(rows [][]float64) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.loaded {
		return 0, fmt.Errorf("%w: %s not initialized, call LoadOrBootstrap first", ErrModelUnavailable, m.name)
	}
	if m.kind != kindRegressor {
		return 0, fmt.Errorf("%w: %s is not a regressor", ErrPrediction, m.name)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: no feature rows to score", ErrInvalidInput)
	}

	var sum float64
	for i, row := range rows {
		scaled, err := m.scaler.Transform(row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		p, err := m.reg.Predict(scaled)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		sum += p
	}
	avg := sum / float64(len(rows))
	if avg < 0 {
		avg = 0
	}
	if avg > 100 {
		avg = 100
	}
	return avg, nil
}

// PredictStrength classifies a (score, duration) pair into a strength
// label via scaler -> classifier -> label decoding.
func (m *TrainableModel) PredictStrength(score, durationSeconds float64) (Strength, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.loaded {
		return "", fmt.Errorf("%w: %s not initialized, call LoadOrBootstrap first", ErrModelUnavailable, m.name)
	}
	if m.kind != kindClassifier {
		return "", fmt.Errorf("%w: %s is not a classifier", ErrPrediction, m.name)
	}

	scaled, err := m.scaler.Transform([]float64{score, durationSeconds})
	if err != nil {
		return "", err
	}
	code, err := m.clf.Predict(scaled)
	if err != nil {
		return "", err
	}
	label, err := m.enc.Decode(code)
	if err != nil {
		return "", err
	}
	return Strength(label), nil
}

// RetrainRegressor refits scaler and regressor on the batch (the whole
// model is replaced, no partial fit) and re-persists atomically. In-memory
// state only swaps after the new bundle is durably on disk, so concurrent
// readers see either the old or the fully-new artifact.
func (m *TrainableModel) RetrainRegressor(x [][]float64, y []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return fmt.Errorf("%w: %s not initialized, call LoadOrBootstrap first", ErrModelUnavailable, m.name)
	}
	if m.kind != kindRegressor {
		return fmt.Errorf("%w: %s is not a regressor", ErrInvalidInput, m.name)
	}
	return m.refitRegressorLocked(x, y)
}

// RetrainClassifier refits scaler, classifier and label encoder on the
// batch and re-persists atomically.
func (m *TrainableModel) RetrainClassifier(x [][]float64, labels []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return fmt.Errorf("%w: %s not initialized, call LoadOrBootstrap first", ErrModelUnavailable, m.name)
	}
	if m.kind != kindClassifier {
		return fmt.Errorf("%w: %s is not a classifier", ErrInvalidInput, m.name)
	}
	return m.refitClassifierLocked(x, labels)
}

func (m *TrainableModel) refitRegressorLocked(x [][]float64, y []float64) error {
	if err := m.validateBatch(x); err != nil {
		return err
	}

	scaler := &StandardScaler{}
	if err := scaler.Fit(x); err != nil {
		return err
	}
	scaled, err := transformAll(scaler, x)
	if err != nil {
		return err
	}
	reg := newRidgeRegression(1.0)
	if err := reg.Fit(scaled, y); err != nil {
		return err
	}

	if err := m.persist(&modelBundle{
		Version:   bundleVersion,
		Kind:      m.kind,
		Dim:       m.dim,
		TrainedAt: time.Now().UTC(),
		Regressor: reg,
		Scaler:    scaler,
	}); err != nil {
		return err
	}

	m.scaler = scaler
	m.reg = reg
	return nil
}

func (m *TrainableModel) refitClassifierLocked(x [][]float64, labels []string) error {
	if err := m.validateBatch(x); err != nil {
		return err
	}
	if len(labels) != len(x) {
		return fmt.Errorf("%w: %d samples but %d labels", ErrInvalidInput, len(x), len(labels))
	}

	enc := &LabelEncoder{}
	if err := enc.Fit(labels); err != nil {
		return err
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		code, err := enc.Encode(l)
		if err != nil {
			return err
		}
		y[i] = code
	}

	scaler := &StandardScaler{}
	if err := scaler.Fit(x); err != nil {
		return err
	}
	scaled, err := transformAll(scaler, x)
	if err != nil {
		return err
	}
	clf := newSoftmaxClassifier()
	if err := clf.Fit(scaled, y, len(enc.Classes)); err != nil {
		return err
	}

	if err := m.persist(&modelBundle{
		Version:    bundleVersion,
		Kind:       m.kind,
		Dim:        m.dim,
		TrainedAt:  time.Now().UTC(),
		Classifier: clf,
		Scaler:     scaler,
		Encoder:    enc,
	}); err != nil {
		return err
	}

	m.scaler = scaler
	m.clf = clf
	m.enc = enc
	return nil
}

func (m *TrainableModel) validateBatch(x [][]float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: empty training batch", ErrInvalidInput)
	}
	for i, row := range x {
		if len(row) != m.dim {
			return fmt.Errorf("%w: row %d has %d features, %s expects %d", ErrInvalidInput, i, len(row), m.name, m.dim)
		}
	}
	return nil
}

// persist 先写临时文件再 rename，进程崩溃也不会留下半写的 bundle
func (m *TrainableModel) persist(b *modelBundle) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, m.path); err != nil {
		os.Remove(tmp)
		return err
	}
	if m.onPersist != nil {
		m.onPersist(m.path)
	}
	return nil
}

func transformAll(scaler *StandardScaler, x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		scaled, err := scaler.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}

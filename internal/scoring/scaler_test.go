package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	s := &StandardScaler{}
	if err := s.Fit([][]float64{{1, 10}, {3, 10}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row, err := s.Transform([]float64{2, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(row[0]) > 1e-9 {
		t.Errorf("mean value should scale to 0, got %v", row[0])
	}
	// 零方差列除数取 1，不产生 NaN
	if math.IsNaN(row[1]) || row[1] != 0 {
		t.Errorf("zero-variance column should scale to 0, got %v", row[1])
	}

	if _, err := s.Transform([]float64{1, 2, 3}); !errors.Is(err, ErrPrediction) {
		t.Errorf("dimension mismatch should be ErrPrediction, got %v", err)
	}
}

func TestLabelEncoder_RoundTrip(t *testing.T) {
	e := &LabelEncoder{}
	if err := e.Fit([]string{"Weak", "Strong", "Moderate", "Strong"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Classes) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(e.Classes))
	}

	for _, label := range []string{"Strong", "Moderate", "Weak"} {
		code, err := e.Encode(label)
		if err != nil {
			t.Fatalf("encode %s: %v", label, err)
		}
		back, err := e.Decode(code)
		if err != nil {
			t.Fatalf("decode %d: %v", code, err)
		}
		if back != label {
			t.Errorf("round trip %s -> %d -> %s", label, code, back)
		}
	}

	if _, err := e.Encode("Unknown"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown label should be ErrInvalidInput, got %v", err)
	}
	if _, err := e.Decode(99); !errors.Is(err, ErrPrediction) {
		t.Errorf("out-of-range code should be ErrPrediction, got %v", err)
	}
}

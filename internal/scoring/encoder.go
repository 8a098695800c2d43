package scoring

import (
	"fmt"
	"sort"
)

// LabelEncoder 标签 <-> 整数编码。类别按字典序排序，保证编码稳定
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// Fit derives the class set from the given labels.
func (e *LabelEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return fmt.Errorf("%w: cannot fit encoder on empty labels", ErrInvalidInput)
	}
	seen := make(map[string]bool)
	e.Classes = e.Classes[:0]
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			e.Classes = append(e.Classes, l)
		}
	}
	sort.Strings(e.Classes)
	return nil
}

// Encode maps a label to its integer code.
func (e *LabelEncoder) Encode(label string) (int, error) {
	for i, c := range e.Classes {
		if c == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown label %q", ErrInvalidInput, label)
}

// Decode maps an integer code back to its label.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("%w: label code %d out of range [0,%d)", ErrPrediction, code, len(e.Classes))
	}
	return e.Classes[code], nil
}

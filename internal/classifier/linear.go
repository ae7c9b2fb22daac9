package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// maxTokens caps the token sequence fed to the model; longer input is
// truncated, never rejected.
const maxTokens = 512

// modelFile is the on-disk weights format: a token vocabulary plus one
// weight row and one bias per class.
type modelFile struct {
	Name    string         `json:"name"`
	Labels  []string       `json:"labels,omitempty"`
	Vocab   map[string]int `json:"vocab"`
	Weights [][]float64    `json:"weights"` // [class][vocab index]
	Bias    []float64      `json:"bias"`    // [class]
}

// Linear is a bag-of-tokens linear sequence classifier. Weights are loaded
// once at construction and never mutated, so a single instance serves
// concurrent requests.
type Linear struct {
	vocab   map[string]int
	weights [][]float64
	bias    []float64
}

var _ Classifier = (*Linear)(nil)

// LoadLinear reads and validates a weights file. Any load or validation
// error is returned to the caller; the serve command treats it as fatal.
func LoadLinear(path string) (*Linear, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file %s: %w", path, err)
	}

	var mf modelFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parse model file %s: %w", path, err)
	}

	return NewLinear(mf.Vocab, mf.Weights, mf.Bias)
}

// NewLinear builds a classifier from in-memory weights.
func NewLinear(vocab map[string]int, weights [][]float64, bias []float64) (*Linear, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("model has empty vocabulary")
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("model has no classes")
	}
	if len(bias) != len(weights) {
		return nil, fmt.Errorf("model bias length %d does not match class count %d", len(bias), len(weights))
	}
	for class, row := range weights {
		if len(row) < len(vocab) {
			return nil, fmt.Errorf("weight row for class %d has %d entries, vocabulary has %d", class, len(row), len(vocab))
		}
	}
	for tok, idx := range vocab {
		if idx < 0 {
			return nil, fmt.Errorf("vocabulary entry %q has negative index %d", tok, idx)
		}
	}

	return &Linear{vocab: vocab, weights: weights, bias: bias}, nil
}

// Classify tokenizes text and returns the index of the highest-scoring
// class. Ties resolve to the first maximal index.
func (l *Linear) Classify(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	logits := make([]float64, len(l.weights))
	copy(logits, l.bias)

	for _, tok := range tokenize(text) {
		idx, ok := l.vocab[tok]
		if !ok {
			continue
		}
		for class := range l.weights {
			logits[class] += l.weights[class][idx]
		}
	}

	best := 0
	for class := 1; class < len(logits); class++ {
		if logits[class] > logits[best] {
			best = class
		}
	}
	return best, nil
}

// tokenize lowercases and splits on anything that is not a letter or digit,
// truncating at maxTokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) > maxTokens {
		fields = fields[:maxTokens]
	}
	return fields
}

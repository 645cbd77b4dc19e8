package predictor

import (
	"encoding/json"
	"fmt"
	"os"
)

// modelArtifact is the on-disk representation of an exported demand model.
// Training happens elsewhere; this package only consumes the artifact.
type modelArtifact struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// linearScorer applies exported regression weights to a feature vector.
type linearScorer struct {
	weights []float64
	bias    float64
}

func (s *linearScorer) Predict(features []float64) (float64, error) {
	if len(features) != len(s.weights) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), len(s.weights))
	}

	sum := s.bias
	for i, w := range s.weights {
		sum += w * features[i]
	}
	return sum, nil
}

// LoadModelFile reads an exported model artifact and returns it as a Scorer.
func LoadModelFile(path string) (Scorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read model artifact %s: %w", path, err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("cannot decode model artifact %s: %w", path, err)
	}
	if len(artifact.Weights) == 0 {
		return nil, fmt.Errorf("model artifact %s has no weights", path)
	}

	return &linearScorer{weights: artifact.Weights, bias: artifact.Bias}, nil
}

package predictor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadModelFile(t *testing.T) {
	path := writeArtifact(t, `{"weights": [2, 0, 0, 0, 1], "bias": 5}`)

	scorer, err := LoadModelFile(path)
	require.NoError(t, err)

	demand, err := scorer.Predict([]float64{10, 0, 0, 0, 3})
	require.NoError(t, err)
	assert.InDelta(t, 28.0, demand, 1e-9)
}

func TestLoadModelFile_MissingFile(t *testing.T) {
	_, err := LoadModelFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadModelFile_EmptyWeights(t *testing.T) {
	path := writeArtifact(t, `{"weights": [], "bias": 1}`)

	_, err := LoadModelFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no weights")
}

func TestLinearScorer_ShapeMismatch(t *testing.T) {
	path := writeArtifact(t, `{"weights": [1, 1], "bias": 0}`)

	scorer, err := LoadModelFile(path)
	require.NoError(t, err)

	_, err = scorer.Predict([]float64{1, 2, 3})
	assert.Error(t, err)
}

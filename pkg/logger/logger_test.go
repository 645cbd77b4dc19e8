package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetLevel_UnknownKeepsInfo(t *testing.T) {
	defer SetLevel("info")

	// A gin mode is not a log level; startup must not end up below info.
	SetLevel("release")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

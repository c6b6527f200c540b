package infra

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "production", "")

	logger.Debug().Msg("hidden")
	logger.Info().Str("brand", "Acme").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "brandkit", entry["service"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "Acme", entry["brand"])
}

func TestNewLoggerLevelOverride(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, NewLoggerTo(&bytes.Buffer{}, "production", "WARN").GetLevel())
	assert.Equal(t, zerolog.DebugLevel, NewLoggerTo(&bytes.Buffer{}, "development", "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLoggerTo(&bytes.Buffer{}, "production", "nonsense").GetLevel())
}

func TestNewLoggerDevelopmentConsole(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "development", "")
	l.Debug().Msg("poll attempt")
	assert.Contains(t, buf.String(), "poll attempt")
	assert.False(t, json.Valid(buf.Bytes()))
}

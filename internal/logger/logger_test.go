package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("test-role", &buf)

	log.Info().Str("key", "value").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "hello", entry["message"])
	assert.NotEmpty(t, entry["time"])
	assert.NotEmpty(t, entry["func"])
}

func TestFromContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("ctx-role", &buf)

	ctx := log.WithContext(context.Background())
	got := FromContext(ctx)

	got.Info().Msg("from context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx-role", entry["role"])
}

func TestNopLoggerIsSilent(t *testing.T) {
	log := Nop()
	// must not panic and must not produce output anywhere observable
	log.Error().Msg("discarded")
}

func TestRotatingLoggerFallsBackToStdout(t *testing.T) {
	log := NewRotatingLogger("fallback", RotationConfig{})
	require.NotNil(t, log)
}

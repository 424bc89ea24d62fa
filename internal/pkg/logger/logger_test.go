package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"restaurant/internal/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info"}, &buf)

	sweeper := logger.Component(l, "sweeper")
	sweeper.Info().Str("tenant_id", "t1").Msg("sweep finished")
	l.Debug().Msg("dropped below level")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "sweeper", line["component"])
	assert.Equal(t, "t1", line["tenant_id"])
	assert.Equal(t, "sweep finished", line["message"])
	assert.Contains(t, line, "time")
}

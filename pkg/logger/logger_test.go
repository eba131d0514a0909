package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONComComponente(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("ignorado")
	log.Component("returns").Warn().Str("ref", "/uploads/a.jpg").Msg("falha")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "returns", line["component"])
	assert.Equal(t, "/uploads/a.jpg", line["ref"])
	assert.Equal(t, "falha", line["message"])
}

func TestParseLevel_DesconhecidoViraInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "verboso", Output: &buf})
	log.Debug().Msg("x")
	assert.Zero(t, buf.Len())
	log.Info().Msg("y")
	assert.NotZero(t, buf.Len())
}

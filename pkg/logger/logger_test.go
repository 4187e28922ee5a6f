package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"DEBUG ":  zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "nivel %q", in)
	}
}

func TestNew_ProduccionEmiteJSONConServicio(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "tienda-api", Out: &buf})
	l.Debug().Msg("oculto")
	l.Info().Str("k", "v").Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), "una sola línea JSON: %s", buf.String())
	assert.Equal(t, "hola", line["message"])
	assert.Equal(t, "tienda-api", line["service"])
	assert.Equal(t, "v", line["k"])
	assert.Contains(t, line, "time")
}

func TestNew_DesarrolloUsaConsolaEInstalaGlobal(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	New(Config{Env: "development", Level: "debug", Out: &buf})
	log.Debug().Msg("desde el global")

	out := buf.String()
	assert.Contains(t, out, "desde el global")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "la consola no es JSON")
	assert.NotContains(t, out, "service", "sin Service no se agrega el campo")
}

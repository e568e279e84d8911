package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("desconocido"))
}

func TestNew_JSONWithServiceFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "registro-empresas", Version: "1.2.3", Output: &buf})

	l.Component("store").Info().Str("key", "900674335").Msg("registro creado")
	l.Debug().Msg("descartado por nivel")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "registro-empresas", line["service"])
	assert.Equal(t, "1.2.3", line["version"])
	assert.Equal(t, "store", line["component"])
	assert.Equal(t, "registro creado", line["message"])
}

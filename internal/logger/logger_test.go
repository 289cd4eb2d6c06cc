package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", JSON: true, Output: &buf})

	log.Warn("skipping row", "row", 3, "source", "kobo")

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &payload))
	assert.Equal(t, "warn", payload["level"])
	assert.Equal(t, "skipping row", payload["msg"])
	assert.Equal(t, "kobo", payload["source"])
	assert.EqualValues(t, 3, payload["row"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info("hidden")
	log.Debug("hidden too")
	assert.Empty(t, buf.String())

	log.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "chatty", Output: &buf})

	log.Debug("hidden")
	log.Info("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestWith_CarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", JSON: true, Output: &buf}).With("path", "/tmp/KoboReader.sqlite")

	log.Info("reading")

	assert.Contains(t, buf.String(), `"path":"/tmp/KoboReader.sqlite"`)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error("nothing to see")
	})
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aquid0/Prompt-Heatmap/internal/platform/logging"
)

func TestJSONLoggerFiltersByLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{Level: "info", Format: "json"}, buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("drawn", zap.String("label", "rain"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "drawn", entry["msg"])
	assert.Equal(t, "rain", entry["label"])
	assert.Contains(t, entry, "ts")
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, logging.DefaultConfig().Validate())
	assert.Error(t, logging.Config{Level: "loud", Format: "json"}.Validate())
	assert.Error(t, logging.Config{Level: "info", Format: "xml"}.Validate())
	_, err := logging.New(logging.Config{Level: "loud"}, nil)
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	t.Parallel()
	assert.NotNil(t, logging.OrNop(nil))
}

package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects stdout while fn runs and returns what was written.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = original

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestLogger_WritesJSON(t *testing.T) {
	output := captureOutput(t, func() {
		NewLogger().Info("finalization pass complete")
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "finalization pass complete", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestLogger_WithField(t *testing.T) {
	output := captureOutput(t, func() {
		NewLogger().WithField("campaign_id", int64(10)).Warn("blocked")
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &entry))
	assert.Equal(t, float64(10), entry["campaign_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestLogger_WithFields(t *testing.T) {
	output := captureOutput(t, func() {
		NewLogger().WithFields(map[string]interface{}{
			"groups_evaluated": 2,
			"groups_finalized": 1,
		}).Info("done")
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &entry))
	assert.Equal(t, float64(2), entry["groups_evaluated"])
	assert.Equal(t, float64(1), entry["groups_finalized"])
}

func TestNewLoggerWithLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	t.Run("suppresses entries below the level", func(t *testing.T) {
		output := captureOutput(t, func() {
			NewLoggerWithLevel("warn").Info("hidden")
		})
		assert.Empty(t, output)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		output := captureOutput(t, func() {
			logger := NewLoggerWithLevel("nonsense")
			logger.Debug("hidden")
			logger.Info("visible")
		})
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "visible")
	})
}

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "marinai.log")

	log, closeFn := Setup("debug", "json", path)
	log.Info().Str("exam", "항해사").Msg("pool ready")
	closeFn()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"service":"marinai"`)
	assert.Contains(t, string(raw), `"message":"pool ready"`)
	assert.Contains(t, string(raw), `"exam":"항해사"`)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_BadLevelFallsBackToInfo(t *testing.T) {
	_, closeFn := Setup("loud", "json", "")
	defer closeFn()

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

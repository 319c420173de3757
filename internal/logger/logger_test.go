package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_WritesToDataDir(t *testing.T) {
	dir := t.TempDir()
	log := New(Options{Level: "debug", DataDir: dir})
	log.Info("tuned up")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(filepath.Join(dir, "guitarcoach.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"tuned up"`)
	assert.Contains(t, string(data), `"level":"INFO"`)
}

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggerWritesJSONToFile(t *testing.T) {
	assert.NotNil(t, L(), "L must be usable before init")
	Info("dropped before init")

	path := filepath.Join(t.TempDir(), "logs", "trackdeck.log")
	require.NoError(t, InitLogger(Config{Level: "debug", OutputPath: path, MaxSize: 1}))

	Debug("debug line", zap.Int("index", 2))
	Info("track loaded", zap.String("title", "Bad Guy"))
	L().Warn("direct", zap.Bool("ok", true))
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"track loaded"`)
	assert.Contains(t, out, `"title":"Bad Guy"`)
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"msg":"direct"`)
	assert.NotContains(t, out, "dropped before init")
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func TestNewProductionIsJSON(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	var buf bytes.Buffer
	New(&buf).Info("hello", "level_name", "beginner")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "beginner", line["level_name"])
}

func TestSetupEngineWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")
	t.Setenv("DEVELOPMENT", "0")
	t.Setenv("LOG_FILE", path)

	hooks := mines.Log.ReplaceHooks(make(logrus.LevelHooks))
	t.Cleanup(func() { mines.Log.ReplaceHooks(hooks) })

	require.NoError(t, SetupEngine())
	mines.Log.SetOutput(&bytes.Buffer{})
	mines.Log.WithField("cells", 3).Info("flood fill")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"flood fill"`)
}

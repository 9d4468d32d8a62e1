package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.Info("запуск %s", "сервера")
	logger.Error("ошибка: %d", 42)
	logger.Debug("скрыто")

	out := buf.String()
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "запуск сервера")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "ошибка: 42")
	assert.NotContains(t, out, "скрыто")
	assert.False(t, logger.IsVerbose())
}

func TestLogger_VerboseDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)
	logger.Debug("детали %v", []int{1, 2})

	assert.Contains(t, buf.String(), "DEBUG: ")
	assert.Contains(t, buf.String(), "детали [1 2]")
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewFileLogger(dir, false)
	require.NoError(t, err)

	logger.Info("запись в файл")
	require.NoError(t, closer.Close())

	name := filepath.Join(dir, "dashboard_log_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "запись в файл")
}

func TestNewFileLogger_BadDir(t *testing.T) {
	_, _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "dir"), false)
	assert.Error(t, err)
}

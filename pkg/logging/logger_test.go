package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temp log directory and resets
// the shared run id.
func setupTestDir(t *testing.T) {
	t.Helper()

	origLogDir := logDir
	origRunID := runID

	logDir = t.TempDir()
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		runID = origRunID
		runIDOnce = sync.Once{}
		if origRunID != "" {
			// Mark the once as fired so the restored run id is kept.
			runIDOnce.Do(func() {})
		}
	})
}

func TestNew(t *testing.T) {
	setupTestDir(t)

	logger, err := New("daemon")
	require.NoError(t, err)
	defer logger.Close()

	assert.NotEmpty(t, logger.RunID())

	path := filepath.Join(logDir, logger.RunID()+".log")
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "log file should exist at %s", path)
}

func TestLevels(t *testing.T) {
	setupTestDir(t)

	logger, err := New("daemon")
	require.NoError(t, err)

	logger.Infof("started session %q", "default")
	logger.Debugf("dropped without debug")
	logger.SetDebug(true)
	logger.Debugf("kept with debug")
	logger.Errorf("backend failed: %v", os.ErrNotExist)
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(filepath.Join(logDir, logger.RunID()+".log"))
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, `[daemon] [INFO] started session "default"`)
	assert.NotContains(t, text, "dropped without debug")
	assert.Contains(t, text, "[daemon] [DEBUG] kept with debug")
	assert.Contains(t, text, "[daemon] [ERROR] backend failed:")
}

func TestSharedRunID(t *testing.T) {
	setupTestDir(t)

	first, err := New("daemon")
	require.NoError(t, err)
	defer first.Close()

	second, err := New("executor")
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, first.RunID(), second.RunID(), "loggers in one process share a run id")
}

func TestCloseTwice(t *testing.T) {
	setupTestDir(t)

	logger, err := New("daemon")
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestFallbackLoggerUsable(t *testing.T) {
	setupTestDir(t)

	// Point the log directory at a path that cannot be created.
	file := filepath.Join(logDir, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))
	logDir = filepath.Join(file, "logs")

	logger, err := New("daemon")
	assert.Error(t, err)
	require.NotNil(t, logger)

	// The stderr fallback must not panic.
	logger.Infof("still alive")
	assert.NoError(t, logger.Close())
}

func TestRunIDLooksLikeUUID(t *testing.T) {
	setupTestDir(t)

	logger, err := New("daemon")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, 4, strings.Count(logger.RunID(), "-"))
}

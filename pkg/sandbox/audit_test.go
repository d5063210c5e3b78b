package sandbox

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuditLogger(t *testing.T) {
	t.Run("creates log file if not exists", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "audit.log")

		logger, err := NewAuditLogger(logPath)
		require.NoError(t, err)
		defer logger.Close()

		assert.NotNil(t, logger.logger)
		assert.NotNil(t, logger.file)

		_, err = os.Stat(logPath)
		assert.NoError(t, err)
	})

	t.Run("appends to existing log file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "existing_audit.log")
		require.NoError(t, os.WriteFile(logPath, []byte("previous log entry\n"), 0644))

		logger, err := NewAuditLogger(logPath)
		require.NoError(t, err)
		logger.Log("req-1", "executables", "scripts", true, "count=1")
		require.NoError(t, logger.Close())

		content, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "previous log entry\n"))
		assert.Contains(t, string(content), "|request:req-1|executables|scripts|success|count=1")
	})

	t.Run("fails for unwritable location", func(t *testing.T) {
		_, err := NewAuditLogger(filepath.Join(t.TempDir(), "missing", "audit.log"))
		assert.ErrorContains(t, err, "could not open audit log")
	})
}

func TestAuditLoggerLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewAuditLogger(logPath)
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	logger.Log("abc", "executables", "../etc", false, "PATH_SECURITY")
	logger.Log("def", "executables", "a|b\nc", true, "count=0")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)

	fields := strings.SplitN(lines[0], "|", 2)
	ts, err := time.Parse(time.RFC3339, fields[0])
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))
	assert.Equal(t, "request:abc|executables|../etc|failed|PATH_SECURITY", fields[1])

	// Separators and newlines in the argument are escaped
	assert.Contains(t, lines[1], `|a\|b\nc|success|`)
}

func TestAuditLoggerNil(t *testing.T) {
	var logger *AuditLogger

	assert.NotPanics(t, func() {
		logger.Log("id", "executables", "", true, "")
	})
	assert.NoError(t, logger.Close())
}

func TestAuditLoggerConcurrent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewAuditLogger(logPath)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Log("req", "executables", "scripts", true, "count=1")
		}()
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(content)), "\n"), 20)
}

package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		out = append(out, entry)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestLogEventAppendsDailyFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(filepath.Join(dir, "logs", "audit"))
	require.NoError(t, err)

	l.LogEvent(1, ActionCreate, "healthData", 42, map[string]any{"source": "manual"})
	l.LogEvent(1, ActionDelete, "healthData", 42, nil)

	path := filepath.Join(l.Dir(), fmt.Sprintf("audit-%s.log", time.Now().UTC().Format("2006-01-02")))
	lines := readLines(t, path)
	require.Len(t, lines, 2)

	assert.Equal(t, "create", lines[0]["action"])
	assert.Equal(t, "healthData", lines[0]["resourceType"])
	assert.EqualValues(t, 42, lines[0]["resourceId"])
	assert.EqualValues(t, 1, lines[0]["userId"])
	assert.Equal(t, "delete", lines[1]["action"])
}

func TestLogAccessAppendsSeparateFile(t *testing.T) {
	l, err := New(t.TempDir())
	require.NoError(t, err)

	l.LogAccess(AccessEntry{
		RequestID:    "req-1",
		UserID:       1,
		Action:       ActionView,
		ResourceType: "reminders",
		Method:       "GET",
		Path:         "/api/reminders",
		IP:           "10.0.0.5",
		UserAgent:    "dashboard/1.0",
	})

	path := filepath.Join(l.Dir(), fmt.Sprintf("api-access-%s.log", time.Now().UTC().Format("2006-01-02")))
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "view", lines[0]["action"])
	assert.Equal(t, "reminders", lines[0]["resourceType"])
	assert.Equal(t, "10.0.0.5", lines[0]["ip"])
	assert.Equal(t, "dashboard/1.0", lines[0]["userAgent"])
	assert.NotEmpty(t, lines[0]["timestamp"])
}

func TestWriteFailureIsCountedNotReturned(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	require.NoError(t, err)

	// Make the directory unwritable so the append fails.
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	l.LogEvent(1, ActionView, "healthData", 7, nil)
	assert.EqualValues(t, 1, l.WriteFailures())
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "audit-logs")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

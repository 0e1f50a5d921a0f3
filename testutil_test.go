package yololbl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func init() {
	SetLogger(nil)
}

// fixedClock is the time used for error log entries in tests.
func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

// writeAnnotation writes rec as JSON to dir/name and returns the path.
func writeAnnotation(t *testing.T, dir, name string, rec interface{}) string {
	t.Helper()
	enc, err := json.Marshal(rec)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, enc, 0644))
	return path
}

// writeFile writes data to dir/name, creating dir, and returns the path.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// square is a 100x50 rectangle at (10, 10) as an annotation shape.
func square(label string) ShapeRecord {
	return ShapeRecord{
		Label:  label,
		Points: [][]float64{{10, 10}, {110, 10}, {110, 60}, {10, 60}},
	}
}

// newTestConverter creates a converter writing to a temporary target directory.
func newTestConverter(t *testing.T, task Task) (*Converter, string) {
	t.Helper()
	target := t.TempDir()
	c, err := NewConverter(Config{Target: target, Task: task}, WithClock(fixedClock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, target
}

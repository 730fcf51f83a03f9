package debug

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledByDefault(t *testing.T) {
	assert.False(t, Enabled())
	// Must not panic with no logger configured.
	Query("query", "SELECT 1", 0)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	assert.True(t, Enabled())
	Query("execute", "UPDATE t SET a = $1", 1)

	out := buf.String()
	assert.Contains(t, out, "op=execute")
	assert.Contains(t, out, "UPDATE t SET a = $1")
}

func TestEnableDisable(t *testing.T) {
	Enable(true)
	assert.True(t, Enabled())
	Enable(false)
	assert.False(t, Enabled())
	Query("query", "SELECT 1", 0)
}

package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupLoggerTest() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	return buf, func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}
}

func TestLogger_SilentByDefault(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	Debug("debug %d", 1)
	Info("info")
	Warn("warn")

	assert.Empty(t, buf.String())
}

func TestLogger_VerboseEnabled(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	SetVerbose(true)
	assert.True(t, IsVerbose())

	Debug("poll %d", 3)
	Info("status %s", "InProgress")
	Warn("slow response")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] poll 3")
	assert.Contains(t, out, "[INFO] status InProgress")
	assert.Contains(t, out, "[WARN] slow response")
}

func TestLogger_ToggleOff(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	SetVerbose(true)
	Info("one")
	SetVerbose(false)
	Info("two")

	assert.Contains(t, buf.String(), "one")
	assert.NotContains(t, buf.String(), "two")
}

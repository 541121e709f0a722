package logrus

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("hidden", nil)
	logger.Info("visible info", map[string]interface{}{"count": 3})
	logger.Warn("visible warn", nil)
	logger.Error("visible error", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug output should be suppressed without verbose")
	}
	for _, want := range []string{"visible info", "visible warn", "visible error", "count=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("trace detail", map[string]interface{}{"title": "x"})

	if !strings.Contains(buf.String(), "trace detail") {
		t.Error("verbose logger should emit debug output")
	}
}

func TestLogger_NilFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Info("no fields", nil)

	if !strings.Contains(buf.String(), "no fields") {
		t.Error("nil fields should log the message")
	}
}

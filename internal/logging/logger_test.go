package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "api")
	logger.Print("hello")

	line := buf.String()
	if !strings.HasPrefix(line, "[api] ") {
		t.Errorf("Expected [api] prefix, got %q", line)
	}
	if !strings.HasSuffix(line, "hello\n") {
		t.Errorf("Expected message at end of line, got %q", line)
	}
}

func TestNewWithWriter_NoComponent(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "").Print("x")

	if strings.HasPrefix(buf.String(), "[") {
		t.Errorf("Expected no prefix, got %q", buf.String())
	}
}

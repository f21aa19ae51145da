// ABOUTME: Tests for logger construction.
// ABOUTME: Verifies level parsing and the warn fallback.

package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Debug("loaded memos", "count", 3)
	assert.Contains(t, buf.String(), "loaded memos")
	assert.Contains(t, buf.String(), "count=3")
}

func TestNewUnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty")
	assert.Equal(t, log.WarnLevel, l.GetLevel())

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

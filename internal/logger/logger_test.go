package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOutputCapturesLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetLevel("info")

	Info("authenticated account %d", 7)
	Error("check-in failed for account %d", 8)

	out := buf.String()
	assert.Contains(t, out, "authenticated account 7")
	assert.Contains(t, out, "check-in failed for account 8")
	assert.Contains(t, out, "ERROR")
}

package tripn

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackLoggerFormatsCaretAndMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewFallbackLogger(&buf)

	log.Log(LevelError, Fields{"caret": Caret{Document: "doc.ttl", Line: 3, Col: 5}}, "bad token %q", ":")

	assert.Equal(t, "doc.ttl:3:5: bad token \":\"\n", buf.String())
}

func TestFallbackLoggerWithoutCaretUsesPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	log := NewFallbackLogger(&buf)

	log.Log(LevelWarning, Fields{}, "no caret here")

	assert.Equal(t, "-:0:0: no caret here\n", buf.String())
}

func TestNewLogrusLoggerDefaultsToStderrWhenNilGiven(t *testing.T) {
	log := NewLogrusLogger(nil)
	assert.NotNil(t, log)
	log.Log(LevelDebug, Fields{"k": "v"}, "hello")
}

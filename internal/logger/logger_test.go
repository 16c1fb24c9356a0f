package logger

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prevWriter, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevWriter)
		log.SetFlags(prevFlags)
		SetLevel(LevelInfo)
	})
	fn()
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("loud"))
}

func TestFormatFields_SortedKeys(t *testing.T) {
	out := formatFields(Fields{"b": 2, "a": "x", "c": 1.5})
	assert.Equal(t, "{a=x, b=2, c=1.50}", out)
	assert.Equal(t, "", formatFields(nil))
}

func TestLevelThreshold(t *testing.T) {
	out := captureOutput(t, func() {
		SetLevel(LevelWarn)
		Debug("debug message", nil)
		Info("info message", nil)
		Warn("warn message", Fields{"k": "v"})
		Error("error message", errors.New("boom"), nil)
	})

	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN] warn message {k=v}")
	assert.Contains(t, out, "[ERROR] error message: boom")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/zero-shot", nil)
	c.Set("request_id", "req-1")

	fields := WithContext(c)
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/zero-shot", fields["path"])
}

package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	lines []string
}

func (r *recorder) record(level, message string, keyvals ...any) {
	r.lines = append(r.lines, fmt.Sprintf("%s %s %v", level, message, keyvals))
}

func (r *recorder) Log(message string, keyvals ...any)   { r.record("log", message, keyvals...) }
func (r *recorder) Debug(message string, keyvals ...any) { r.record("debug", message, keyvals...) }
func (r *recorder) Info(message string, keyvals ...any)  { r.record("info", message, keyvals...) }
func (r *recorder) Warn(message string, keyvals ...any)  { r.record("warn", message, keyvals...) }
func (r *recorder) Error(message string, keyvals ...any) { r.record("error", message, keyvals...) }
func (r *recorder) Fatal(message string, keyvals ...any) { r.record("fatal", message, keyvals...) }

func TestNoopBeforeInit(t *testing.T) {
	Reset()
	assert.NotPanics(t, func() {
		Info("dropped")
		Debug("dropped", "key", 1)
	})
}

func TestDispatchToAllBackends(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Init(a, b)
	t.Cleanup(Reset)

	Log("plain")
	Debug("debug", "n", 1)
	Info("info")
	Warn("warn")
	Error("error", "err", "boom")

	want := []string{
		"log plain []",
		"debug debug [n 1]",
		"info info []",
		"warn warn []",
		"error error [err boom]",
	}
	assert.Equal(t, want, a.lines)
	assert.Equal(t, want, b.lines)
}

func TestResetDetachesBackends(t *testing.T) {
	r := &recorder{}
	Init(r)
	Reset()

	Info("after reset")
	assert.Empty(t, r.lines)
}

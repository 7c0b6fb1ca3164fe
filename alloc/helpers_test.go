package alloc

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/stackcore"
	"github.com/wippyai/stackcore/diag"
)

func observedReporter(t *testing.T) (*diag.Reporter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return diag.New(zap.New(core), diag.WithFatalHook(zapcore.WriteThenGoexit)), logs
}

// returns reports whether fn returned normally; a fatal report ends fn's
// goroutine through runtime.Goexit.
func returns(fn func()) bool {
	done := make(chan bool, 1)
	go func() {
		ok := false
		defer func() { done <- ok }()
		fn()
		ok = true
	}()
	return <-done
}

// lenientReporter returns from Fatal, which a real reporter must never do.
type lenientReporter struct {
	fatals []string
}

var _ stackcore.Reporter = (*lenientReporter)(nil)

func (r *lenientReporter) Trace(string, ...any)                       {}
func (r *lenientReporter) SystemError(stackcore.Code, string, ...any) {}
func (r *lenientReporter) Error(stackcore.Code, string, ...any)       {}
func (r *lenientReporter) Fatal(_ stackcore.Code, f string, _ ...any) { r.fatals = append(r.fatals, f) }

package diag

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/stackcore"
)

// Reporter implements stackcore.Reporter on top of zap.
//
// Messages use printf-style formats; a trailing newline in the format is
// dropped since zap terminates every entry itself.
type Reporter struct {
	log *zap.SugaredLogger
}

var _ stackcore.Reporter = (*Reporter)(nil)

// Option customizes a Reporter.
type Option func(*zap.Logger) *zap.Logger

// WithFatalHook replaces the action taken after a fatal entry is written.
// The default terminates the process with status 1. Tests use
// zapcore.WriteThenGoexit to observe fatal reports without exiting.
func WithFatalHook(hook zapcore.CheckWriteHook) Option {
	return func(l *zap.Logger) *zap.Logger {
		return l.WithOptions(zap.WithFatalHook(hook))
	}
}

// New creates a reporter writing to l. A nil logger selects Logger().
func New(l *zap.Logger, opts ...Option) *Reporter {
	if l == nil {
		l = Logger()
	}
	for _, opt := range opts {
		l = opt(l)
	}
	return &Reporter{log: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// Default returns a reporter bound to Logger().
func Default() *Reporter {
	return New(nil)
}

// Trace emits a debug-level message.
func (r *Reporter) Trace(format string, args ...any) {
	r.log.Debugf(trimFormat(format), args...)
}

// SystemError reports a failed system call. EFAULT terminates.
func (r *Reporter) SystemError(code stackcore.Code, format string, args ...any) {
	if code == stackcore.EFAULT {
		r.fatal(code, format, args)
	}
	r.log.With(codeField(code)).Errorf(trimFormat(format), args...)
}

// Error reports a recoverable error. EFAULT terminates.
func (r *Reporter) Error(code stackcore.Code, format string, args ...any) {
	if code == stackcore.EFAULT {
		r.fatal(code, format, args)
	}
	r.log.With(codeField(code)).Warnf(trimFormat(format), args...)
}

// Fatal writes the message and terminates. It does not return.
func (r *Reporter) Fatal(code stackcore.Code, format string, args ...any) {
	r.fatal(code, format, args)
}

// Unreachable reports a broken internal invariant and terminates.
func (r *Reporter) Unreachable(msg string) {
	r.fatal(stackcore.EFAULT, "unreachable code reached: %s", []any{msg})
}

func (r *Reporter) fatal(code stackcore.Code, format string, args []any) {
	r.log.With(codeField(code)).Fatalf(trimFormat(format), args...)
	// zap never lets a fatal hook fall through to a no-op; this only runs
	// if a custom hook returned.
	os.Exit(1)
}

func codeField(code stackcore.Code) zap.Field {
	if code == 0 {
		return zap.Skip()
	}
	return zap.String("errno", code.Error())
}

func trimFormat(format string) string {
	return strings.TrimRight(format, "\n")
}

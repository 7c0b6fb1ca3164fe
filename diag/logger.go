package diag

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger behind Default.
// Unless replaced, it writes Info and above to stderr in console format.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = newStderrLogger(zapcore.InfoLevel)
		}
	})
	return logger
}

// SetLogger configures the logger behind Default.
// This must be called before any reporter is created.
func SetLogger(l *zap.Logger) {
	logger = l
}

func newStderrLogger(level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core, zap.AddCaller())
}

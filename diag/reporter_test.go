package diag

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/stackcore"
)

func newObserved(t *testing.T) (*Reporter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(core), WithFatalHook(zapcore.WriteThenGoexit)), logs
}

// runFatal runs fn on its own goroutine so a Goexit fatal hook ends only that
// goroutine. It reports whether fn returned normally.
func runFatal(fn func()) bool {
	returned := make(chan bool, 1)
	go func() {
		ok := false
		defer func() { returned <- ok }()
		fn()
		ok = true
	}()
	return <-returned
}

func TestReporter_Trace(t *testing.T) {
	rep, logs := newObserved(t)
	rep.Trace("alloc gstack: base %#x\n", 0x4000)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "alloc gstack: base 0x4000", entries[0].Message)
}

func TestReporter_SystemError(t *testing.T) {
	rep, logs := newObserved(t)
	rep.SystemError(stackcore.ENOMEM, "failed to allocate mmap memory of size %d\n", 4096)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "failed to allocate mmap memory of size 4096", entries[0].Message)
	assert.Equal(t, stackcore.ENOMEM.Error(), entries[0].ContextMap()["errno"])
}

func TestReporter_ErrorIsWarning(t *testing.T) {
	rep, logs := newObserved(t)
	rep.Error(stackcore.ENOMEM, "low map count")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestReporter_EFAULTEscalates(t *testing.T) {
	tests := []struct {
		name string
		call func(r *Reporter)
	}{
		{"system error", func(r *Reporter) { r.SystemError(stackcore.EFAULT, "bad address %p", nil) }},
		{"error", func(r *Reporter) { r.Error(stackcore.EFAULT, "bad address") }},
		{"unreachable", func(r *Reporter) { r.Unreachable("stack direction") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, logs := newObserved(t)
			returned := runFatal(func() { tt.call(rep) })

			assert.False(t, returned, "fatal report returned to caller")
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, zapcore.FatalLevel, logs.All()[0].Level)
		})
	}
}

func TestReporter_Fatal(t *testing.T) {
	rep, logs := newObserved(t)
	returned := runFatal(func() { rep.Fatal(stackcore.ENOMEM, "out of memory\n") })

	assert.False(t, returned)
	require.Equal(t, 1, logs.FilterMessage("out of memory").Len())
}

func TestReporter_FatalExitsProcess(t *testing.T) {
	if os.Getenv("DIAG_FATAL_CHILD") == "1" {
		Default().Fatal(stackcore.ENOMEM, "out of memory\n")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestReporter_FatalExitsProcess$")
	cmd.Env = append(os.Environ(), "DIAG_FATAL_CHILD=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.NotEqual(t, 0, exitErr.ExitCode())
	assert.Contains(t, string(out), "out of memory")
}

func TestTrimFormat(t *testing.T) {
	assert.Equal(t, "a", trimFormat("a\n"))
	assert.Equal(t, "a", trimFormat("a\n\n"))
	assert.Equal(t, "a\nb", trimFormat("a\nb"))
}

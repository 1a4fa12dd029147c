package logger_test

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ostafen/dwmwhat/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]logger.Level{
		"debug":   logger.DebugLevel,
		"INFO":    logger.InfoLevel,
		"Warning": logger.WarnLevel,
		"error":   logger.ErrorLevel,
		"off":     logger.OffLevel,
	} {
		got, err := logger.ParseLevel(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := logger.ParseLevel("verbose")
	require.Error(t, err)
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, logger.WarnLevel).WithPrefix("dwmwhat")

	l.Debug("hidden")
	l.Infof("hidden %d", 1)
	l.Warnf("skipping %s", "a.out")
	l.Error("boom")

	require.Equal(t, "[WARN] dwmwhat: skipping a.out\n[ERROR] dwmwhat: boom\n", buf.String())
}

func TestLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, logger.OffLevel)
	l.Error("nothing")
	require.Empty(t, buf.String())

	require.False(t, logger.Nop().Enabled(logger.ErrorLevel))
}

// exclusiveWriter counts Write calls that overlap with another one.
type exclusiveWriter struct {
	busy     atomic.Bool
	overlaps atomic.Int32
	lines    atomic.Int32
}

func (w *exclusiveWriter) Write(p []byte) (int, error) {
	if !w.busy.CompareAndSwap(false, true) {
		w.overlaps.Add(1)
		return len(p), nil
	}
	time.Sleep(50 * time.Microsecond)
	w.lines.Add(1)
	w.busy.Store(false)
	return len(p), nil
}

func TestLoggerWithPrefixSharesLock(t *testing.T) {
	var w exclusiveWriter
	parent := logger.New(&w, logger.InfoLevel)
	child := parent.WithPrefix("dwmwhat")

	var wg sync.WaitGroup
	for _, l := range []*logger.Logger{parent, child, parent.WithPrefix("other")} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Infof("line %d", i)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, w.overlaps.Load())
	require.EqualValues(t, 150, w.lines.Load())
}

package hooks

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/urlpix/urlpix/core"
)

func TestZapLoggerForwardsFields(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(obs))

	logger.Debug("builder.filter", "name", "blur")
	logger.Error("builder.render.error", "error", "boom")

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "builder.filter", entries[0].Message)
	assert.Equal(t, "blur", entries[0].ContextMap()["name"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestLoggingHookEvents(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	hook := NewLoggingHook(NewZapLogger(zap.New(obs)))

	hook.OnOperation(core.Operation{Name: "resize", Arg: "100x100"})
	hook.OnFilter(core.Filter{Name: "blur", Args: []string{"3"}})
	hook.OnRender("unsafe/100x100/a.jpg", nil)
	hook.OnRender("", errors.New("boom"))

	require.Equal(t, 4, logs.Len())
	assert.Equal(t, "builder.operation", logs.All()[0].Message)
	assert.Equal(t, "builder.render.error", logs.All()[3].Message)
}

func TestMetricsHookCounts(t *testing.T) {
	m := NewInMemoryMetrics()
	hook := NewMetricsHook(m)

	hook.OnOperation(core.Operation{Name: "resize"})
	hook.OnOperation(core.Operation{Name: "resize"})
	hook.OnFilter(core.Filter{Name: "blur"})
	hook.OnRender("p", nil)
	hook.OnRender("", errors.New("boom"))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.OperationCalls["resize"])
	assert.Equal(t, int64(1), snap.FilterCalls["blur"])
	assert.Equal(t, int64(2), snap.Renders)
	assert.Equal(t, int64(1), snap.RenderErrors)
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewInMemoryMetrics()
	m.RecordFilter("blur")

	snap := m.Snapshot()
	snap.FilterCalls["blur"] = 99

	assert.Equal(t, int64(1), m.Snapshot().FilterCalls["blur"])
}

func TestMetricsConcurrentUse(t *testing.T) {
	m := NewInMemoryMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordOperation("resize")
				m.RecordRender(nil)
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(1600), snap.OperationCalls["resize"])
	assert.Equal(t, int64(1600), snap.Renders)
}

func TestNewLoggerDefaultsBadLevel(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "nonsense"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

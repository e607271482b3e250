// Package hooks provides production-ready BuildHook and Logger implementations.
package hooks

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/urlpix/urlpix/core"
)

// ── Structured logger adapter ─────────────────────────────────────────────────

// ZapLogger wraps a zap.SugaredLogger to satisfy core.Logger.
type ZapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger creates a logger backed by zap.
func NewZapLogger(l *zap.Logger) *ZapLogger { return &ZapLogger{log: l.Sugar()} }

func (z *ZapLogger) Debug(msg string, fields ...interface{}) { z.log.Debugw(msg, fields...) }
func (z *ZapLogger) Info(msg string, fields ...interface{})  { z.log.Infow(msg, fields...) }
func (z *ZapLogger) Warn(msg string, fields ...interface{})  { z.log.Warnw(msg, fields...) }
func (z *ZapLogger) Error(msg string, fields ...interface{}) { z.log.Errorw(msg, fields...) }

// LogConfig controls the zap logger built by NewLogger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// NewLogger builds a production zap logger.  When File is set, output is
// rotated through lumberjack; otherwise it goes to stderr.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer
	if cfg.File != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}
	return zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)), nil
}

// ── Logging hook ──────────────────────────────────────────────────────────────

// LoggingHook logs each pipeline mutation and render.
type LoggingHook struct {
	logger core.Logger
}

// NewLoggingHook creates a LoggingHook.
func NewLoggingHook(l core.Logger) *LoggingHook { return &LoggingHook{logger: l} }

func (h *LoggingHook) OnOperation(op core.Operation) {
	h.logger.Debug("builder.operation",
		"name", op.Name,
		"arg", op.Arg,
	)
}

func (h *LoggingHook) OnFilter(f core.Filter) {
	h.logger.Debug("builder.filter",
		"name", f.Name,
		"args", f.Args,
	)
}

func (h *LoggingHook) OnRender(path string, err error) {
	if err != nil {
		h.logger.Error("builder.render.error",
			"error", err.Error(),
		)
		return
	}
	h.logger.Debug("builder.render",
		"path", path,
	)
}

// ── In-memory metrics collector ───────────────────────────────────────────────

// InMemoryMetrics accumulates build counters; safe for concurrent use.
type InMemoryMetrics struct {
	mu sync.RWMutex

	operationCalls map[string]int64
	filterCalls    map[string]int64

	renders      int64
	renderErrors int64
}

// NewInMemoryMetrics creates an empty metrics store.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		operationCalls: make(map[string]int64),
		filterCalls:    make(map[string]int64),
	}
}

func (m *InMemoryMetrics) RecordOperation(name string) {
	m.mu.Lock()
	m.operationCalls[name]++
	m.mu.Unlock()
}

func (m *InMemoryMetrics) RecordFilter(name string) {
	m.mu.Lock()
	m.filterCalls[name]++
	m.mu.Unlock()
}

func (m *InMemoryMetrics) RecordRender(err error) {
	atomic.AddInt64(&m.renders, 1)
	if err != nil {
		atomic.AddInt64(&m.renderErrors, 1)
	}
}

// Snapshot returns a copy of current metrics.
func (m *InMemoryMetrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		OperationCalls: make(map[string]int64, len(m.operationCalls)),
		FilterCalls:    make(map[string]int64, len(m.filterCalls)),
		Renders:        atomic.LoadInt64(&m.renders),
		RenderErrors:   atomic.LoadInt64(&m.renderErrors),
	}
	for k, v := range m.operationCalls {
		snap.OperationCalls[k] = v
	}
	for k, v := range m.filterCalls {
		snap.FilterCalls[k] = v
	}
	return snap
}

// MetricsSnapshot is an immutable point-in-time copy of metrics.
type MetricsSnapshot struct {
	OperationCalls map[string]int64
	FilterCalls    map[string]int64
	Renders        int64
	RenderErrors   int64
}

// ── Metrics hook ──────────────────────────────────────────────────────────────

// MetricsHook feeds builder events into an InMemoryMetrics store.
type MetricsHook struct {
	metrics *InMemoryMetrics
}

// NewMetricsHook creates a MetricsHook.
func NewMetricsHook(m *InMemoryMetrics) *MetricsHook { return &MetricsHook{metrics: m} }

func (h *MetricsHook) OnOperation(op core.Operation) { h.metrics.RecordOperation(op.Name) }
func (h *MetricsHook) OnFilter(f core.Filter)        { h.metrics.RecordFilter(f.Name) }
func (h *MetricsHook) OnRender(_ string, err error)  { h.metrics.RecordRender(err) }

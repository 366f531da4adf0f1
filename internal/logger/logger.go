// Package logger provides structured logging for the Pokédex tracker using zap.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/config"
)

// Logger wraps zap.SugaredLogger and owns the output it writes to.
type Logger struct {
	*zap.SugaredLogger
	close func()
}

// New creates a Logger from configuration. Output is "stdout", "stderr" or a
// file path; files are appended to and created when missing.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	level, err := levelOf(cfg.Level)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	sink, closeSink, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %q: %w", output, err)
	}

	terminal := output == "stdout" || output == "stderr"
	core := zapcore.NewCore(encoderFor(cfg.Format, terminal), sink, level)
	return fromCore(core, closeSink), nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return fromCore(zapcore.NewNopCore(), nil)
}

func fromCore(core zapcore.Core, closeFn func()) *Logger {
	if closeFn == nil {
		closeFn = func() {}
	}
	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{SugaredLogger: base.Sugar(), close: closeFn}
}

func levelOf(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return l, fmt.Errorf("invalid log level: %w", err)
	}
	return l, nil
}

// encoderFor returns a JSON encoder for "json" and a console encoder otherwise.
// Levels are colored only on a terminal stream.
func encoderFor(format string, terminal bool) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if terminal {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

// WithRequest tags entries with the HTTP request id.
func (l *Logger) WithRequest(requestID string) *Logger {
	return l.with("request_id", requestID)
}

// WithTrigger tags entries with what caused a catalog load.
func (l *Logger) WithTrigger(trigger string) *Logger {
	return l.with("trigger", trigger)
}

// WithSource tags entries with the catalog source being read.
func (l *Logger) WithSource(source string) *Logger {
	return l.with("source", source)
}

func (l *Logger) with(key string, value interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(key, value), close: l.close}
}

// Close flushes buffered entries and releases a file output.
func (l *Logger) Close() error {
	err := l.Sync()
	l.close()
	return err
}

// Package logging is the process-wide leveled logger used by the chart viewer and its data sources.
package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var levelNames = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
}

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var baseLogger = zap.New(newCore(zapcore.Lock(os.Stderr))).Sugar()

func newCore(ws zapcore.WriteSyncer) zapcore.Core {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	enc.EncodeCaller = nil
	return zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, level)
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	level.SetLevel(l)
}

// GetLogLevel returns the current global level.
func GetLogLevel() zapcore.Level { return level.Level() }

// DebugEnabled is a cheap guard for callers that build expensive debug output.
func DebugEnabled() bool { return level.Enabled(zapcore.DebugLevel) }

// useCore swaps the backing core and returns a restore func.
func useCore(c zapcore.Core) func() {
	saved := baseLogger
	baseLogger = zap.New(c).Sugar()
	return func() { baseLogger = saved }
}

// Messages without args are logged verbatim so literal % in pre-formatted text survives.
func logf(l zapcore.Level, format string, args ...interface{}) {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	switch l {
	case zapcore.DebugLevel:
		baseLogger.Debug(format)
	case zapcore.WarnLevel:
		baseLogger.Warn(format)
	case zapcore.ErrorLevel:
		baseLogger.Error(format)
	default:
		baseLogger.Info(format)
	}
}

func Debugf(format string, a ...interface{}) { logf(zapcore.DebugLevel, format, a...) }
func Infof(format string, a ...interface{})  { logf(zapcore.InfoLevel, format, a...) }
func Warnf(format string, a ...interface{})  { logf(zapcore.WarnLevel, format, a...) }
func Errorf(format string, a ...interface{}) { logf(zapcore.ErrorLevel, format, a...) }

// Sync flushes buffered entries; call before exit.
func Sync() { _ = baseLogger.Sync() }

// TimeTrack logs the elapsed time of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}

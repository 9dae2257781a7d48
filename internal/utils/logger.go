package utils

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	// ShowRaylibInfo promotes raylib's INFO trace lines from debug to info.
	ShowRaylibInfo bool
	ShowDebugUI    bool

	logLevel  = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger    *zap.SugaredLogger
	loggerMux sync.Mutex
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}

// ParseLogLevel accepts debug, info, warn or error in any case.
func ParseLogLevel(s string) (LogLevel, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	switch l {
	case zapcore.DebugLevel:
		return LevelDebug, nil
	case zapcore.InfoLevel:
		return LevelInfo, nil
	case zapcore.WarnLevel:
		return LevelWarn, nil
	}
	return LevelError, nil
}

// SetLevel changes the minimum level printed. It is safe to call at any time.
func SetLevel(level LogLevel) {
	logLevel.SetLevel(level.zapLevel())
}

// CurrentLevel returns the minimum level printed.
func CurrentLevel() LogLevel {
	switch logLevel.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.InfoLevel:
		return LevelInfo
	case zapcore.WarnLevel:
		return LevelWarn
	}
	return LevelError
}

// SetOutput replaces the log sink, e.g. with an observer core in tests.
func SetOutput(core zapcore.Core) {
	loggerMux.Lock()
	defer loggerMux.Unlock()
	logger = zap.New(core).Sugar()
}

func sugar() *zap.SugaredLogger {
	loggerMux.Lock()
	defer loggerMux.Unlock()
	if logger == nil {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

		config := zap.Config{
			Level:             logLevel,
			Encoding:          "console",
			EncoderConfig:     encoderConfig,
			OutputPaths:       []string{"stderr"},
			ErrorOutputPaths:  []string{"stderr"},
			DisableCaller:     true,
			DisableStacktrace: true,
		}

		zapLogger, err := config.Build()
		if err != nil {
			panic(err)
		}
		logger = zapLogger.Sugar()
	}
	return logger
}

func Info(format string, v ...interface{})  { sugar().Infof(format, v...) }
func Debug(format string, v ...interface{}) { sugar().Debugf(format, v...) }
func Warn(format string, v ...interface{})  { sugar().Warnf(format, v...) }
func Error(format string, v ...interface{}) { sugar().Errorf(format, v...) }

// Sync flushes buffered log entries.
func Sync() {
	_ = sugar().Sync()
}

// Enabled reports whether level would be printed.
func Enabled(level LogLevel) bool {
	return logLevel.Enabled(level.zapLevel())
}

func RaylibLogCallback(level int, text string) {
	const colorMagenta = "\033[35m"
	const colorReset = "\033[0m"
	formattedText := colorMagenta + "[RAYLIB] " + colorReset + text
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		Debug("%s", formattedText)
	case 3: // LOG_INFO
		if ShowRaylibInfo {
			Info("%s", formattedText)
		} else {
			Debug("%s", formattedText)
		}
	case 4: // LOG_WARNING
		Warn("%s", formattedText)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s", formattedText)
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	previous := CurrentLevel()
	core, logs := observer.New(zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return logLevel.Enabled(l)
	}))
	SetOutput(core)
	t.Cleanup(func() {
		SetLevel(previous)
		loggerMux.Lock()
		logger = nil
		loggerMux.Unlock()
	})
	return logs
}

func TestLevelFiltering(t *testing.T) {
	logs := observe(t)
	SetLevel(LevelWarn)

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "shown 3", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "shown 4", entries[1].Message)
}

func TestSetLevelDebug(t *testing.T) {
	logs := observe(t)
	SetLevel(LevelDebug)

	assert.Equal(t, LevelDebug, CurrentLevel())
	assert.True(t, Enabled(LevelDebug))
	Debug("frame %d", 7)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "frame 7", logs.All()[0].Message)

	SetLevel(LevelInfo)
	assert.False(t, Enabled(LevelDebug))
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug": LevelDebug,
		"INFO":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestRaylibLogCallbackMapsLevels(t *testing.T) {
	logs := observe(t)
	SetLevel(LevelWarn)

	RaylibLogCallback(3, "info line")
	RaylibLogCallback(4, "warning line")
	RaylibLogCallback(5, "error line")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "warning line")
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[1].Message, "error line")
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestRaylibInfoLines(t *testing.T) {
	logs := observe(t)
	previous := ShowRaylibInfo
	t.Cleanup(func() { ShowRaylibInfo = previous })
	SetLevel(LevelInfo)

	ShowRaylibInfo = false
	RaylibLogCallback(3, "GL: extensions")
	assert.Zero(t, logs.Len())

	ShowRaylibInfo = true
	RaylibLogCallback(3, "GL: extensions")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Contains(t, entries[0].Message, "GL: extensions")

	ShowRaylibInfo = false
	SetLevel(LevelDebug)
	RaylibLogCallback(3, "TEXTURE: loaded")
	entries = logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

// Package logging builds the zap logger used for diagnostics.
//
// Diagnostics never go to stdout; stdout carries only the report.
package logging

import (
	"io"

	"github.com/garethgeorge/exttally/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to w. The level is WARN unless cfg.Verbose is
// set, in which case it is DEBUG. Entries at ERROR and above carry the caller.
func New(cfg *config.Config, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	encNoCaller := enc
	encNoCaller.CallerKey = ""

	encWithCaller := enc
	encWithCaller.CallerKey = "caller"
	encWithCaller.EncodeCaller = zapcore.ShortCallerEncoder

	newEncoder := zapcore.NewConsoleEncoder
	if cfg.LogFormat == config.LogFormatJSON {
		newEncoder = zapcore.NewJSONEncoder
	}

	ws := zapcore.Lock(zapcore.AddSync(w))

	coreNoCaller := zapcore.NewCore(newEncoder(encNoCaller), ws,
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level && lvl < zapcore.ErrorLevel
		}))
	coreWithCaller := zapcore.NewCore(newEncoder(encWithCaller), ws,
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level && lvl >= zapcore.ErrorLevel
		}))

	return zap.New(zapcore.NewTee(coreNoCaller, coreWithCaller), zap.AddCaller())
}

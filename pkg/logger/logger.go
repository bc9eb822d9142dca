package logger

import (
	"aura_edu_backend/internal/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is a no-op until InitLogger runs, so packages can log from tests.
var Log = zap.NewNop()

// InitLogger 同时输出 JSON 文件日志（按大小滚动）与控制台日志
func InitLogger(cfg *config.Config) {
	level := resolveLevel(cfg.Log.Level, cfg.Server.Mode)
	encoderConfig := newEncoderConfig()

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level),
	}
	if cfg.Log.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotatingFile(cfg.Log)),
			level,
		))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).Named("aura-edu")
}

func resolveLevel(name, mode string) zapcore.Level {
	if name != "" {
		if lvl, err := zapcore.ParseLevel(name); err == nil {
			return lvl
		}
	}
	if mode == "debug" {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

func rotatingFile(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}

func newEncoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.EncodeDuration = zapcore.SecondsDurationEncoder
	return ec
}

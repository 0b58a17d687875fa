package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a global logger instance
var Logger *zap.Logger

// Options tunes the global logger beyond the environment defaults
type Options struct {
	// FilePath, when set, tees log output into a rotated file
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// Init initializes the global logger
func Init(env string) error {
	return InitWithOptions(env, Options{})
}

// InitWithOptions initializes the global logger, optionally writing to a rotated file
func InitWithOptions(env string, opts Options) error {
	config := buildConfig(env)

	base, err := config.Build()
	if err != nil {
		return err
	}

	if opts.FilePath != "" {
		base = base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore(config, opts))
		}))
	}

	Logger = base
	return nil
}

func buildConfig(env string) zap.Config {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config
}

// fileCore always writes JSON; color codes have no place in a log file
func fileCore(config zap.Config, opts Options) zapcore.Core {
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 50
	}
	maxBackups := opts.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}

	encCfg := config.EncoderConfig
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	})
	return zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), writer, config.Level)
}

// Sync flushes any buffered log entries
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Get returns the global logger instance
func Get() *zap.Logger {
	if Logger == nil {
		// Fallback to a basic logger if not initialized
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.New(zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stderr),
				zap.DebugLevel,
			))
		}
		return logger
	}
	return Logger
}

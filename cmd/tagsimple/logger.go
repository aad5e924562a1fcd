package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// buildLogger assembles the CLI logger: console output on stderr, plus
// a rotating JSON file when log.file is configured.
func buildLogger(cfg *viper.Viper) (*zap.Logger, error) {
	levelName := cfg.GetString(cfgKeyLogLevel)
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", levelName, err)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		level,
	)

	if path := cfg.GetString(cfgKeyLogFile); path != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.GetInt(cfgKeyLogMaxSize), // megabytes
			MaxBackups: cfg.GetInt(cfgKeyLogMaxBackups),
			MaxAge:     cfg.GetInt(cfgKeyLogMaxAge), // days
			Compress:   cfg.GetBool(cfgKeyLogCompress),
		})
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			fileWriter,
			level,
		)
		core = zapcore.NewTee(core, fileCore)
	}

	return zap.New(core), nil
}

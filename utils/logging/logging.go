// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package logging provides named structured loggers shared across the
// module. Components obtain a logger once at package init, e.g.
//
//	var logger = logging.Logger("store/localfs")
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.Mutex
	base *zap.SugaredLogger
)

// Logger returns a logger named after the component that owns it.
func Logger(name string) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	if base == nil {
		base = defaultLogger()
	}

	return base.Named(name)
}

// Configure rebuilds the shared logger with the given level and format
// ("json" or "console"). Loggers handed out before Configure keep their
// previous core; call it before any store is constructed.
func Configure(level string, format string) error {
	cfg := zap.NewDevelopmentConfig()
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	base = logger.Sugar()
	mu.Unlock()

	return nil
}

func defaultLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)

	if level, ok := os.LookupEnv("PODSTORE_LOG_LEVEL"); ok {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}

	return logger.Sugar()
}

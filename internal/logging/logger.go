// Package logging provides the shared logger used across the engine.
//
// The engine logs through logr.Logger backed by zap. Verbosity follows the
// usual V-level convention: 0 for operational messages, DEBUG for per-meal
// composition detail, TRACE for per-candidate scoring detail.
package logging

import (
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...) call sites.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// Log is the package-level logger. Components receive a logr.Logger by
// injection; Log is the fallback when none is provided.
var Log logr.Logger = logr.Discard()

// SetLogger replaces the package-level logger.
func SetLogger(l logr.Logger) {
	Log = l
}

// NewLogger builds a zap-backed logr.Logger. The verbosity argument accepts
// "info", "debug" or "trace"; unknown values fall back to "info". The
// LOG_FORMAT environment variable switches between "json" (default) and
// "console" encoding.
func NewLogger(verbosity string) logr.Logger {
	level := zapcore.InfoLevel
	switch strings.ToLower(verbosity) {
	case "debug":
		level = zapcore.Level(-DEBUG)
	case "trace":
		level = zapcore.Level(-TRACE)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	zl, err := cfg.Build()
	if err != nil {
		// Config above is static; Build only fails on invalid encoder setup.
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}

// NewTestLogger installs a console logger at trace verbosity as the
// package-level logger and returns it. Test suites call this once during
// setup so engine internals log through the test output.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard()
	}
	l := zapr.NewLogger(zl)
	SetLogger(l)
	return l
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package logger constructs the structured logger shared by the jlink
// command and library packages, and carries it in a context.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/creachadair/jlink/internal/buildinfo"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

// Field names attached to every entry of the global logger.
const (
	VersionKey   = "version"
	CommitKey    = "commit"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

var (
	once sync.Once

	// globalZap is kept for Sync.
	globalZap  *zap.Logger
	globalLogr *logr.Logger

	noop = logr.Discard()
)

// Get initializes the global logger, which writes JSON entries to stderr at
// the given minimum zap level, and returns it. Only the first call has any
// effect; later calls return the same logger.
func Get(level int8) *logr.Logger {
	once.Do(func() {
		globalZap = newZap(zapcore.Lock(os.Stderr), level).With(
			zap.String(VersionKey, buildinfo.Version),
			zap.String(CommitKey, buildinfo.Commit),
			zap.String(GoVersionKey, buildinfo.GoVersion()),
		)
		gl := zapr.NewLogger(globalZap)
		globalLogr = &gl
	})
	if globalLogr == nil {
		return &noop
	}
	return globalLogr
}

// New returns a logger that writes JSON entries to w at the given minimum
// zap level. It does not affect the global logger.
func New(w io.Writer, level int8) logr.Logger {
	return zapr.NewLogger(newZap(zapcore.AddSync(w), level))
}

func newZap(w zapcore.WriteSyncer, level int8) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.TimeKey = TimeStampKey
	enc.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		w,
		zap.NewAtomicLevelAt(zapcore.Level(level)),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// WithLogger returns a context carrying log.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger carried by ctx. Without one, it returns the
// global logger if Get has been called, or else a logger that discards.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	} else if globalLogr != nil {
		return globalLogr
	}
	return &noop
}

// Sync flushes buffered entries of the global logger.
func Sync() {
	if globalZap == nil {
		return
	}
	if err := globalZap.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError reports whether err is the usual complaint about
// syncing a pipe or terminal.
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF)
}

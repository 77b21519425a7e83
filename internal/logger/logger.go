// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the rent-pe-easy server and CLI.
//
// *Logger embeds zerolog.Logger, so the usual Debug/Info/Warn/Error/Fatal
// chain is available directly. Request-scoped loggers travel in the
// context: middleware attaches one with zerolog's WithContext and handlers
// read it back with FromRequest or FromContext.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Caller field name used by every logger built here.
const callerField = "func"

type Logger struct {
	zerolog.Logger
}

// NewLogger returns the server logger: JSON on stdout, debug level, with
// role, time and the calling function's full name on every entry.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role, zerolog.DebugLevel)
}

// NewClientLogger is like [NewLogger] but logs at info level to stderr,
// leaving stdout to command output.
func NewClientLogger(role string) *Logger {
	return newLogger(os.Stderr, role, zerolog.InfoLevel)
}

func newLogger(out io.Writer, role string, level zerolog.Level) *Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.CallerFieldName = callerField
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{
		zerolog.New(out).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithField returns a child logger that adds key=value to every entry.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}

// FromRequest returns the logger attached to the request context, or
// zerolog's default logger when none is attached.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

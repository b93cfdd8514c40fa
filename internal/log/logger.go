/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides the application's slog-based logging: a console
// handler (human one-line or JSON) plus an optional rotated file handler.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"katib/internal/version"

	// lumberjack is used only when file logging is enabled
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization. Values come directly or via
// environment variables:
//   - KTB_LOG_LEVEL=debug|info|warn|error
//   - KTB_LOG_FORMAT=console|json
//   - KTB_LOG_FILE=<path> (enables file logging with rotation)
type Options struct {
	Level  string
	Format string // "console" or "json"
	File   string // optional path for file logging (rotated)
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   *slog.Logger
)

// L returns the default application logger, initializing from env if needed.
func L() *slog.Logger {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	defaultLoggerMu.RLock()
	l = defaultLogger
	defaultLoggerMu.RUnlock()
	return l
}

// Init configures the global logger and sets slog.Default as well.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)

	var handlers []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handlers = append(handlers, slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	} else {
		handlers = append(handlers, &lineHandler{level: lvl, w: os.Stderr})
	}
	if strings.TrimSpace(opts.File) != "" {
		w := &lj.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}

	h := handlers[0]
	if len(handlers) > 1 {
		h = &multi{hs: handlers}
	}

	logger := slog.New(h).With(
		slog.String("app", "katib"),
		slog.String("ver", version.Version),
	)

	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
	slog.SetDefault(logger)
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:  getenv("KTB_LOG_LEVEL", "info"),
		Format: getenv("KTB_LOG_FORMAT", "console"),
		File:   os.Getenv("KTB_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// multi fans out records to several handlers.
type multi struct{ hs []slog.Handler }

func (m *multi) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multi) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multi) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		hs[i] = h.WithAttrs(attrs)
	}
	return &multi{hs: hs}
}

func (m *multi) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		hs[i] = h.WithGroup(name)
	}
	return &multi{hs: hs}
}

// lineHandler prints human-friendly one-line logs: ts level msg key=val...
type lineHandler struct {
	level  slog.Level
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	b := &strings.Builder{}
	b.Grow(256)
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(levelString(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	write := func(a slog.Attr) {
		b.WriteByte(' ')
		b.WriteString(prefix)
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(attrValueString(a.Value))
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	na := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	na = append(na, h.attrs...)
	na = append(na, attrs...)
	return &lineHandler{level: h.level, w: h.w, attrs: na, groups: append([]string(nil), h.groups...)}
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	ng := append(append([]string(nil), h.groups...), name)
	return &lineHandler{level: h.level, w: h.w, attrs: append([]slog.Attr(nil), h.attrs...), groups: ng}
}

func levelString(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return l.String()
	}
}

func attrValueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		return v.String()
	}
}

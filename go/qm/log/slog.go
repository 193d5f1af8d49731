/*
Copyright 2026 The QueryMesh Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var (
	logFormat string
	logLevel  string

	// structured is set once Init has installed a slog handler.
	structured atomic.Bool
)

// Init switches to structured logging when --log-fmt was set on fs.
func Init(fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	if f := fs.Lookup("log-fmt"); f == nil || !f.Changed {
		return nil
	}
	handler, err := NewHandler(os.Stderr, logFormat, logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))
	structured.Store(true)
	return nil
}

// NewHandler builds a slog handler writing the given format at the given
// minimum level.
func NewHandler(w io.Writer, format, level string) (slog.Handler, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{AddSource: true, Level: lvl}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "logfmt":
		return slog.NewTextHandler(w, opts), nil
	case "console":
		return tint.NewHandler(w, &tint.Options{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		}), nil
	default:
		return nil, fmt.Errorf("invalid log-fmt %q: expected json, logfmt or console", format)
	}
}

// isTerminal reports whether w is a terminal, so console output gets colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log-level %q: expected debug, info, warn or error", level)
	}
}

func logS(level slog.Level, msg string, args ...any) {
	if !structured.Load() {
		toGlog(level, msg, args...)
		return
	}
	logger := slog.Default()
	ctx := context.Background()
	if !logger.Enabled(ctx, level) {
		return
	}
	// skip runtime.Callers, logS and the exported wrapper
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), level, msg, pcs[0])
	record.Add(args...)
	_ = logger.Handler().Handle(ctx, record)
}

// Enabled reports whether a call at level would be emitted. Without structured
// logging, debug output is gated on glog -v=1.
func Enabled(level slog.Level) bool {
	if structured.Load() {
		return slog.Default().Enabled(context.Background(), level)
	}
	if level < slog.LevelInfo {
		return bool(glog.V(1))
	}
	return true
}

func toGlog(level slog.Level, msg string, args ...any) {
	const depth = 3
	args = append([]any{msg}, args...)
	switch {
	case level < slog.LevelInfo:
		if glog.V(1) {
			glog.InfoDepth(depth, args...)
		}
	case level < slog.LevelWarn:
		glog.InfoDepth(depth, args...)
	case level < slog.LevelError:
		glog.WarningDepth(depth, args...)
	default:
		glog.ErrorDepth(depth, args...)
	}
}

// DebugS logs at debug level.
func DebugS(msg string, args ...any) { logS(slog.LevelDebug, msg, args...) }

// InfoS logs at info level.
func InfoS(msg string, args ...any) { logS(slog.LevelInfo, msg, args...) }

// WarnS logs at warn level.
func WarnS(msg string, args ...any) { logS(slog.LevelWarn, msg, args...) }

// ErrorS logs at error level.
func ErrorS(msg string, args ...any) { logS(slog.LevelError, msg, args...) }

// SetLogger routes structured calls to logger until the returned func is
// called. Used by tests.
func SetLogger(logger *slog.Logger) func() {
	if logger == nil {
		return func() {}
	}
	prevEnabled := structured.Load()
	prevDefault := slog.Default()
	slog.SetDefault(logger)
	structured.Store(true)
	return func() {
		slog.SetDefault(prevDefault)
		structured.Store(prevEnabled)
	}
}

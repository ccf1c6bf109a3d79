// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging sets up structured logging for the tib services.
//
// The logger is built on log/slog: stderr by default (text for humans, JSON
// when requested), with an optional daily JSON log file alongside. Every
// entry carries a "service" attribute so aggregated logs stay filterable.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Config configures the logger. The zero value logs Info+ to stderr as text.
type Config struct {
	// Level is the minimum slog level to emit.
	Level slog.Level

	// LogDir enables file logging when set. Files are named
	// "{service}_{YYYY-MM-DD}.log" and always JSON.
	LogDir string

	// Service is stamped on every entry.
	Service string

	// JSON switches the stderr handler to JSON output.
	JSON bool
}

// Logger wraps slog with an owned log file handle.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New builds a Logger from config. Call Close when done if LogDir was set.
func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var stderrHandler slog.Handler
	if cfg.JSON {
		stderrHandler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		stderrHandler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := &Logger{}
	handler := stderrHandler
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0750); err == nil {
			service := cfg.Service
			if service == "" {
				service = "tib"
			}
			name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
			file, err := os.OpenFile(filepath.Join(cfg.LogDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
			if err == nil {
				logger.file = file
				handler = &multiHandler{handlers: []slog.Handler{
					stderrHandler,
					slog.NewJSONHandler(file, opts),
				}}
			}
		}
	}
	if cfg.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})
	}
	logger.Logger = slog.New(handler)
	return logger
}

// Close syncs and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log file: %w", err)
	}
	return l.file.Close()
}

// multiHandler fans out records to several slog handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

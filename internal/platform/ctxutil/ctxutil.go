// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/netinv/internal/platform/ctxkey"
	"github.com/taibuivan/netinv/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID, or "" when absent.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser returns a new context with the provided auth claims attached.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser retrieves the [*sec.AuthClaims], or nil for anonymous callers.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// # Log Correlation

// contextHandler adds the request ID and operator found in the record's
// context to every log record.
type contextHandler struct {
	slog.Handler
}

// NewContextHandler wraps next so that *Context logging calls carry
// "request_id" and "operator" attributes when the context has them.
func NewContextHandler(next slog.Handler) slog.Handler {
	return &contextHandler{Handler: next}
}

func (handler *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if id := GetRequestID(ctx); id != "" {
		record.AddAttrs(slog.String("request_id", id))
	}
	if claims := GetAuthUser(ctx); claims != nil {
		record.AddAttrs(slog.String("operator", claims.Operator))
	}
	return handler.Handler.Handle(ctx, record)
}

func (handler *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: handler.Handler.WithAttrs(attrs)}
}

func (handler *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: handler.Handler.WithGroup(name)}
}

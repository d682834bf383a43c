package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const sessionIDKey ctxKey = "sessionID"

// NewSessionID creates a new UUID identifying one betting session.
func NewSessionID() uuid.UUID {
	return uuid.New()
}

// WithSessionID returns a new context carrying the session ID.
func WithSessionID(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext extracts the session ID from the context, if present.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(sessionIDKey)
	if v == nil {
		return uuid.Nil, false
	}
	if id, ok := v.(uuid.UUID); ok {
		return id, true
	}
	return uuid.Nil, false
}

// FromContext returns a logger that includes the session_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := SessionIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeySessionID, id.String())
	}
	return slog.Default()
}

// Init builds a slog logger from the config, writing to w, and installs it
// as the process default.
func Init(cfg Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	log := slog.New(handler).With(
		AttrKeyService, cfg.ServiceName,
		AttrKeyVersion, cfg.Version,
		AttrKeyEnvironment, cfg.Environment,
	)
	slog.SetDefault(log)
	return log
}

// Package storage persists the relay toggle, logged submissions and the
// blacklist. Queries are written with '?' placeholders and rebound for the
// connected driver, so Postgres and SQLite share them.
package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/anonrelay/core/logger"
)

// Stores groups the relay repositories over one connection.
type Stores struct {
	Toggle    *Toggle
	Messages  *Messages
	Blacklist *Blacklist
}

// New builds all repositories over db.
func New(db *sqlx.DB) *Stores {
	return &Stores{
		Toggle:    &Toggle{db: db, now: time.Now},
		Messages:  &Messages{db: db, now: time.Now},
		Blacklist: &Blacklist{db: db, now: time.Now},
	}
}

// observe logs a finished query at debug level, or at error level when it failed.
func observe(ctx context.Context, op string, start time.Time, err error) {
	if err == nil && !logger.ShouldSampleDebug() {
		return
	}
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	logger.LogEvent(ctx, logger.DB, level, "db.query", attrs...)
}

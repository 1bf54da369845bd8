package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

const keyBotEnabled = "bot_enabled"

// Toggle is the global relay switch stored in the settings table.
type Toggle struct {
	db  *sqlx.DB
	now func() time.Time
}

// Enabled reports the stored switch. A missing row means disabled.
func (t *Toggle) Enabled(ctx context.Context) (enabled bool, err error) {
	start := time.Now()
	defer func() { observe(ctx, "toggle.get", start, err) }()

	var raw string
	err = t.db.GetContext(ctx, &raw, t.db.Rebind(`SELECT value FROM settings WHERE name = ?`), keyBotEnabled)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("read toggle: %w", err)
	}
	enabled, err = strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse toggle %q: %w", raw, err)
	}
	return enabled, nil
}

// SetEnabled upserts the switch. Writing the current value is a no-op in effect.
func (t *Toggle) SetEnabled(ctx context.Context, enabled bool) (err error) {
	start := time.Now()
	defer func() { observe(ctx, "toggle.set", start, err) }()

	_, err = t.db.ExecContext(ctx, t.db.Rebind(`
		INSERT INTO settings (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		keyBotEnabled, strconv.FormatBool(enabled), t.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("write toggle: %w", err)
	}
	return nil
}

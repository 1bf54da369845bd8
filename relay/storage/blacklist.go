package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Blacklist holds banned user ids.
type Blacklist struct {
	db  *sqlx.DB
	now func() time.Time
}

// IsBanned reports whether userID is on the blacklist.
func (b *Blacklist) IsBanned(ctx context.Context, userID int64) (banned bool, err error) {
	start := time.Now()
	defer func() { observe(ctx, "blacklist.check", start, err) }()

	var n int
	err = b.db.GetContext(ctx, &n, b.db.Rebind(`SELECT COUNT(*) FROM blacklist WHERE user_id = ?`), userID)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return n > 0, nil
}

// Ban adds userID. Banning twice succeeds; added is false the second time.
func (b *Blacklist) Ban(ctx context.Context, userID, bannedBy int64) (added bool, err error) {
	start := time.Now()
	defer func() { observe(ctx, "blacklist.ban", start, err) }()

	res, err := b.db.ExecContext(ctx, b.db.Rebind(`
		INSERT INTO blacklist (user_id, banned_by, created_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`),
		userID, bannedBy, b.now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("ban user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ban user: %w", err)
	}
	return n > 0, nil
}

// Unban removes userID. Removing an absent id succeeds; removed is false then.
func (b *Blacklist) Unban(ctx context.Context, userID int64) (removed bool, err error) {
	start := time.Now()
	defer func() { observe(ctx, "blacklist.unban", start, err) }()

	res, err := b.db.ExecContext(ctx, b.db.Rebind(`DELETE FROM blacklist WHERE user_id = ?`), userID)
	if err != nil {
		return false, fmt.Errorf("unban user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unban user: %w", err)
	}
	return n > 0, nil
}

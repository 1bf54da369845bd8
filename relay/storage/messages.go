package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Record is one logged anonymous submission.
type Record struct {
	ID          int64
	UserID      int64
	DisplayName string
	Text        string
	CreatedAt   time.Time
}

type recordRow struct {
	ID          int64  `db:"id"`
	UserID      int64  `db:"user_id"`
	DisplayName string `db:"display_name"`
	Text        string `db:"text"`
	CreatedAt   int64  `db:"created_at"`
}

func (r recordRow) record() Record {
	return Record{
		ID:          r.ID,
		UserID:      r.UserID,
		DisplayName: r.DisplayName,
		Text:        r.Text,
		CreatedAt:   time.UnixMilli(r.CreatedAt),
	}
}

// Messages is the submission log.
type Messages struct {
	db  *sqlx.DB
	now func() time.Time
}

// Insert stores a submission and returns it with id and timestamp filled.
func (m *Messages) Insert(ctx context.Context, userID int64, displayName, text string) (rec Record, err error) {
	start := time.Now()
	defer func() { observe(ctx, "messages.insert", start, err) }()

	row := recordRow{UserID: userID, DisplayName: displayName, Text: text, CreatedAt: m.now().UnixMilli()}
	err = m.db.QueryRowxContext(ctx, m.db.Rebind(`
		INSERT INTO messages (user_id, display_name, text, created_at)
		VALUES (?, ?, ?, ?) RETURNING id`),
		row.UserID, row.DisplayName, row.Text, row.CreatedAt,
	).Scan(&row.ID)
	if err != nil {
		return Record{}, fmt.Errorf("insert message: %w", err)
	}
	return row.record(), nil
}

// Latest returns up to n records, newest first.
func (m *Messages) Latest(ctx context.Context, n int) (out []Record, err error) {
	start := time.Now()
	defer func() { observe(ctx, "messages.latest", start, err) }()

	var rows []recordRow
	err = m.db.SelectContext(ctx, &rows, m.db.Rebind(`
		SELECT id, user_id, display_name, text, created_at
		FROM messages ORDER BY created_at DESC, id DESC LIMIT ?`), n)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	out = make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

// DeleteAll removes every record and returns how many were removed.
func (m *Messages) DeleteAll(ctx context.Context) (n int64, err error) {
	start := time.Now()
	defer func() { observe(ctx, "messages.delete_all", start, err) }()

	res, err := m.db.ExecContext(ctx, `DELETE FROM messages`)
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}
	return n, nil
}

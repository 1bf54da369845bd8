// Package conversation routes commands, button presses and free text to
// relay actions. It owns the per-user mode transitions and talks to the
// outside only through the interfaces declared here.
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/m3rciful/anonrelay/relay/menu"
	"github.com/m3rciful/anonrelay/relay/moderation"
	"github.com/m3rciful/anonrelay/relay/storage"
)

// ErrUnknownAction is returned by HandleAction for identifiers outside menu.Action.
var ErrUnknownAction = errors.New("conversation: unknown action")

// Source tells HandleAction how the action was triggered.
type Source int

const (
	FromCommand Source = iota
	FromButton
)

// Event is one inbound command, button press or text message.
type Event struct {
	UserID      int64
	ChatID      int64
	Private     bool
	DisplayName string
	Username    string
	Text        string
}

// Format selects how the gateway parses Outgoing.Text.
type Format int

const (
	Plain Format = iota
	Markdown
	MarkdownV2
)

// Outgoing is one message for the gateway. ThreadID 0 means no topic.
type Outgoing struct {
	ChatID   int64
	ThreadID int
	Text     string
	Format   Format
	Keyboard menu.Keyboard
}

// Messenger delivers outgoing messages.
type Messenger interface {
	Send(ctx context.Context, msg Outgoing) error
}

// Gate admits or refuses free-text submissions.
type Gate interface {
	Admit(ctx context.Context, userID int64) (moderation.Verdict, error)
}

// Toggle is the global enable switch.
type Toggle interface {
	Enabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
}

// MessageLog persists anonymous submissions.
type MessageLog interface {
	Insert(ctx context.Context, userID int64, displayName, text string) (storage.Record, error)
	Latest(ctx context.Context, n int) ([]storage.Record, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Blacklist edits the ban list.
type Blacklist interface {
	Ban(ctx context.Context, userID, bannedBy int64) (bool, error)
	Unban(ctx context.Context, userID int64) (bool, error)
}

// Target is a chat and optional forum topic.
type Target struct {
	ChatID   int64
	ThreadID int
}

// Settings is the static relay configuration.
type Settings struct {
	Admins      []int64
	Destination Target
	Feedback    Target
	Broadcast   Target
	Location    *time.Location
	LinksText   string
	Links       []menu.Link
}

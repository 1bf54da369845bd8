package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/anonrelay/core/logger"
	"github.com/m3rciful/anonrelay/relay/menu"
	"github.com/m3rciful/anonrelay/relay/moderation"
	"github.com/m3rciful/anonrelay/relay/session"
)

// Deps are the collaborators of a Dispatcher. Now defaults to time.Now.
type Deps struct {
	Settings  Settings
	Sessions  *session.Store
	Gate      Gate
	Toggle    Toggle
	Messages  MessageLog
	Blacklist Blacklist
	Messenger Messenger
	Now       func() time.Time
}

// Dispatcher handles relay events. Calls for one user must not overlap.
type Dispatcher struct {
	Deps
	admins map[int64]struct{}
}

// New builds a Dispatcher. The admin set is copied and never changes afterwards.
func New(d Deps) *Dispatcher {
	if d.Sessions == nil {
		d.Sessions = session.NewStore()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Settings.Location == nil {
		d.Settings.Location = time.UTC
	}
	admins := make(map[int64]struct{}, len(d.Settings.Admins))
	for _, id := range d.Settings.Admins {
		admins[id] = struct{}{}
	}
	return &Dispatcher{Deps: d, admins: admins}
}

// IsAdmin reports admin set membership.
func (d *Dispatcher) IsAdmin(userID int64) bool {
	_, ok := d.admins[userID]
	return ok
}

// HandleText interprets free text according to the sender's pending mode.
// Text outside private chats is ignored.
func (d *Dispatcher) HandleText(ctx context.Context, ev Event) error {
	if !ev.Private {
		return nil
	}

	mode := d.Sessions.Consume(ev.UserID)
	if mode == session.ModeBanWaiting {
		return d.consumeBanTarget(ctx, ev)
	}

	verdict, err := d.Gate.Admit(ctx, ev.UserID)
	if err != nil {
		d.logText(ctx, mode, verdict, err)
		return d.reply(ctx, ev, textTryLater, Plain, nil)
	}
	switch verdict {
	case moderation.Disabled:
		d.logText(ctx, mode, verdict, nil)
		return d.reply(ctx, ev, textDisabledNotice, Markdown, nil)
	case moderation.Banned:
		d.logText(ctx, mode, verdict, nil)
		return d.reply(ctx, ev, textBannedNotice, Plain, nil)
	}

	switch mode {
	case session.ModeAnon:
		err = d.relayAnon(ctx, ev)
	case session.ModeFeedback:
		err = d.relayFeedback(ctx, ev)
	default:
		err = d.reply(ctx, ev, textMenu, Plain, menu.MainMenu())
	}
	d.logText(ctx, mode, verdict, err)
	return err
}

func (d *Dispatcher) relayAnon(ctx context.Context, ev Event) error {
	rec, err := d.Messages.Insert(ctx, ev.UserID, ev.DisplayName, ev.Text)
	if err != nil {
		logger.LogEvent(ctx, logger.Relay, slog.LevelError, "relay.persist_failed",
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return d.reply(ctx, ev, textTryLater, Plain, nil)
	}
	dest := d.Settings.Destination
	if err := d.Messenger.Send(ctx, Outgoing{ChatID: dest.ChatID, ThreadID: dest.ThreadID, Text: ev.Text}); err != nil {
		return fmt.Errorf("forward message %d: %w", rec.ID, err)
	}
	return d.reply(ctx, ev, textAnonSent, Plain, nil)
}

func (d *Dispatcher) relayFeedback(ctx context.Context, ev Event) error {
	dest := d.Settings.Feedback
	out := Outgoing{
		ChatID:   dest.ChatID,
		ThreadID: dest.ThreadID,
		Text:     formatFeedback(ev, d.Now().In(d.Settings.Location)),
		Format:   MarkdownV2,
	}
	if err := d.Messenger.Send(ctx, out); err != nil {
		return fmt.Errorf("send feedback: %w", err)
	}
	return d.reply(ctx, ev, textFeedbackSent, Plain, nil)
}

// consumeBanTarget runs with the mode already taken; it restores ban_waiting
// only when the input is not an identifier.
func (d *Dispatcher) consumeBanTarget(ctx context.Context, ev Event) error {
	if !d.IsAdmin(ev.UserID) {
		d.logDenied(ctx, menu.ActionBan)
		return d.reply(ctx, ev, textNotAuthorized, Plain, nil)
	}
	target, ok := parseUserID(ev.Text)
	if !ok {
		d.Sessions.SetMode(ev.UserID, session.ModeBanWaiting)
		return d.reply(ctx, ev, textInvalidID, Plain, nil)
	}
	return d.ban(ctx, ev, target)
}

// HandleMedia answers non-text messages in private chats. Session mode is untouched.
func (d *Dispatcher) HandleMedia(ctx context.Context, ev Event, sticker bool) error {
	if !ev.Private {
		return nil
	}
	if sticker {
		return d.reply(ctx, ev, textStickers, Plain, nil)
	}
	return d.reply(ctx, ev, textTextOnly, Plain, nil)
}

func (d *Dispatcher) reply(ctx context.Context, ev Event, text string, f Format, kb menu.Keyboard) error {
	if err := d.Messenger.Send(ctx, Outgoing{ChatID: ev.ChatID, Text: text, Format: f, Keyboard: kb}); err != nil {
		return fmt.Errorf("reply: %w", err)
	}
	return nil
}

func (d *Dispatcher) logText(ctx context.Context, mode session.Mode, v moderation.Verdict, err error) {
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("session_mode", mode.String()),
		slog.String("verdict", v.String()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	logger.LogEvent(ctx, logger.Relay, level, "relay.text", attrs...)
}

func (d *Dispatcher) logDenied(ctx context.Context, a menu.Action) {
	logger.LogEvent(ctx, logger.Admin, slog.LevelInfo, "admin.denied",
		slog.String("status", "denied"),
		slog.String("action", a.String()),
	)
}

// parseUserID accepts a positive decimal Telegram user id.
func parseUserID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/anonrelay/core/logger"
	"github.com/m3rciful/anonrelay/relay/menu"
	"github.com/m3rciful/anonrelay/relay/session"
)

// HandleAction runs action for ev.UserID. args is the command argument
// text; buttons pass "". Admin-only actions from other users get a
// rejection and change nothing.
func (d *Dispatcher) HandleAction(ctx context.Context, ev Event, action menu.Action, src Source, args string) error {
	if action.RequiresAdmin() && !d.IsAdmin(ev.UserID) {
		d.logDenied(ctx, action)
		return d.reply(ctx, ev, textNotAuthorized, Plain, nil)
	}

	switch action {
	case menu.ActionStart:
		d.Sessions.Clear(ev.UserID)
		return d.reply(ctx, ev, textGreeting, Markdown, menu.MainMenu())
	case menu.ActionHelp:
		return d.reply(ctx, ev, textHelp, Markdown, nil)
	case menu.ActionBackToMain:
		d.Sessions.Clear(ev.UserID)
		return d.reply(ctx, ev, textMenu, Plain, menu.MainMenu())
	case menu.ActionAnon:
		d.Sessions.SetMode(ev.UserID, session.ModeAnon)
		return d.reply(ctx, ev, textAnonPrompt, Plain, nil)
	case menu.ActionFeedback:
		d.Sessions.SetMode(ev.UserID, session.ModeFeedback)
		return d.reply(ctx, ev, textFeedbackPrompt, Plain, nil)
	case menu.ActionAdmin:
		return d.reply(ctx, ev, textAdminPanel, Plain, menu.AdminPanel())
	case menu.ActionOn, menu.ActionOff:
		return d.setToggle(ctx, ev, action == menu.ActionOn)
	case menu.ActionStatus:
		return d.status(ctx, ev)
	case menu.ActionFetch:
		return d.fetch(ctx, ev)
	case menu.ActionClean:
		return d.clean(ctx, ev)
	case menu.ActionBan:
		if src == FromButton {
			d.Sessions.SetMode(ev.UserID, session.ModeBanWaiting)
			return d.reply(ctx, ev, textBanPrompt, Plain, nil)
		}
		target, ok := parseUserID(args)
		if !ok {
			return d.reply(ctx, ev, textBanUsage, Plain, nil)
		}
		return d.ban(ctx, ev, target)
	case menu.ActionUnban:
		target, ok := parseUserID(args)
		if !ok {
			return d.reply(ctx, ev, textUnbanUsage, Plain, nil)
		}
		return d.unban(ctx, ev, target)
	case menu.ActionLinks:
		return d.postLinks(ctx, ev)
	}
	return fmt.Errorf("%w: %s", ErrUnknownAction, action)
}

func (d *Dispatcher) setToggle(ctx context.Context, ev Event, enabled bool) error {
	action := menu.ActionOff
	text := textDisabled
	if enabled {
		action, text = menu.ActionOn, textEnabled
	}
	if err := d.Toggle.SetEnabled(ctx, enabled); err != nil {
		d.logAdmin(ctx, action, err)
		return d.reply(ctx, ev, textTryLater, Plain, nil)
	}
	d.logAdmin(ctx, action, nil)
	return d.reply(ctx, ev, text, Markdown, nil)
}

func (d *Dispatcher) status(ctx context.Context, ev Event) error {
	label := labelDisabled
	on, err := d.Toggle.Enabled(ctx)
	if err != nil {
		d.logAdmin(ctx, menu.ActionStatus, err)
	} else if on {
		label = labelEnabled
	}
	return d.reply(ctx, ev, fmt.Sprintf(textStatus, label), Markdown, nil)
}

func (d *Dispatcher) fetch(ctx context.Context, ev Event) error {
	recs, err := d.Messages.Latest(ctx, fetchLimit)
	d.logAdmin(ctx, menu.ActionFetch, err, slog.Int("count", len(recs)))
	if err != nil {
		return d.reply(ctx, ev, textTryLater, Plain, nil)
	}
	if len(recs) == 0 {
		return d.reply(ctx, ev, textFetchEmpty, Plain, nil)
	}

	var b strings.Builder
	b.WriteString(textFetchHeader)
	for i, r := range recs {
		name := r.DisplayName
		if name == "" {
			name = "unknown"
		}
		fmt.Fprintf(&b, "\n\n%d. %s (%d) · %s\n%s",
			i+1, name, r.UserID,
			r.CreatedAt.In(d.Settings.Location).Format("2006-01-02 15:04"),
			r.Text,
		)
	}
	return d.reply(ctx, ev, b.String(), Plain, nil)
}

func (d *Dispatcher) clean(ctx context.Context, ev Event) error {
	n, err := d.Messages.DeleteAll(ctx)
	d.logAdmin(ctx, menu.ActionClean, err, slog.Int64("count", n))
	if err != nil {
		return d.reply(ctx, ev, textTryLater, Plain, nil)
	}
	return d.reply(ctx, ev, fmt.Sprintf(textCleaned, n), Plain, nil)
}

// ban is shared by /ban and the ban_waiting text path. Already banned ids
// get the same confirmation.
func (d *Dispatcher) ban(ctx context.Context, ev Event, target int64) error {
	added, err := d.Blacklist.Ban(ctx, target, ev.UserID)
	d.logAdmin(ctx, menu.ActionBan, err, slog.Int64("target_id", target), slog.Bool("added", added))
	if err != nil {
		return d.reply(ctx, ev, textTryLater, Plain, nil)
	}
	return d.reply(ctx, ev, fmt.Sprintf(textBanned, target), Plain, nil)
}

func (d *Dispatcher) unban(ctx context.Context, ev Event, target int64) error {
	removed, err := d.Blacklist.Unban(ctx, target)
	d.logAdmin(ctx, menu.ActionUnban, err, slog.Int64("target_id", target), slog.Bool("removed", removed))
	if err != nil {
		return d.reply(ctx, ev, textTryLater, Plain, nil)
	}
	return d.reply(ctx, ev, fmt.Sprintf(textUnbanned, target), Plain, nil)
}

func (d *Dispatcher) postLinks(ctx context.Context, ev Event) error {
	dest := d.Settings.Broadcast
	if dest.ChatID == 0 {
		return d.reply(ctx, ev, textLinksNoDest, Plain, nil)
	}
	err := d.Messenger.Send(ctx, Outgoing{
		ChatID:   dest.ChatID,
		ThreadID: dest.ThreadID,
		Text:     d.Settings.LinksText,
		Keyboard: menu.LinkButtons(d.Settings.Links),
	})
	d.logAdmin(ctx, menu.ActionLinks, err)
	if err != nil {
		return d.reply(ctx, ev, textLinksFailed, Plain, nil)
	}
	return d.reply(ctx, ev, textLinksSent, Plain, nil)
}

func (d *Dispatcher) logAdmin(ctx context.Context, a menu.Action, err error, extra ...slog.Attr) {
	level := slog.LevelInfo
	attrs := append([]slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("action", a.String()),
	}, extra...)
	if err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	logger.LogEvent(ctx, logger.Admin, level, "admin.action", attrs...)
}

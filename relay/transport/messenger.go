// Package transport connects the conversation dispatcher to Telegram.
package transport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/anonrelay/core/logger"
	"github.com/m3rciful/anonrelay/core/telegram/keyboard"
	"github.com/m3rciful/anonrelay/core/telegram/middleware"
	"github.com/m3rciful/anonrelay/core/telegram/netutil"
	"github.com/m3rciful/anonrelay/relay/conversation"
	"github.com/m3rciful/anonrelay/relay/menu"

	tele "gopkg.in/telebot.v4"
)

// Sender is the part of *tele.Bot the messenger needs.
type Sender interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

// Messenger sends conversation output through a telebot bot.
type Messenger struct {
	bot Sender
}

var _ conversation.Messenger = (*Messenger)(nil)

// NewMessenger wraps bot.
func NewMessenger(bot Sender) *Messenger {
	return &Messenger{bot: bot}
}

// Send delivers msg once. Failures are logged with the token redacted.
func (m *Messenger) Send(ctx context.Context, msg conversation.Outgoing) error {
	opts := &tele.SendOptions{
		ThreadID:    msg.ThreadID,
		ParseMode:   parseMode(msg.Format),
		ReplyMarkup: Markup(msg.Keyboard),
	}
	if _, err := m.bot.Send(tele.ChatID(msg.ChatID), msg.Text, opts); err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelError, "send.failed",
			slog.String("status", "fail"),
			slog.Int64("target_id", msg.ChatID),
			slog.String("err_code", netutil.Classify(err)),
			slog.String("err", logger.SanitizeLimit(netutil.RedactToken(err), 256)),
		)
		return fmt.Errorf("send to %d: %s", msg.ChatID, netutil.RedactToken(err))
	}
	if c, ok := updateFrom(ctx); ok {
		middleware.CountMessage(c, len(msg.Keyboard) > 0)
	}
	return nil
}

func parseMode(f conversation.Format) tele.ParseMode {
	switch f {
	case conversation.Markdown:
		return tele.ModeMarkdown
	case conversation.MarkdownV2:
		return tele.ModeMarkdownV2
	}
	return tele.ModeDefault
}

// Markup converts a menu keyboard into inline markup. Action buttons carry
// the action identifier as plain callback data.
func Markup(kb menu.Keyboard) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(kb))
	for _, row := range kb {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				btns = append(btns, keyboard.InlineBtn{Text: b.Label, URL: b.URL})
				continue
			}
			btns = append(btns, keyboard.InlineBtn{Text: b.Label, Data: b.Action.String()})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineButtonsRows(rows...)
}

type updateKey struct{}

func withUpdate(ctx context.Context, c tele.Context) context.Context {
	return context.WithValue(ctx, updateKey{}, c)
}

func updateFrom(ctx context.Context) (tele.Context, bool) {
	c, ok := ctx.Value(updateKey{}).(tele.Context)
	return c, ok
}

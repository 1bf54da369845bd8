package transport

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m3rciful/anonrelay/core/logger"
	coretelegram "github.com/m3rciful/anonrelay/core/telegram"
	"github.com/m3rciful/anonrelay/core/telegram/commands"
	tghelpers "github.com/m3rciful/anonrelay/core/telegram/helpers"
	"github.com/m3rciful/anonrelay/core/telegram/ui"
	"github.com/m3rciful/anonrelay/relay/conversation"
	"github.com/m3rciful/anonrelay/relay/menu"

	tele "gopkg.in/telebot.v4"
)

// Dispatcher is the conversation surface the Telegram handlers drive.
type Dispatcher interface {
	HandleAction(ctx context.Context, ev conversation.Event, action menu.Action, src conversation.Source, args string) error
	HandleText(ctx context.Context, ev conversation.Event) error
	HandleMedia(ctx context.Context, ev conversation.Event, sticker bool) error
}

// Handlers adapts telebot updates into conversation events.
type Handlers struct {
	d Dispatcher
}

var _ ui.FallbackProvider = (*Handlers)(nil)

// NewHandlers wraps d.
func NewHandlers(d Dispatcher) *Handlers {
	return &Handlers{d: d}
}

type commandDef struct {
	action      menu.Action
	description string
	aliases     []string
}

var commandDefs = []commandDef{
	{menu.ActionStart, "Open the main menu", []string{"menu"}},
	{menu.ActionHelp, "How to use the bot", nil},
	{menu.ActionAdmin, "Admin panel", nil},
	{menu.ActionOn, "Enable relaying", nil},
	{menu.ActionOff, "Disable relaying", nil},
	{menu.ActionStatus, "Show relay status", nil},
	{menu.ActionFetch, "Show the latest messages", nil},
	{menu.ActionClean, "Delete all stored messages", nil},
	{menu.ActionBan, "Ban a user by id", nil},
	{menu.ActionUnban, "Unban a user by id", nil},
	{menu.ActionLinks, "Post the links message", nil},
}

// Register adds commands, a callback per action and the text fallback to reg.
// Admin commands stay out of the public command menu.
func (h *Handlers) Register(reg *coretelegram.Registry) error {
	var errs []error
	for _, def := range commandDefs {
		errs = append(errs, reg.RegisterCommand("/"+def.action.String(), commands.Command{
			Handler:     h.command(def.action),
			Description: def.description,
			AdminOnly:   def.action.RequiresAdmin(),
			Aliases:     def.aliases,
		}))
	}
	for _, a := range menu.Actions() {
		errs = append(errs, reg.RegisterCallback(a.String(), h.callback(a)))
	}
	reg.SetCallbackNotFound(h.UnknownCallback())
	reg.SetTextFallback(h.text)
	return errors.Join(errs...)
}

func (h *Handlers) command(a menu.Action) tele.HandlerFunc {
	return func(c tele.Context) error {
		_, args, _ := strings.Cut(strings.TrimSpace(c.Text()), " ")
		return h.d.HandleAction(requestContext(c), eventFrom(c), a, conversation.FromCommand, args)
	}
}

func (h *Handlers) callback(a menu.Action) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := requestContext(c)
		if err := c.Respond(); err != nil {
			logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "callback.ack_failed",
				slog.String("action", a.String()),
				slog.String("err", err.Error()),
			)
		}
		return h.d.HandleAction(ctx, eventFrom(c), a, conversation.FromButton, "")
	}
}

func (h *Handlers) text(c tele.Context) error {
	return h.d.HandleText(requestContext(c), eventFrom(c))
}

// UnknownCallback acknowledges stale or foreign buttons.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "This button is no longer available."})
	}
}

// Sticker answers stickers in private chats.
func (h *Handlers) Sticker() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.d.HandleMedia(requestContext(c), eventFrom(c), true)
	}
}

// NonText answers photos, voice notes and other media in private chats.
func (h *Handlers) NonText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.d.HandleMedia(requestContext(c), eventFrom(c), false)
	}
}

func requestContext(c tele.Context) context.Context {
	return withUpdate(tghelpers.BuildContext(c), c)
}

func eventFrom(c tele.Context) conversation.Event {
	userID, chatID := tghelpers.IDs(c)
	ev := conversation.Event{UserID: userID, ChatID: chatID, Text: c.Text()}
	if u := c.Sender(); u != nil {
		ev.DisplayName = strings.TrimSpace(u.FirstName + " " + u.LastName)
		ev.Username = u.Username
	}
	if ch := c.Chat(); ch != nil {
		ev.Private = ch.Type == tele.ChatPrivate
	} else {
		ev.ChatID = userID
	}
	return ev
}

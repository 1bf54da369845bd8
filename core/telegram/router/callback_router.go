package router

import (
	"log/slog"

	tg "github.com/m3rciful/anonrelay/core/telegram"
	"github.com/m3rciful/anonrelay/core/telegram/callbacks"
	"github.com/m3rciful/anonrelay/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute routes every inline-button press through the registry by its key.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		if c.Callback() == nil {
			return nil
		}
		key, _ := callbacks.Parse(c.Callback())
		name := "callback." + normalizeHandlerName(key)

		if cb, ok := reg.GetCallback(key); ok {
			return handleWithSummary(c, name, func() error { return cb(c) },
				slog.String("action", key))
		}

		fallback := opts.NotFound
		if fallback == nil {
			fallback = reg.CallbackNotFound()
		}
		return handleWithSummary(c, name, func() error {
			if fallback == nil {
				return c.Respond()
			}
			return fallback(c)
		}, slog.String("action", key), slog.String("cause", "not_found"))
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

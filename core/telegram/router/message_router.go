package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/anonrelay/core/telegram"
	"github.com/m3rciful/anonrelay/core/telegram/middleware"
	"github.com/m3rciful/anonrelay/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// nonTextEndpoints are message kinds answered by the NonText fallback.
var nonTextEndpoints = []string{
	tele.OnPhoto,
	tele.OnVideo,
	tele.OnAnimation,
	tele.OnAudio,
	tele.OnVoice,
	tele.OnVideoNote,
	tele.OnDocument,
	tele.OnLocation,
	tele.OnContact,
	tele.OnVenue,
	tele.OnPoll,
	tele.OnDice,
}

// TextRoutes handles plain text: aliases of registered commands first,
// then the registry's text fallback.
func TextRoutes(reg *tg.Registry) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if reg != nil {
			if text := c.Text(); strings.HasPrefix(text, "/") {
				if key, cmd, ok := reg.LookupCommand(text); ok {
					return handleWithSummary(c, "command."+normalizeHandlerName(key), func() error {
						return cmd.Handler(c)
					})
				}
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "text", func() error { return fb(c) })
			}
		}
		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}
	return []tg.Route{{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}}
}

// MediaRoutes answers stickers and other non-text messages through the fallback provider.
func MediaRoutes(fb ui.FallbackProvider) []tg.Route {
	if fb == nil {
		return nil
	}
	wrap := func(name string, h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(func(c tele.Context) error {
			return handleWithSummary(c, name, func() error { return h(c) })
		}))
	}
	routes := []tg.Route{{Endpoint: tele.OnSticker, Handler: wrap("sticker", fb.Sticker())}}
	nonText := wrap("non_text", fb.NonText())
	for _, ep := range nonTextEndpoints {
		routes = append(routes, tg.Route{Endpoint: ep, Handler: nonText})
	}
	return routes
}

package router

import (
	"log/slog"

	"github.com/m3rciful/anonrelay/core/logger"
	tg "github.com/m3rciful/anonrelay/core/telegram"
	"github.com/m3rciful/anonrelay/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes binds every registered command to its slash endpoint.
// Aliases are resolved by TextRoutes.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for name, def := range reg.Commands() {
		h := def.Handler
		handlerName := "command." + normalizeHandlerName(name)
		routes = append(routes, tg.Route{
			Endpoint: name,
			Handler: middleware.RecoverMiddleware(middleware.LoggerMiddleware(func(c tele.Context) error {
				return handleWithSummary(c, handlerName, func() error { return h(c) })
			})),
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("count", len(routes)),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)
	return routes
}

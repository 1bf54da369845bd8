package telegram

import (
	"github.com/m3rciful/anonrelay/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared chain: panic recovery, per-user
// serialization, receipt logging and reply counters.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "serialize_user", Use: middleware.SerializeUser()},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}
}

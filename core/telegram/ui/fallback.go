package ui

import tele "gopkg.in/telebot.v4"

// FallbackProvider supplies handlers for updates no command, callback or text route claims.
type FallbackProvider interface {
	UnknownCallback() tele.HandlerFunc
	Sticker() tele.HandlerFunc
	NonText() tele.HandlerFunc
}

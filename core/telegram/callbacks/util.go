package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits raw callback data into key and payload.
// Both telebot's "\f<unique>|<payload>" encoding and plain "<key>|<payload>" are accepted.
func ParseCallbackData(data string) (key, payload string) {
	data = strings.TrimPrefix(data, "\f")
	key, payload, _ = strings.Cut(data, "|")
	return strings.TrimSpace(key), payload
}

// Parse returns key and payload of cb, preferring cb.Unique when telebot already matched it.
func Parse(cb *tele.Callback) (key, payload string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	return ParseCallbackData(cb.Data)
}

// CallbackKey returns the routing key of the current callback.
func CallbackKey(c tele.Context) string {
	key, _ := Parse(c.Callback())
	return key
}

// CallbackPayload returns the part after '|' of the current callback.
func CallbackPayload(c tele.Context) string {
	_, payload := Parse(c.Callback())
	return payload
}

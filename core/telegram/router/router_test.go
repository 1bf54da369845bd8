package router

import (
	"errors"
	"testing"

	tg "github.com/m3rciful/anonrelay/core/telegram"
	"github.com/m3rciful/anonrelay/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func newBot(t *testing.T, routes ...[]tg.Route) *tele.Bot {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	if err != nil {
		t.Fatalf("offline bot: %v", err)
	}
	for _, group := range routes {
		for _, r := range group {
			bot.Handle(r.Endpoint, r.Handler)
		}
	}
	return bot
}

func message(text string) tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{
		Text:   text,
		Sender: &tele.User{ID: 7},
		Chat:   &tele.Chat{ID: 7, Type: tele.ChatPrivate},
	}}
}

func TestTextRoutesAliasThenFallback(t *testing.T) {
	reg := tg.NewRegistry()
	var hits []string
	_ = reg.RegisterCommand("/start", commands.Command{
		Description: "Start",
		Aliases:     []string{"menu"},
		Handler:     func(tele.Context) error { hits = append(hits, "start"); return nil },
	})
	reg.SetTextFallback(func(c tele.Context) error { hits = append(hits, "text:"+c.Text()); return nil })

	bot := newBot(t, TextRoutes(reg))
	bot.ProcessUpdate(message("/menu"))
	bot.ProcessUpdate(message("hello"))

	if len(hits) != 2 || hits[0] != "start" || hits[1] != "text:hello" {
		t.Fatalf("hits = %v", hits)
	}
}

func TestCommandRoutesPropagateErrors(t *testing.T) {
	reg := tg.NewRegistry()
	boom := errors.New("boom")
	_ = reg.RegisterCommand("/status", commands.Command{
		Description: "Status",
		Handler:     func(tele.Context) error { return boom },
	})
	routes := CommandRoutes(reg)
	if len(routes) != 1 || routes[0].Endpoint != "/status" {
		t.Fatalf("routes = %+v", routes)
	}
	bot := newBot(t)
	if err := routes[0].Handler(bot.NewContext(message("/status"))); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestCallbackRouteDispatchesByKey(t *testing.T) {
	reg := tg.NewRegistry()
	var got string
	_ = reg.RegisterCallback("anon", func(tele.Context) error { got = "anon"; return nil })
	route := CallbackRoute(reg, CallbackOptions{NotFound: func(tele.Context) error { got = "missing"; return nil }})

	bot := newBot(t)
	press := func(data string) {
		upd := tele.Update{ID: 2, Callback: &tele.Callback{
			ID:     "cb",
			Data:   data,
			Sender: &tele.User{ID: 7},
		}}
		if err := route.Handler(bot.NewContext(upd)); err != nil {
			t.Fatalf("callback %q: %v", data, err)
		}
	}

	press("\fanon")
	if got != "anon" {
		t.Fatalf("got %q, want anon", got)
	}
	press("nope")
	if got != "missing" {
		t.Fatalf("got %q, want missing", got)
	}
}

type stubFallback struct{ hits []string }

func (s *stubFallback) UnknownCallback() tele.HandlerFunc { return nil }
func (s *stubFallback) Sticker() tele.HandlerFunc {
	return func(tele.Context) error { s.hits = append(s.hits, "sticker"); return nil }
}
func (s *stubFallback) NonText() tele.HandlerFunc {
	return func(tele.Context) error { s.hits = append(s.hits, "media"); return nil }
}

func TestMediaRoutes(t *testing.T) {
	fb := &stubFallback{}
	bot := newBot(t, MediaRoutes(fb))

	sticker := message("")
	sticker.Message.Sticker = &tele.Sticker{}
	bot.ProcessUpdate(sticker)

	photo := message("")
	photo.Message.Photo = &tele.Photo{}
	bot.ProcessUpdate(photo)

	if len(fb.hits) != 2 || fb.hits[0] != "sticker" || fb.hits[1] != "media" {
		t.Fatalf("hits = %v", fb.hits)
	}
}

package telegram

import (
	"testing"

	"github.com/m3rciful/anonrelay/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegisterCommandValidation(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start", Aliases: []string{"menu"}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "again"}); err == nil {
		t.Fatal("duplicate command accepted")
	}
	if err := reg.RegisterCommand("status", commands.Command{Handler: noop, Description: "x"}); err == nil {
		t.Fatal("command without slash accepted")
	}
	if err := reg.RegisterCommand("/ban", commands.Command{Description: "x"}); err == nil {
		t.Fatal("command without handler accepted")
	}
}

func TestLookupCommandAliasAndArgs(t *testing.T) {
	reg := NewRegistry()
	_ = reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start", Aliases: []string{"menu"}})

	for _, in := range []string{"/start", "start", "/menu", "/start now"} {
		key, _, ok := reg.LookupCommand(in)
		if !ok || key != "/start" {
			t.Errorf("LookupCommand(%q) = %q, %v", in, key, ok)
		}
	}
	if _, _, ok := reg.LookupCommand("/nope"); ok {
		t.Fatal("unknown command resolved")
	}
}

func TestListCommandsHidesAdmin(t *testing.T) {
	reg := NewRegistry()
	_ = reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start"})
	_ = reg.RegisterCommand("/ban", commands.Command{Handler: noop, Description: "Ban", AdminOnly: true})
	_ = reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "Debug", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "start" {
		t.Fatalf("visible = %+v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 3 || all[0].Text != "ban" {
		t.Fatalf("all = %+v", all)
	}
}

func TestRegisterCallback(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("anon", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("anon", noop); err == nil {
		t.Fatal("duplicate callback accepted")
	}
	if _, ok := reg.GetCallback("anon"); !ok {
		t.Fatal("callback not found")
	}
	if got := reg.ListCallbacks(); len(got) != 1 || got[0] != "anon" {
		t.Fatalf("ListCallbacks = %v", got)
	}
	if reg.CallbackNotFound() == nil {
		t.Fatal("default not-found handler missing")
	}
}

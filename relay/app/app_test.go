package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/m3rciful/anonrelay/core/bootstrap"
	coreconfig "github.com/m3rciful/anonrelay/core/config"
	coredatabase "github.com/m3rciful/anonrelay/core/database"

	tele "gopkg.in/telebot.v4"
)

const sampleYAML = `
telegram:
  token: "123:abc"
database:
  driver: sqlite
  path: %s
relay:
  admins: [1, 2]
  destination_chat_id: -1001
  destination_thread_id: 7
  broadcast_chat_id: -1002
  timezone: Europe/Tallinn
  links:
    - label: Site
      url: https://example.org
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleConfig(t *testing.T) string {
	t.Helper()
	return writeConfig(t, fmt.Sprintf(sampleYAML, filepath.Join(t.TempDir(), "relay.db")))
}

func TestLoad(t *testing.T) {
	cfg, err := Load(sampleConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.RunMode != coreconfig.RunModeLongpoll || cfg.Database.Driver != coredatabase.DriverSQLite {
		t.Fatalf("core sections not decoded: %+v", cfg)
	}
	s := cfg.Relay.Settings()
	if len(s.Admins) != 2 || s.Destination.ThreadID != 7 {
		t.Fatalf("settings %+v", s)
	}
	if s.Feedback.ChatID != -1001 {
		t.Fatalf("feedback should default to the destination chat, got %d", s.Feedback.ChatID)
	}
	if s.Location == nil || s.Location.String() != "Europe/Tallinn" {
		t.Fatalf("location %v", s.Location)
	}
	if s.LinksText != defaultLinksText || len(s.Links) != 1 {
		t.Fatalf("links %q %+v", s.LinksText, s.Links)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADMINS", "10,20,30")
	t.Setenv("TOPIC_ID", "99")
	cfg, err := Load(sampleConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Relay.Admins) != 3 || cfg.Relay.Admins[2] != 30 || cfg.Relay.DestinationThreadID != 99 {
		t.Fatalf("relay %+v", cfg.Relay)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"no destination": "telegram: {token: t}\ndatabase: {driver: sqlite, path: x.db}\nrelay: {admins: [1]}\n",
		"no admins":      "telegram: {token: t}\ndatabase: {driver: sqlite, path: x.db}\nrelay: {destination_chat_id: -1}\n",
		"bad timezone":   "telegram: {token: t}\ndatabase: {driver: sqlite, path: x.db}\nrelay: {admins: [1], destination_chat_id: -1, timezone: Mars/Base}\n",
		"bad driver":     "telegram: {token: t}\ndatabase: {driver: oracle}\nrelay: {admins: [1], destination_chat_id: -1}\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadDatabaseSkipsTelegram(t *testing.T) {
	cfg, err := LoadDatabase(writeConfig(t, "database: {driver: sqlite, path: x.db}\n"))
	if err != nil || cfg.Database.Path != "x.db" {
		t.Fatalf("cfg %+v err %v", cfg, err)
	}
}

func TestBootstrapAndRunOptions(t *testing.T) {
	cfg, err := Load(sampleConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a, err := bootstrapWith(cfg, bootstrap.Options{LoggerInit: func(*coreconfig.Config) error { return nil }})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	bot, err := tele.NewBot(tele.Settings{Offline: true})
	if err != nil {
		t.Fatal(err)
	}
	opts, err := a.runOptions(bot)
	if err != nil {
		t.Fatalf("run options: %v", err)
	}
	if opts.Bot != bot || opts.Registry == nil || len(opts.Middlewares) == 0 {
		t.Fatalf("opts %+v", opts)
	}
	if len(opts.Routes) < len(opts.Registry.Commands())+2 {
		t.Fatalf("only %d routes", len(opts.Routes))
	}
}

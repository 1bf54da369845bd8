package app

import (
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/anonrelay/core/bootstrap"
	"github.com/m3rciful/anonrelay/core/logger"
	coretelegram "github.com/m3rciful/anonrelay/core/telegram"
	"github.com/m3rciful/anonrelay/core/telegram/router"
	"github.com/m3rciful/anonrelay/relay/conversation"
	"github.com/m3rciful/anonrelay/relay/moderation"
	"github.com/m3rciful/anonrelay/relay/session"
	"github.com/m3rciful/anonrelay/relay/storage"
	"github.com/m3rciful/anonrelay/relay/transport"

	tele "gopkg.in/telebot.v4"
)

// App owns the database and builds the Telegram runtime.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	stores   *storage.Stores
	sessions *session.Store
}

// Bootstrap initializes logging, connects to the database and migrates it.
func Bootstrap(cfg *Config) (*App, error) {
	return bootstrapWith(cfg, bootstrap.Options{})
}

func bootstrapWith(cfg *Config, opts bootstrap.Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	src, err := storage.Migrations(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	opts.Config = cfg.CoreConfig()
	opts.Database = cfg.Database
	opts.Migrations = src
	res, err := bootstrap.Run(opts)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:      cfg,
		db:       res.DB,
		stores:   storage.New(res.DB),
		sessions: session.NewStore(),
	}, nil
}

// TelegramRunOptions builds the bot and wires the relay handlers into it.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	bot, err := coretelegram.NewBot(a.cfg.CoreConfig())
	if err != nil {
		return coretelegram.RunOptions{}, err
	}
	return a.runOptions(bot)
}

func (a *App) runOptions(bot *tele.Bot) (coretelegram.RunOptions, error) {
	dispatcher := conversation.New(conversation.Deps{
		Settings:  a.cfg.Relay.Settings(),
		Sessions:  a.sessions,
		Gate:      moderation.NewGate(a.stores.Toggle, a.stores.Blacklist),
		Toggle:    a.stores.Toggle,
		Messages:  a.stores.Messages,
		Blacklist: a.stores.Blacklist,
		Messenger: transport.NewMessenger(bot),
	})
	handlers := transport.NewHandlers(dispatcher)

	reg := coretelegram.NewRegistry()
	if err := handlers.Register(reg); err != nil {
		return coretelegram.RunOptions{}, err
	}

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(reg)...)
	routes = append(routes, router.MediaRoutes(handlers)...)

	logger.Relay.Info("relay wired",
		slog.String("event", "init"),
		slog.Int("admins", len(a.cfg.Relay.Admins)),
		slog.Int64("destination_chat_id", a.cfg.Relay.DestinationChatID),
		slog.Bool("links_enabled", a.cfg.Relay.BroadcastChatID != 0),
	)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Bot:         bot,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(),
		Routes:      routes,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

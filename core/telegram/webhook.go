package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	coreconfig "github.com/m3rciful/anonrelay/core/config"
	"github.com/m3rciful/anonrelay/core/logger"
	"github.com/m3rciful/anonrelay/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

const (
	secretHeader   = "X-Telegram-Bot-Api-Secret-Token"
	handlerErrKey  = "handler_err"
	maxUpdateBytes = 1 << 20

	// badPayloadText is the body of the 400 answer for anything that is not an update.
	badPayloadText = "This endpoint is meant for bot and telegram communication"
)

// captureErrors records the handler error on the update so the webhook
// endpoint can answer 500 after synchronous processing.
func captureErrors(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		err := next(c)
		if err != nil {
			c.Set(handlerErrKey, err)
		}
		return err
	}
}

// UpdateProcessor is the part of *tele.Bot the webhook endpoint needs.
type UpdateProcessor interface {
	NewContext(u tele.Update) tele.Context
	ProcessContext(c tele.Context)
}

// WebhookHandler returns the HTTP entry point for Telegram pushes.
// POST path carries updates; GET /healthz answers 200.
// The bot must run with Settings.Synchronous and captureErrors installed.
func WebhookHandler(bot UpdateProcessor, path, secret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Post(path, func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		code := serveUpdate(bot, secret, w, req)
		logger.WEB.LogAttrs(req.Context(), levelFor(code), "",
			slog.String("event", "webhook.update"),
			slog.String("status", statusFor(code)),
			slog.Int("http_code", code),
			slog.Duration("duration", logger.Took(start)),
		)
	})
	return r
}

func serveUpdate(bot UpdateProcessor, secret string, w http.ResponseWriter, req *http.Request) int {
	if secret != "" && subtle.ConstantTimeCompare([]byte(req.Header.Get(secretHeader)), []byte(secret)) != 1 {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return http.StatusUnauthorized
	}

	var upd tele.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxUpdateBytes)).Decode(&upd); err != nil {
		http.Error(w, badPayloadText, http.StatusBadRequest)
		return http.StatusBadRequest
	}

	c := bot.NewContext(upd)
	bot.ProcessContext(c)
	if err, _ := c.Get(handlerErrKey).(error); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return http.StatusInternalServerError
	}
	w.WriteHeader(http.StatusOK)
	return http.StatusOK
}

func levelFor(code int) slog.Level {
	switch {
	case code >= 500:
		return slog.LevelError
	case code >= 400:
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

func statusFor(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "fail"
}

// serveWebhook registers the webhook with Telegram and serves updates until ctx is done.
func serveWebhook(ctx context.Context, bot *tele.Bot, cfg coreconfig.WebhookConfig) error {
	secret := cfg.SecretToken
	if secret == "" {
		secret = uuid.NewString()
	}
	if err := setWebhook(bot, cfg.URL, secret); err != nil {
		return fmt.Errorf("telegram: setWebhook: %s", netutil.RedactToken(err))
	}

	addr := net.JoinHostPort(cfg.Listen, strconv.Itoa(cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           WebhookHandler(bot, cfg.Path, secret),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WEB.Info("webhook listening",
			slog.String("event", "listen"),
			slog.String("listen", addr),
			slog.String("public_url", cfg.URL),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("telegram: webhook server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("telegram: webhook shutdown: %w", err)
	}
	return ctx.Err()
}

func setWebhook(bot *tele.Bot, url, secret string) error {
	_, err := bot.Raw("setWebhook", map[string]any{
		"url":          url,
		"secret_token": secret,
	})
	return err
}

func deleteWebhook(bot *tele.Bot, dropPending bool) error {
	_, err := bot.Raw("deleteWebhook", map[string]any{
		"drop_pending_updates": dropPending,
	})
	return err
}

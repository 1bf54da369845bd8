// Package moderation decides whether a free-text submission may proceed.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/anonrelay/core/logger"
	"github.com/m3rciful/anonrelay/core/telegram/netutil"
)

// ErrUnavailable is returned when the blacklist cannot be consulted.
// Callers must refuse the submission.
var ErrUnavailable = errors.New("moderation: blacklist unavailable")

// Verdict is the outcome of Admit.
type Verdict int

const (
	Admitted Verdict = iota
	Disabled
	Banned
)

func (v Verdict) String() string {
	switch v {
	case Admitted:
		return "admitted"
	case Disabled:
		return "disabled"
	case Banned:
		return "banned"
	}
	return "unknown"
}

// ToggleReader reads the global enable switch.
type ToggleReader interface {
	Enabled(ctx context.Context) (bool, error)
}

// BanChecker reports blacklist membership.
type BanChecker interface {
	IsBanned(ctx context.Context, userID int64) (bool, error)
}

// Gate combines the toggle and the blacklist. It never writes.
type Gate struct {
	toggle ToggleReader
	bans   BanChecker
}

// NewGate builds a Gate over the given stores.
func NewGate(toggle ToggleReader, bans BanChecker) *Gate {
	return &Gate{toggle: toggle, bans: bans}
}

// Admit checks the toggle first, then the blacklist. A toggle read failure
// counts as Disabled.
func (g *Gate) Admit(ctx context.Context, userID int64) (Verdict, error) {
	enabled, err := g.toggle.Enabled(ctx)
	if err != nil {
		logger.LogEvent(ctx, logger.Moderation, slog.LevelWarn, "gate.toggle_read_failed",
			slog.String("status", "fail"),
			slog.String("err_code", netutil.Classify(err)),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return g.decide(ctx, userID, Disabled), nil
	}
	if !enabled {
		return g.decide(ctx, userID, Disabled), nil
	}

	banned, err := g.bans.IsBanned(ctx, userID)
	if err != nil {
		logger.LogEvent(ctx, logger.Moderation, slog.LevelError, "gate.ban_check_failed",
			slog.String("status", "fail"),
			slog.Int64("target_id", userID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return Disabled, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if banned {
		return g.decide(ctx, userID, Banned), nil
	}
	return g.decide(ctx, userID, Admitted), nil
}

func (g *Gate) decide(ctx context.Context, userID int64, v Verdict) Verdict {
	level := slog.LevelDebug
	if v == Banned {
		level = slog.LevelInfo
	}
	if level == slog.LevelDebug && !logger.ShouldSampleDebug() {
		return v
	}
	logger.LogEvent(ctx, logger.Moderation, level, "gate.verdict",
		slog.String("verdict", v.String()),
		slog.Int64("target_id", userID),
	)
	return v
}

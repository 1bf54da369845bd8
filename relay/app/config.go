// Package app assembles the relay bot from configuration.
package app

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/anonrelay/core/config"
	coredatabase "github.com/m3rciful/anonrelay/core/database"
	"github.com/m3rciful/anonrelay/relay/conversation"
	"github.com/m3rciful/anonrelay/relay/menu"
)

const defaultLinksText = "🔗 Useful links"

// RelayConfig holds chat destinations and the admin list.
type RelayConfig struct {
	Admins []int64 `yaml:"admins" envconfig:"ADMINS"`

	DestinationChatID   int64 `yaml:"destination_chat_id" envconfig:"GROUP_ID"`
	DestinationThreadID int   `yaml:"destination_thread_id" envconfig:"TOPIC_ID"`
	// Feedback falls back to the destination chat when unset.
	FeedbackChatID   int64 `yaml:"feedback_chat_id" envconfig:"FEEDBACK_CHAT_ID"`
	FeedbackThreadID int   `yaml:"feedback_thread_id" envconfig:"FEEDBACK_THREAD_ID"`
	// BroadcastChatID 0 disables the links action.
	BroadcastChatID   int64 `yaml:"broadcast_chat_id" envconfig:"BROADCAST_CHAT_ID"`
	BroadcastThreadID int   `yaml:"broadcast_thread_id" envconfig:"BROADCAST_THREAD_ID"`

	Timezone  string      `yaml:"timezone" envconfig:"TIMEZONE"`
	LinksText string      `yaml:"links_text" envconfig:"LINKS_TEXT"`
	Links     []menu.Link `yaml:"links" ignored:"true"`

	location *time.Location
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Relay    RelayConfig         `yaml:"relay"`
}

// CoreConfig exposes the shared bot settings.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Config }

// Load reads path (YAML, then environment) and validates every section.
func Load(path string) (*Config, error) {
	cfg, err := decode(path)
	if err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := cfg.Relay.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads the same sources but validates only logging and the
// database section, for maintenance commands that never talk to Telegram.
func LoadDatabase(path string) (*Config, error) {
	return decode(path)
}

func decode(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Database.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *RelayConfig) normalize() error {
	if r.DestinationChatID == 0 {
		return fmt.Errorf("relay.destination_chat_id is required")
	}
	if len(r.Admins) == 0 {
		return fmt.Errorf("relay.admins must list at least one user id")
	}
	if r.FeedbackChatID == 0 {
		r.FeedbackChatID = r.DestinationChatID
	}
	if r.DestinationThreadID < 0 || r.FeedbackThreadID < 0 || r.BroadcastThreadID < 0 {
		return fmt.Errorf("relay thread ids must be >= 0")
	}

	tz := strings.TrimSpace(r.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid relay.timezone %q: %w", r.Timezone, err)
	}
	r.Timezone, r.location = tz, loc

	if strings.TrimSpace(r.LinksText) == "" {
		r.LinksText = defaultLinksText
	}
	return nil
}

// Settings converts the relay section for the dispatcher.
func (r RelayConfig) Settings() conversation.Settings {
	return conversation.Settings{
		Admins:      append([]int64(nil), r.Admins...),
		Destination: conversation.Target{ChatID: r.DestinationChatID, ThreadID: r.DestinationThreadID},
		Feedback:    conversation.Target{ChatID: r.FeedbackChatID, ThreadID: r.FeedbackThreadID},
		Broadcast:   conversation.Target{ChatID: r.BroadcastChatID, ThreadID: r.BroadcastThreadID},
		Location:    r.location,
		LinksText:   r.LinksText,
		Links:       append([]menu.Link(nil), r.Links...),
	}
}

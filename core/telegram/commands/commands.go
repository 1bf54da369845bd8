package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command is a slash command with its menu metadata.
// AdminOnly only hides the command from the public menu; authorization happens in the handler.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

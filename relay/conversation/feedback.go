package conversation

import (
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/anonrelay/core/telegram/format"
)

// formatFeedback renders a MarkdownV2 feedback post. Every user-supplied
// piece goes through EscapeMarkdownV2.
func formatFeedback(ev Event, at time.Time) string {
	sender := ev.DisplayName
	if sender == "" {
		sender = "unknown"
	}
	if ev.Username != "" {
		sender += " (@" + ev.Username + ")"
	}
	sender += " [id " + strconv.FormatInt(ev.UserID, 10) + "]"

	var b strings.Builder
	b.WriteString("💬 *New feedback*\n")
	b.WriteString("*From:* " + format.EscapeMarkdownV2(sender) + "\n")
	b.WriteString("*At:* " + format.EscapeMarkdownV2(at.Format("2006-01-02 15:04 MST")) + "\n\n")
	b.WriteString(format.EscapeMarkdownV2(ev.Text))
	return b.String()
}

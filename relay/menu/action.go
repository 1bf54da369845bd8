// Package menu describes the relay's menus and the closed set of actions
// reachable from slash commands and inline buttons.
package menu

import "strings"

// Action identifies one user or admin operation.
type Action int

const (
	ActionUnknown Action = iota
	ActionStart
	ActionHelp
	ActionAnon
	ActionFeedback
	ActionBackToMain
	ActionAdmin
	ActionOn
	ActionOff
	ActionStatus
	ActionFetch
	ActionClean
	ActionBan
	ActionUnban
	ActionLinks
)

var actionNames = [...]string{
	ActionUnknown:    "unknown",
	ActionStart:      "start",
	ActionHelp:       "help",
	ActionAnon:       "anon",
	ActionFeedback:   "feedback",
	ActionBackToMain: "back_to_main",
	ActionAdmin:      "admin",
	ActionOn:         "on",
	ActionOff:        "off",
	ActionStatus:     "status",
	ActionFetch:      "fetch",
	ActionClean:      "clean",
	ActionBan:        "ban",
	ActionUnban:      "unban",
	ActionLinks:      "links",
}

// Actions lists every known action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, len(actionNames)-1)
	for a := ActionStart; int(a) < len(actionNames); a++ {
		out = append(out, a)
	}
	return out
}

// String returns the wire identifier used for commands and callback data.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return actionNames[ActionUnknown]
	}
	return actionNames[a]
}

// ParseAction maps an identifier ("ban", "/ban", " Ban ") to its Action.
func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "/"))
	for a := ActionStart; int(a) < len(actionNames); a++ {
		if actionNames[a] == s {
			return a, true
		}
	}
	return ActionUnknown, false
}

// RequiresAdmin reports whether the acting user must be in the admin set.
func (a Action) RequiresAdmin() bool {
	switch a {
	case ActionStart, ActionHelp, ActionAnon, ActionFeedback, ActionBackToMain:
		return false
	case ActionAdmin, ActionOn, ActionOff, ActionStatus, ActionFetch,
		ActionClean, ActionBan, ActionUnban, ActionLinks:
		return true
	}
	// unknown identifiers are never trusted
	return true
}

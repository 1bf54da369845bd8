package menu

// Button is a transport-neutral inline button. Exactly one of Action or URL is set.
type Button struct {
	Label  string
	Action Action
	URL    string
}

// Keyboard is a list of button rows.
type Keyboard [][]Button

// Link is a labelled URL shown under the broadcast links message.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// MainMenu is shown on /start, on back_to_main and for text without a pending mode.
func MainMenu() Keyboard {
	return Keyboard{
		{{Label: "🕵️ Anonymous message", Action: ActionAnon}},
		{{Label: "💬 Feedback", Action: ActionFeedback}},
	}
}

// AdminPanel lists the admin actions reachable by button.
func AdminPanel() Keyboard {
	return Keyboard{
		{{Label: "✅ Enable", Action: ActionOn}, {Label: "🛑 Disable", Action: ActionOff}},
		{{Label: "📊 Status", Action: ActionStatus}},
		{{Label: "📥 Fetch latest", Action: ActionFetch}, {Label: "🧹 Clean", Action: ActionClean}},
		{{Label: "🚫 Ban user", Action: ActionBan}},
		{{Label: "🔗 Post links", Action: ActionLinks}},
		{{Label: "⬅️ Back", Action: ActionBackToMain}},
	}
}

// LinkButtons lays out links one per row.
func LinkButtons(links []Link) Keyboard {
	var kb Keyboard
	for _, l := range links {
		if l.URL == "" {
			continue
		}
		label := l.Label
		if label == "" {
			label = l.URL
		}
		kb = append(kb, []Button{{Label: label, URL: l.URL}})
	}
	return kb
}

package menu

import "testing"

func TestParseActionRoundTrip(t *testing.T) {
	for _, a := range Actions() {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Fatalf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if a, ok := ParseAction(" /BAN "); !ok || a != ActionBan {
		t.Fatalf("slash and case should be ignored, got %v %v", a, ok)
	}
	if _, ok := ParseAction("reboot"); ok {
		t.Fatal("unknown identifier must not parse")
	}
}

func TestRequiresAdmin(t *testing.T) {
	public := map[Action]bool{
		ActionStart: true, ActionHelp: true, ActionAnon: true,
		ActionFeedback: true, ActionBackToMain: true,
	}
	for _, a := range Actions() {
		if got := a.RequiresAdmin(); got == public[a] {
			t.Errorf("%s: RequiresAdmin = %v", a, got)
		}
	}
	if !ActionUnknown.RequiresAdmin() {
		t.Fatal("unknown action must require admin")
	}
}

func TestMenusOnlyUseKnownActions(t *testing.T) {
	for _, kb := range []Keyboard{MainMenu(), AdminPanel()} {
		for _, row := range kb {
			for _, b := range row {
				if b.Action == ActionUnknown || b.URL != "" {
					t.Fatalf("unexpected button %+v", b)
				}
			}
		}
	}
}

func TestLinkButtonsSkipsEmpty(t *testing.T) {
	kb := LinkButtons([]Link{{Label: "Site", URL: "https://example.org"}, {Label: "broken"}, {URL: "https://t.me/x"}})
	if len(kb) != 2 || kb[1][0].Label != "https://t.me/x" {
		t.Fatalf("kb = %+v", kb)
	}
}

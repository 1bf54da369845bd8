package keyboard

import "testing"

func TestInlineButtonsRows(t *testing.T) {
	m := InlineButtonsRows(
		[]InlineBtn{{Text: "Anon", Data: "anon"}, {Text: "Feedback", Data: "feedback"}},
		nil,
		[]InlineBtn{{Text: "Site", URL: "https://example.org"}},
	)
	if m == nil || len(m.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %+v", m)
	}
	if got := m.InlineKeyboard[0][1]; got.Data != "feedback" || got.URL != "" {
		t.Fatalf("callback button = %+v", got)
	}
	if got := m.InlineKeyboard[1][0]; got.URL != "https://example.org" || got.Data != "" {
		t.Fatalf("url button = %+v", got)
	}
	if InlineButtonsRows() != nil {
		t.Fatal("empty keyboard must be nil")
	}
}

func TestInlineButtonsNPerRow(t *testing.T) {
	btns := []InlineBtn{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	m := InlineButtonsNPerRow(btns, 2)
	if len(m.InlineKeyboard) != 2 || len(m.InlineKeyboard[1]) != 1 {
		t.Fatalf("unexpected layout: %+v", m.InlineKeyboard)
	}
	if len(InlineButtonsNPerRow(btns, 0).InlineKeyboard) != 3 {
		t.Fatal("n<=1 must put one button per row")
	}
}

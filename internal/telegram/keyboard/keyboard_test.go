package keyboard

import (
	"testing"

	"github.com/futig/career-agent/internal/entity"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data    string
		action  string
		value   string
		wantErr bool
	}{
		{data: "res:0.1", action: "res", value: "0.1"},
		{data: "action:end_chat", action: "action", value: "end_chat"},
		{data: "dl:", action: "dl", value: ""},
		{data: "noseparator", wantErr: true},
		{data: ":value", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := ParseCallback(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Action != tt.action || got.Value != tt.value {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	p, i, err := ParsePosition(EncodePosition(2, 5))
	if err != nil || p != 2 || i != 5 {
		t.Fatalf("got %d %d %v", p, i, err)
	}

	for _, bad := range []string{"", "1", "a.1", "1.b"} {
		if _, _, err := ParsePosition(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRoadmapKeyboardLayout(t *testing.T) {
	roadmap := entity.RoadmapResult{Phases: []entity.Phase{
		{Title: "A", Milestones: []string{"a1", "a2"}},
		{Title: "B", Milestones: []string{"b1"}},
	}}

	kb := NewBuilder().RoadmapKeyboard(roadmap)

	// three milestone rows, downloads, restart
	if len(kb.InlineKeyboard) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(kb.InlineKeyboard))
	}

	last := kb.InlineKeyboard[2]
	if *last[0].CallbackData != "res:1.0" || *last[1].CallbackData != "stuck:1.0" {
		t.Fatalf("unexpected milestone row %q %q", *last[0].CallbackData, *last[1].CallbackData)
	}

	downloads := kb.InlineKeyboard[3]
	want := []string{"dl:markdown", "dl:pdf", "dl:docx"}
	for i, btn := range downloads {
		if *btn.CallbackData != want[i] {
			t.Errorf("download button %d: %q, want %q", i, *btn.CallbackData, want[i])
		}
	}
}

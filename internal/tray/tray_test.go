package tray

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "no hands sentinel",
			text: "no hands detected",
			want: "no hands detected",
		},
		{
			name: "single hand",
			text: "1 hand(s) detected\nFirst hand: thumb-index\n",
			want: "First hand: thumb-index",
		},
		{
			name: "two hands joined",
			text: "2 hand(s) detected\nFirst hand: open hand\nSecond hand: thumb-middle\n",
			want: "First hand: open hand; Second hand: thumb-middle",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summarize(tt.text); got != tt.want {
				t.Errorf("summarize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	tr := New()
	if !tr.IsEnabled() {
		t.Error("new tray should start enabled")
	}
}

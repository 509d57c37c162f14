package format

import (
	"testing"
	"time"

	"github.com/ghnotify/ghnotify/internal/model"
)

func TestAge(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "now"},
		{"minutes", now.Add(-5 * time.Minute), "5m"},
		{"hours", now.Add(-2 * time.Hour), "2h"},
		{"days", now.Add(-3 * 24 * time.Hour), "3d"},
		{"weeks", now.Add(-15 * 24 * time.Hour), "2w"},
		{"months", now.Add(-95 * 24 * time.Hour), "3mo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(tt.at); got != tt.want {
				t.Errorf("Age() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits unchanged", "short", 10, "short"},
		{"exact fit", "exact", 5, "exact"},
		{"truncated with ellipsis", "a longer title", 8, "a longe…"},
		{"width one", "anything", 1, "…"},
		{"wide runes counted", "日本語のタイトル", 7, "日本語…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight() should not shorten, got %q", got)
	}
	// A wide rune occupies two columns.
	if got := PadRight("日", 4); got != "日  " {
		t.Errorf("PadRight(wide) = %q", got)
	}
}

func TestReasonLabel(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{"review_requested", "Review requested"},
		{"approved", "Approved"},
		{"changes_requested", "Changes requested"},
		{"3 comments", "3 comments"},
		{"alice, bob +2", "alice, bob +2"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			if got := ReasonLabel(tt.reason); got != tt.want {
				t.Errorf("ReasonLabel(%q) = %q, want %q", tt.reason, got, tt.want)
			}
		})
	}
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		in   model.SubjectType
		want string
	}{
		{model.SubjectPullRequest, "PR"},
		{model.SubjectIssue, "Issue"},
		{model.SubjectRelease, "Release"},
		{model.SubjectOther, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := TypeLabel(tt.in); got != tt.want {
				t.Errorf("TypeLabel(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

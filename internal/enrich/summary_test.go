package enrich

import (
	"testing"
	"time"

	"github.com/ghnotify/ghnotify/internal/model"
)

func event(kind model.ActivityKind, author string) model.ActivityEvent {
	return model.ActivityEvent{Kind: kind, Author: author, CreatedAt: time.Now()}
}

func TestSummarizeReason(t *testing.T) {
	tests := []struct {
		name   string
		events []model.ActivityEvent
		want   string
	}{
		{
			name:   "no activity",
			events: nil,
			want:   "",
		},
		{
			name:   "single approval",
			events: []model.ActivityEvent{event(model.ActivityApproved, "alice")},
			want:   "approved",
		},
		{
			name: "multiple approvals pluralize",
			events: []model.ActivityEvent{
				event(model.ActivityApproved, "alice"),
				event(model.ActivityApproved, "bob"),
			},
			want: "2 approvals",
		},
		{
			name: "changes requested beats reviews and comments",
			events: []model.ActivityEvent{
				event(model.ActivityComment, "alice"),
				event(model.ActivityChangesRequested, "bob"),
				event(model.ActivityReviewed, "carol"),
			},
			want: "changes_requested",
		},
		{
			name: "approval beats changes requested",
			events: []model.ActivityEvent{
				event(model.ActivityChangesRequested, "bob"),
				event(model.ActivityApproved, "alice"),
			},
			want: "approved",
		},
		{
			name:   "single review",
			events: []model.ActivityEvent{event(model.ActivityReviewed, "alice")},
			want:   "reviewed",
		},
		{
			name: "multiple reviews pluralize",
			events: []model.ActivityEvent{
				event(model.ActivityReviewed, "alice"),
				event(model.ActivityReviewed, "bob"),
			},
			want: "2 reviews",
		},
		{
			name:   "single comment",
			events: []model.ActivityEvent{event(model.ActivityComment, "alice")},
			want:   "commented",
		},
		{
			name: "issue and review comments counted together",
			events: []model.ActivityEvent{
				event(model.ActivityComment, "alice"),
				event(model.ActivityReviewComment, "bob"),
				event(model.ActivityComment, "alice"),
			},
			want: "3 comments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Summarize(tt.events)
			if got != tt.want {
				t.Errorf("Summarize() reason = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeAuthorLabel(t *testing.T) {
	tests := []struct {
		name   string
		events []model.ActivityEvent
		want   string
	}{
		{
			name:   "single author",
			events: []model.ActivityEvent{event(model.ActivityComment, "alice")},
			want:   "alice",
		},
		{
			name: "two authors joined",
			events: []model.ActivityEvent{
				event(model.ActivityComment, "alice"),
				event(model.ActivityComment, "bob"),
			},
			want: "alice, bob",
		},
		{
			name: "overflow collapses into suffix",
			events: []model.ActivityEvent{
				event(model.ActivityComment, "alice"),
				event(model.ActivityComment, "bob"),
				event(model.ActivityComment, "carol"),
				event(model.ActivityComment, "dave"),
			},
			want: "alice, bob +2",
		},
		{
			name: "duplicates keep first-seen order",
			events: []model.ActivityEvent{
				event(model.ActivityComment, "bob"),
				event(model.ActivityComment, "alice"),
				event(model.ActivityComment, "bob"),
			},
			want: "bob, alice",
		},
		{
			name: "empty authors skipped",
			events: []model.ActivityEvent{
				event(model.ActivityComment, ""),
				event(model.ActivityComment, "alice"),
			},
			want: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := Summarize(tt.events)
			if got != tt.want {
				t.Errorf("Summarize() author = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeIsPure(t *testing.T) {
	events := []model.ActivityEvent{
		event(model.ActivityComment, "alice"),
		event(model.ActivityApproved, "bob"),
	}

	r1, a1 := Summarize(events)
	r2, a2 := Summarize(events)
	if r1 != r2 || a1 != a2 {
		t.Errorf("Summarize() not deterministic: (%q, %q) vs (%q, %q)", r1, a1, r2, a2)
	}
}

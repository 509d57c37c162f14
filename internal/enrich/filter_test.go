package enrich

import (
	"testing"

	"github.com/ghnotify/ghnotify/internal/model"
)

func TestRetain(t *testing.T) {
	activity := []model.ActivityEvent{{Kind: model.ActivityComment, Author: "alice"}}

	tests := []struct {
		name string
		n    model.Notification
		want bool
	}{
		{
			name: "team review always dropped",
			n: model.Notification{
				Reason:        model.ReasonReviewRequested,
				Type:          model.SubjectPullRequest,
				IsTeamReview:  true,
				NewActivities: activity,
			},
			want: false,
		},
		{
			name: "direct review request kept without activity",
			n: model.Notification{
				Reason: model.ReasonReviewRequested,
				Type:   model.SubjectPullRequest,
			},
			want: true,
		},
		{
			name: "mention kept without activity",
			n: model.Notification{
				Reason: model.ReasonMention,
				Type:   model.SubjectIssue,
			},
			want: true,
		},
		{
			name: "closed thread without activity dropped",
			n: model.Notification{
				Reason:           model.ReasonMention,
				Type:             model.SubjectPullRequest,
				IsClosedOrMerged: true,
			},
			want: false,
		},
		{
			name: "closed thread with activity kept",
			n: model.Notification{
				Reason:           model.ReasonMention,
				Type:             model.SubjectPullRequest,
				IsClosedOrMerged: true,
				NewActivities:    activity,
			},
			want: true,
		},
		{
			name: "authored thread without activity dropped",
			n: model.Notification{
				Reason: model.ReasonAuthor,
				Type:   model.SubjectPullRequest,
			},
			want: false,
		},
		{
			name: "authored thread with activity kept",
			n: model.Notification{
				Reason:        model.ReasonAuthor,
				Type:          model.SubjectPullRequest,
				NewActivities: activity,
			},
			want: true,
		},
		{
			name: "commented thread without activity dropped",
			n: model.Notification{
				Reason: model.ReasonComment,
				Type:   model.SubjectPullRequest,
			},
			want: false,
		},
		{
			name: "subscribed thread without activity dropped",
			n: model.Notification{
				Reason: model.ReasonSubscribed,
				Type:   model.SubjectPullRequest,
			},
			want: false,
		},
		{
			name: "subscribed thread with activity kept",
			n: model.Notification{
				Reason:        model.ReasonSubscribed,
				Type:          model.SubjectPullRequest,
				NewActivities: activity,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retain(&tt.n); got != tt.want {
				t.Errorf("Retain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	items := []model.Notification{
		{ID: "1", Reason: model.ReasonMention},
		{ID: "2", Reason: model.ReasonAuthor}, // dropped: no activity
		{ID: "3", Reason: model.ReasonReviewRequested},
		{ID: "4", Reason: model.ReasonMention},
	}

	kept := Filter(items)
	wantIDs := []string{"1", "3", "4"}
	if len(kept) != len(wantIDs) {
		t.Fatalf("Filter() kept %d items, want %d", len(kept), len(wantIDs))
	}
	for i, id := range wantIDs {
		if kept[i].ID != id {
			t.Errorf("kept[%d].ID = %s, want %s", i, kept[i].ID, id)
		}
	}
}

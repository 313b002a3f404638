package services

import (
	"testing"

	"locallytrip-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner     = Actor{Role: models.RoleHost, IsOwner: true}
	moderator = Actor{Role: models.RoleModerator}
	stranger  = Actor{Role: models.RoleTraveler}
)

func TestApplyTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current Status
		action  Action
		actor   Actor
		reason  string
		want    Status
		wantErr error
	}{
		{"submit from draft", StatusDraft, ActionSubmit, owner, "", StatusPendingReview, nil},
		{"submit not owner", StatusDraft, ActionSubmit, stranger, "", "", ErrActorNotAllowed},
		{"submit from published", StatusPublished, ActionSubmit, owner, "", "", ErrInvalidTransition},
		{"approve from pending", StatusPendingReview, ActionApprove, moderator, "", StatusPublished, nil},
		{"approve from draft", StatusDraft, ActionApprove, moderator, "", StatusPublished, nil},
		{"approve by owner", StatusPendingReview, ActionApprove, owner, "", "", ErrActorNotAllowed},
		{"reject needs reason", StatusPendingReview, ActionReject, moderator, "", "", ErrReasonRequired},
		{"reject with reason", StatusPendingReview, ActionReject, moderator, "spam", StatusRejected, nil},
		{"suspend published", StatusPublished, ActionSuspend, moderator, "", StatusSuspended, nil},
		{"suspend draft", StatusDraft, ActionSuspend, moderator, "", "", ErrInvalidTransition},
		{"pause published", StatusPublished, ActionPause, owner, "", StatusPaused, nil},
		{"resume paused", StatusPaused, ActionResume, owner, "", StatusPublished, nil},
		{"pause by moderator", StatusPublished, ActionPause, moderator, "", "", ErrActorNotAllowed},
		{"reactivate rejected", StatusRejected, ActionReactivate, moderator, "", StatusPublished, nil},
		{"reactivate suspended", StatusSuspended, ActionReactivate, moderator, "", StatusPublished, nil},
		{"reactivate published", StatusPublished, ActionReactivate, moderator, "", "", ErrInvalidTransition},
		{"delete draft by owner", StatusDraft, ActionDelete, owner, "", StatusDraft, nil},
		{"delete published by owner", StatusPublished, ActionDelete, owner, "", "", ErrInvalidTransition},
		{"delete rejected by stranger", StatusRejected, ActionDelete, stranger, "", "", ErrActorNotAllowed},
		{"unknown action", StatusDraft, Action("explode"), moderator, "", "", ErrUnknownAction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.current, tc.action, tc.actor, tc.reason)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeCreateStatus(t *testing.T) {
	assert.Equal(t, StatusPendingReview, NormalizeCreateStatus(StatusPublished, false))
	assert.Equal(t, StatusPublished, NormalizeCreateStatus(StatusPublished, true))
	assert.Equal(t, StatusPendingReview, NormalizeCreateStatus(StatusPendingReview, true))
	assert.Equal(t, StatusDraft, NormalizeCreateStatus(StatusDraft, false))
	assert.Equal(t, StatusDraft, NormalizeCreateStatus(Status("garbage"), true))
}

func TestTransitionStoryClearsStaleReason(t *testing.T) {
	story := &models.Story{Status: string(StatusPendingReview)}

	require.NoError(t, TransitionStory(story, ActionReject, moderator, "too short"))
	assert.Equal(t, string(StatusRejected), story.Status)
	assert.Equal(t, "too short", story.RejectionReason)

	require.NoError(t, TransitionStory(story, ActionReactivate, moderator, ""))
	assert.Equal(t, string(StatusPublished), story.Status)
	assert.Empty(t, story.RejectionReason, "reason must be cleared on leaving rejected")
	require.NotNil(t, story.PublishedAt)

	first := *story.PublishedAt
	require.NoError(t, TransitionStory(story, ActionPause, owner, ""))
	require.NoError(t, TransitionStory(story, ActionResume, owner, ""))
	assert.Equal(t, first, *story.PublishedAt, "PublishedAt is set once")
}

func TestTransitionExperienceDelete(t *testing.T) {
	exp := &models.Experience{Status: string(StatusDraft), IsActive: true}
	require.NoError(t, TransitionExperience(exp, ActionDelete, owner, ""))
	assert.False(t, exp.IsActive)
	assert.Equal(t, string(StatusDraft), exp.Status, "soft delete keeps the status")

	live := &models.Experience{Status: string(StatusPublished), IsActive: true}
	err := TransitionExperience(live, ActionDelete, owner, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.True(t, live.IsActive)
}

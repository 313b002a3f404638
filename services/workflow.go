package services

import (
	"errors"
	"time"

	"locallytrip-server/models"
)

// Lifecycle states shared by stories and experiences. Soft deletion is the
// IsActive flag on the record, not a status of its own.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusPublished     Status = "published"
	StatusRejected      Status = "rejected"
	StatusSuspended     Status = "suspended"
	StatusPaused        Status = "paused"
)

type Action string

const (
	ActionSubmit     Action = "submit"
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionSuspend    Action = "suspend"
	ActionPause      Action = "pause"
	ActionResume     Action = "resume"
	ActionReactivate Action = "reactivate"
	ActionDelete     Action = "delete"
)

var (
	ErrInvalidTransition = errors.New("workflow: action not allowed from current status")
	ErrActorNotAllowed   = errors.New("workflow: actor may not perform this action")
	ErrReasonRequired    = errors.New("workflow: a rejection reason is required")
	ErrUnknownAction     = errors.New("workflow: unknown action")
)

// Actor is whoever is asking for the transition: their role plus whether they
// own the record.
type Actor struct {
	Role    string
	IsOwner bool
}

func (a Actor) moderates() bool { return models.IsModerationRole(a.Role) }

type rule struct {
	from          []Status
	to            Status
	moderatorOnly bool
	ownerOnly     bool
	needsReason   bool
}

// Every lifecycle mutation goes through this table. Route handlers never
// check statuses themselves, so "deleted record back to published" style
// transitions are rejected here no matter what the dashboard renders.
var rules = map[Action]rule{
	ActionSubmit:     {from: []Status{StatusDraft}, to: StatusPendingReview, ownerOnly: true},
	ActionApprove:    {from: []Status{StatusDraft, StatusPendingReview}, to: StatusPublished, moderatorOnly: true},
	ActionReject:     {from: []Status{StatusDraft, StatusPendingReview}, to: StatusRejected, moderatorOnly: true, needsReason: true},
	ActionSuspend:    {from: []Status{StatusPublished}, to: StatusSuspended, moderatorOnly: true},
	ActionPause:      {from: []Status{StatusPublished}, to: StatusPaused, ownerOnly: true},
	ActionResume:     {from: []Status{StatusPaused}, to: StatusPublished, ownerOnly: true},
	ActionReactivate: {from: []Status{StatusRejected, StatusSuspended}, to: StatusPublished, moderatorOnly: true},
	// Delete keeps the current status; callers flip IsActive off. Owners may
	// only discard records that never went live.
	ActionDelete: {from: []Status{StatusDraft, StatusPendingReview, StatusRejected}},
}

// Apply validates (current, action, actor) against the transition table and
// returns the resulting status. For ActionDelete the status is returned
// unchanged; the caller clears IsActive.
func Apply(current Status, action Action, actor Actor, reason string) (Status, error) {
	r, ok := rules[action]
	if !ok {
		return current, ErrUnknownAction
	}
	if r.moderatorOnly && !actor.moderates() {
		return current, ErrActorNotAllowed
	}
	if r.ownerOnly && !actor.IsOwner {
		return current, ErrActorNotAllowed
	}
	if action == ActionDelete && !actor.IsOwner && !actor.moderates() {
		return current, ErrActorNotAllowed
	}
	allowed := false
	for _, s := range r.from {
		if s == current {
			allowed = true
			break
		}
	}
	if !allowed {
		return current, ErrInvalidTransition
	}
	if r.needsReason && reason == "" {
		return current, ErrReasonRequired
	}
	if action == ActionDelete {
		return current, nil
	}
	return r.to, nil
}

// NormalizeCreateStatus applies the trusted-host rule at creation time: an
// untrusted author asking for an immediate publish lands in the review queue
// instead.
func NormalizeCreateStatus(requested Status, trusted bool) Status {
	switch requested {
	case StatusPublished:
		if !trusted {
			return StatusPendingReview
		}
		return StatusPublished
	case StatusPendingReview:
		return StatusPendingReview
	default:
		return StatusDraft
	}
}

// TransitionStory mutates the story in place per the table: status,
// rejection-reason bookkeeping and the first-publish timestamp.
func TransitionStory(story *models.Story, action Action, actor Actor, reason string) error {
	next, err := Apply(Status(story.Status), action, actor, reason)
	if err != nil {
		return err
	}
	if action == ActionDelete {
		story.IsActive = false
		return nil
	}
	story.Status = string(next)
	if next == StatusRejected {
		story.RejectionReason = reason
	} else {
		story.RejectionReason = ""
	}
	if next == StatusPublished && story.PublishedAt == nil {
		now := time.Now()
		story.PublishedAt = &now
	}
	return nil
}

// TransitionExperience mirrors TransitionStory for experience listings.
func TransitionExperience(exp *models.Experience, action Action, actor Actor, reason string) error {
	next, err := Apply(Status(exp.Status), action, actor, reason)
	if err != nil {
		return err
	}
	if action == ActionDelete {
		exp.IsActive = false
		return nil
	}
	exp.Status = string(next)
	if next == StatusRejected {
		exp.RejectionReason = reason
	} else {
		exp.RejectionReason = ""
	}
	if next == StatusPublished && exp.PublishedAt == nil {
		now := time.Now()
		exp.PublishedAt = &now
	}
	return nil
}

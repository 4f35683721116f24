package domain

import "time"

// DocumentStatus represents the lifecycle state of a document under review.
type DocumentStatus string

const (
	StatusNew         DocumentStatus = "new"
	StatusPending     DocumentStatus = "pending"
	StatusInProgress  DocumentStatus = "in_progress"
	StatusChangesMade DocumentStatus = "changes_made"
	StatusApproved    DocumentStatus = "approved"
)

// ParseStatus validates a raw status string against the enum.
func ParseStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(s) {
	case StatusNew, StatusPending, StatusInProgress, StatusChangesMade, StatusApproved:
		return DocumentStatus(s), nil
	default:
		return "", ErrValidation
	}
}

// Action is a workflow operation an actor performs on a document.
type Action string

const (
	// ActionOpen is the first authorized read by an assigned user.
	ActionOpen Action = "open"
	// ActionSubmitChanges marks the reviewer's edits as complete.
	ActionSubmitChanges Action = "submit_changes"
	// ActionApprove is the approver's final sign-off.
	ActionApprove Action = "approve"
	// ActionRequestChanges sends the document back to the reviewer with notes.
	ActionRequestChanges Action = "request_changes"
)

type transitionKey struct {
	from   DocumentStatus
	role   Role
	action Action
}

// transitions is the authoritative workflow table. Any (status, role, action)
// triple not present here is rejected with ErrInvalidTransition.
var transitions = map[transitionKey]DocumentStatus{
	{StatusNew, RoleReviewer, ActionOpen}:     StatusInProgress,
	{StatusPending, RoleReviewer, ActionOpen}: StatusInProgress,
	{StatusNew, RoleApprover, ActionOpen}:     StatusInProgress,
	{StatusPending, RoleApprover, ActionOpen}: StatusInProgress,

	{StatusInProgress, RoleReviewer, ActionSubmitChanges}: StatusChangesMade,

	{StatusInProgress, RoleApprover, ActionApprove}:  StatusApproved,
	{StatusChangesMade, RoleApprover, ActionApprove}: StatusApproved,

	{StatusInProgress, RoleApprover, ActionRequestChanges}:  StatusInProgress,
	{StatusChangesMade, RoleApprover, ActionRequestChanges}: StatusInProgress,
}

// NextStatus resolves the workflow table for one transition.
func NextStatus(from DocumentStatus, role Role, action Action) (DocumentStatus, error) {
	next, ok := transitions[transitionKey{from, role, action}]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// Document is the core aggregate of the review workflow. Content is an opaque
// base64-encoded blob round-tripped as-is; no format is imposed here.
type Document struct {
	ID             string         `json:"id" bson:"_id"`
	Title          string         `json:"title" bson:"title"`
	Content        string         `json:"content,omitempty" bson:"content,omitempty"`
	ReviewerID     string         `json:"reviewer_id" bson:"reviewer_id"`
	Approvers      []string       `json:"approvers" bson:"approvers"`
	Status         DocumentStatus `json:"status" bson:"status"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	LastModified   time.Time      `json:"last_modified" bson:"last_modified"`
	Notes          string         `json:"notes,omitempty" bson:"notes,omitempty"`
	LastReviewedBy string         `json:"last_reviewed_by,omitempty" bson:"last_reviewed_by,omitempty"`
	ChangesSummary string         `json:"changes_summary,omitempty" bson:"changes_summary,omitempty"`
}

// AccessibleBy reports whether the user is the assigned reviewer or one of
// the assigned approvers.
func (d *Document) AccessibleBy(userID string) bool {
	if d.ReviewerID == userID {
		return true
	}
	for _, id := range d.Approvers {
		if id == userID {
			return true
		}
	}
	return false
}

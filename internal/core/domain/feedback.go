package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a feedback request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusSubmitted RequestStatus = "submitted"
	StatusExpired   RequestStatus = "expired"
)

// validTransitions defines the allowed state machine transitions. Both
// submitted and expired are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusSubmitted, StatusExpired},
}

var ErrRequestNotFound = errors.New("feedback request not found")
var ErrAlreadySubmitted = errors.New("feedback already submitted")
var ErrRequestExpired = errors.New("feedback request expired")
var ErrDuplicateToken = errors.New("feedback token already exists")

const (
	RatingMin = 1
	RatingMax = 5
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FeedbackRequest is the core aggregate: a single tokenized invitation for one
// client to submit feedback exactly once. The issuing HR identity is
// denormalized onto the record at creation, so rendering the form never needs
// a join and the snapshot stays immutable even if the account changes later.
type FeedbackRequest struct {
	ID          string        `json:"id"`
	Token       string        `json:"token"`
	HRUserID    string        `json:"hr_user_id"`
	HRName      string        `json:"hr_name"`
	HREmail     string        `json:"hr_email"`
	ClientEmail string        `json:"client_email"`
	ClientName  string        `json:"client_name"`
	Status      RequestStatus `json:"status"`
	Feedback    string        `json:"feedback,omitempty"`
	Rating      int           `json:"rating,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty"`
}

// ValidRating reports whether rating is inside the accepted 1..5 range.
func ValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}

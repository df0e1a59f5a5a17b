package ports

import (
	"context"

	"github.com/pulsehr/feedback-flow/internal/core/domain"
)

// CreateRequestInput carries the data needed to issue a new feedback request.
// HRUserID comes from the verified session token, never from the request body.
type CreateRequestInput struct {
	HRUserID    string
	ClientEmail string
	ClientName  string
}

// CreateRequestResult is returned after a request has been persisted.
type CreateRequestResult struct {
	Token string
	Link  string
}

// RequestDetail is the read-only view used to render the feedback form.
type RequestDetail struct {
	ClientEmail string
	ClientName  string
	HREmail     string
	HRName      string
	Status      domain.RequestStatus
}

// SubmitFeedbackInput carries a client's answer for one token.
type SubmitFeedbackInput struct {
	Token    string
	Feedback string
	Rating   int
}

// SubmitFeedbackResult confirms a successful submission with the subject
// identities the caller needs for follow-up content.
type SubmitFeedbackResult struct {
	ClientEmail string
	ClientName  string
	HREmail     string
	HRName      string
}

// FeedbackService is the workflow engine driving the request lifecycle.
type FeedbackService interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*CreateRequestResult, error)
	VerifyRequest(ctx context.Context, token string) (*RequestDetail, error)
	SubmitFeedback(ctx context.Context, input SubmitFeedbackInput) (*SubmitFeedbackResult, error)
	// ExpireStale applies the retention policy, transitioning overdue pending
	// requests to expired. Invoked by the background sweeper.
	ExpireStale(ctx context.Context) (int64, error)
}

package ports

import (
	"context"
	"time"

	"github.com/pulsehr/feedback-flow/internal/core/domain"
)

// FeedbackRepository defines persistence operations for feedback requests.
type FeedbackRepository interface {
	// Create inserts a new pending request. A token collision surfaces as
	// domain.ErrDuplicateToken (unique index at the store).
	Create(ctx context.Context, r *domain.FeedbackRequest) (*domain.FeedbackRequest, error)

	FindByToken(ctx context.Context, token string) (*domain.FeedbackRequest, error)

	// Submit performs the pending→submitted transition as a single conditional
	// update keyed on status=pending, so concurrent submissions on the same
	// token yield exactly one success. Returns the updated record, or
	// domain.ErrRequestNotFound / domain.ErrAlreadySubmitted /
	// domain.ErrRequestExpired when the transition cannot apply.
	Submit(ctx context.Context, token, feedback string, rating int, submittedAt time.Time) (*domain.FeedbackRequest, error)

	// ExpirePending marks all pending requests created before cutoff as
	// expired and returns how many records changed.
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}

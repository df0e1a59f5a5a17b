package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pulsehr/feedback-flow/internal/api/metrics"
	"github.com/pulsehr/feedback-flow/internal/core/domain"
	"github.com/pulsehr/feedback-flow/internal/core/ports"
)

const (
	// tokenRetries bounds the insert attempts when the unique index reports
	// a token collision. UUID collisions are vanishingly rare; past this the
	// store is misbehaving and the error goes to the caller.
	tokenRetries = 3

	defaultNotifyTimeout = 5 * time.Second
	defaultRequestTTL    = 30 * 24 * time.Hour
)

// NotifyGuard abstracts the duplicate-send store (Redis). A send already seen
// inside the TTL window is skipped so retried submissions do not re-mail the
// same recipient.
type NotifyGuard interface {
	IsDuplicate(ctx context.Context, kind, recipient, token string) (bool, error)
	Mark(ctx context.Context, kind, recipient, token string) error
}

// FeedbackService orchestrates the request lifecycle: creation and link
// issuance, form verification, the single pending→submitted transition, and
// best-effort notifications around it.
type FeedbackService struct {
	users         ports.UserRepository
	requests      ports.FeedbackRepository
	notifier      ports.Notifier
	guard         NotifyGuard
	log           zerolog.Logger
	baseURL       string
	notifyTimeout time.Duration
	requestTTL    time.Duration
}

// FeedbackServiceOptions tunes the workflow engine. Zero values fall back to
// sensible defaults.
type FeedbackServiceOptions struct {
	// BaseURL is the public prefix of feedback links, e.g. https://hr.example.com.
	BaseURL string
	// NotifyTimeout bounds each notification send.
	NotifyTimeout time.Duration
	// RequestTTL is how long a pending request stays answerable.
	RequestTTL time.Duration
}

func NewFeedbackService(
	users ports.UserRepository,
	requests ports.FeedbackRepository,
	notifier ports.Notifier,
	guard NotifyGuard,
	log zerolog.Logger,
	opts FeedbackServiceOptions,
) *FeedbackService {
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = defaultNotifyTimeout
	}
	if opts.RequestTTL <= 0 {
		opts.RequestTTL = defaultRequestTTL
	}
	return &FeedbackService{
		users:         users,
		requests:      requests,
		notifier:      notifier,
		guard:         guard,
		log:           log,
		baseURL:       opts.BaseURL,
		notifyTimeout: opts.NotifyTimeout,
		requestTTL:    opts.RequestTTL,
	}
}

// CreateRequest persists a new pending request for the given client and mails
// them the feedback link. The notification is best-effort: the request exists
// once the insert succeeds, whatever happens to the email.
func (s *FeedbackService) CreateRequest(ctx context.Context, input ports.CreateRequestInput) (*ports.CreateRequestResult, error) {
	hrUser, err := s.users.FindByID(ctx, input.HRUserID)
	if err != nil {
		return nil, err
	}
	if !hrUser.IsHR() {
		return nil, domain.ErrForbidden
	}

	if input.ClientEmail == "" || input.ClientName == "" {
		return nil, fmt.Errorf("%w: clientEmail and clientName are required", domain.ErrInvalidInput)
	}

	var created *domain.FeedbackRequest
	for attempt := 0; attempt < tokenRetries; attempt++ {
		req := &domain.FeedbackRequest{
			Token:       uuid.NewString(),
			HRUserID:    hrUser.ID,
			HRName:      hrUser.Name,
			HREmail:     hrUser.Email,
			ClientEmail: input.ClientEmail,
			ClientName:  input.ClientName,
			Status:      domain.StatusPending,
			CreatedAt:   time.Now().UTC(),
		}

		created, err = s.requests.Create(ctx, req)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateToken) {
			s.log.Error().Err(err).Str("client_email", input.ClientEmail).Msg("failed to create feedback request")
			return nil, err
		}
		s.log.Warn().Int("attempt", attempt+1).Msg("feedback token collision, regenerating")
	}
	if err != nil {
		return nil, fmt.Errorf("create request: token collisions exhausted retries: %w", err)
	}

	metrics.RequestsCreatedTotal.Inc()
	s.log.Info().
		Str("token", created.Token).
		Str("hr_email", created.HREmail).
		Str("client_email", created.ClientEmail).
		Msg("feedback request created")

	link := s.feedbackLink(created.Token)
	s.notify(ctx, ports.Notification{
		Kind:      ports.NotifyRequestLink,
		Recipient: created.ClientEmail,
		Fields: map[string]string{
			"client_name":   created.ClientName,
			"feedback_link": link,
		},
	}, created.Token)

	return &ports.CreateRequestResult{Token: created.Token, Link: link}, nil
}

// VerifyRequest returns the metadata needed to render the feedback form.
// It never changes state and always reports the real issuing HR identity.
func (s *FeedbackService) VerifyRequest(ctx context.Context, token string) (*ports.RequestDetail, error) {
	req, err := s.requests.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return &ports.RequestDetail{
		ClientEmail: req.ClientEmail,
		ClientName:  req.ClientName,
		HREmail:     req.HREmail,
		HRName:      req.HRName,
		Status:      req.Status,
	}, nil
}

// SubmitFeedback applies the one allowed mutation: pending→submitted with the
// answer payload. The transition is a conditional update at the store, so a
// concurrent duplicate loses with ErrAlreadySubmitted rather than overwriting.
// Both follow-up notifications fire only after the transition is persisted.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, input ports.SubmitFeedbackInput) (*ports.SubmitFeedbackResult, error) {
	if input.Token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}
	if input.Feedback == "" {
		return nil, fmt.Errorf("%w: feedback text is required", domain.ErrInvalidInput)
	}
	if !domain.ValidRating(input.Rating) {
		return nil, fmt.Errorf("%w: rating must be an integer between %d and %d",
			domain.ErrInvalidInput, domain.RatingMin, domain.RatingMax)
	}

	req, err := s.requests.Submit(ctx, input.Token, input.Feedback, input.Rating, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySubmitted) {
			metrics.SubmissionConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.FeedbackSubmittedTotal.WithLabelValues(strconv.Itoa(req.Rating)).Inc()
	s.log.Info().
		Str("token", req.Token).
		Int("rating", req.Rating).
		Msg("feedback submitted")

	s.notify(ctx, ports.Notification{
		Kind:      ports.NotifyThankYou,
		Recipient: req.ClientEmail,
		Fields:    map[string]string{"client_name": req.ClientName},
	}, req.Token)

	s.notify(ctx, ports.Notification{
		Kind:      ports.NotifyHRSubmitted,
		Recipient: req.HREmail,
		Fields: map[string]string{
			"hr_name":     req.HRName,
			"client_name": req.ClientName,
		},
	}, req.Token)

	return &ports.SubmitFeedbackResult{
		ClientEmail: req.ClientEmail,
		ClientName:  req.ClientName,
		HREmail:     req.HREmail,
		HRName:      req.HRName,
	}, nil
}

// ExpireStale transitions pending requests older than the retention window to
// expired. Called periodically by the sweeper.
func (s *FeedbackService) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.requestTTL)
	n, err := s.requests.ExpirePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire stale requests: %w", err)
	}
	if n > 0 {
		metrics.RequestsExpiredTotal.Add(float64(n))
		s.log.Info().Int64("count", n).Time("cutoff", cutoff).Msg("pending requests expired")
	}
	return n, nil
}

// notify sends one best-effort notification under its own timeout. A guard
// hit skips the send; guard failures log and fall open, mirroring how the
// engine treats every notification-path error as non-fatal.
func (s *FeedbackService) notify(ctx context.Context, n ports.Notification, token string) {
	if s.guard != nil {
		isDup, err := s.guard.IsDuplicate(ctx, string(n.Kind), n.Recipient, token)
		if err != nil {
			s.log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("notify guard check failed, sending anyway")
		} else if isDup {
			s.log.Debug().Str("kind", string(n.Kind)).Str("recipient", n.Recipient).Msg("duplicate notification skipped")
			metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "skipped").Inc()
			return
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	res := s.notifier.Send(sendCtx, n)
	if !res.OK {
		metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "error").Inc()
		s.log.Error().Err(res.Err).
			Str("kind", string(n.Kind)).
			Str("recipient", n.Recipient).
			Msg("notification delivery failed")
		return
	}

	metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "ok").Inc()
	if s.guard != nil {
		if err := s.guard.Mark(ctx, string(n.Kind), n.Recipient, token); err != nil {
			s.log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("failed to mark notification as sent")
		}
	}
}

func (s *FeedbackService) feedbackLink(token string) string {
	return s.baseURL + "/feedback/" + token
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulsehr/feedback-flow/internal/core/domain"
)

const requestsCollection = "feedback_requests"

// FeedbackRepository implements ports.FeedbackRepository against MongoDB.
type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(requestsCollection)}
}

type mongoRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Token       string             `bson:"token"`
	HRUserID    string             `bson:"hr_user_id"`
	HRName      string             `bson:"hr_name"`
	HREmail     string             `bson:"hr_email"`
	ClientEmail string             `bson:"client_email"`
	ClientName  string             `bson:"client_name"`
	Status      string             `bson:"status"`
	Feedback    string             `bson:"feedback,omitempty"`
	Rating      int                `bson:"rating,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	SubmittedAt *time.Time         `bson:"submitted_at,omitempty"`
}

// Create inserts a new pending request. The unique token index turns a
// generator collision into ErrDuplicateToken so the caller can retry with a
// fresh token instead of silently reusing an existing record.
func (r *FeedbackRepository) Create(ctx context.Context, req *domain.FeedbackRequest) (*domain.FeedbackRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRequest{
		Token:       req.Token,
		HRUserID:    req.HRUserID,
		HRName:      req.HRName,
		HREmail:     req.HREmail,
		ClientEmail: req.ClientEmail,
		ClientName:  req.ClientName,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateToken
		}
		return nil, fmt.Errorf("insert feedback request: %w", err)
	}

	created := *req
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *FeedbackRepository) FindByToken(ctx context.Context, token string) (*domain.FeedbackRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRequest
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find feedback request: %w", err)
	}
	return mr.toDomain(), nil
}

// Submit performs the pending→submitted transition as one conditional update
// keyed on status=pending. Under concurrent submissions exactly one caller
// matches; the losers are disambiguated by re-reading the record.
func (r *FeedbackRepository) Submit(ctx context.Context, token, feedback string, rating int, submittedAt time.Time) (*domain.FeedbackRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"token": token, "status": string(domain.StatusPending)}
	update := bson.M{"$set": bson.M{
		"status":       string(domain.StatusSubmitted),
		"feedback":     feedback,
		"rating":       rating,
		"submitted_at": submittedAt.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr)
	if err == nil {
		return mr.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}

	// No pending record matched: unknown token, already submitted, or expired.
	existing, findErr := r.FindByToken(ctx, token)
	if findErr != nil {
		return nil, findErr
	}
	switch existing.Status {
	case domain.StatusSubmitted:
		return nil, domain.ErrAlreadySubmitted
	case domain.StatusExpired:
		return nil, domain.ErrRequestExpired
	}
	return nil, fmt.Errorf("submit feedback: request in unexpected state %q", existing.Status)
}

// ExpirePending bulk-transitions pending requests created before cutoff.
func (r *FeedbackRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":     string(domain.StatusPending),
		"created_at": bson.M{"$lt": cutoff.UTC()},
	}
	update := bson.M{"$set": bson.M{"status": string(domain.StatusExpired)}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("expire pending requests: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the unique token index plus the status/created_at
// index the expiry sweep scans on.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mr *mongoRequest) toDomain() *domain.FeedbackRequest {
	return &domain.FeedbackRequest{
		ID:          mr.ID.Hex(),
		Token:       mr.Token,
		HRUserID:    mr.HRUserID,
		HRName:      mr.HRName,
		HREmail:     mr.HREmail,
		ClientEmail: mr.ClientEmail,
		ClientName:  mr.ClientName,
		Status:      domain.RequestStatus(mr.Status),
		Feedback:    mr.Feedback,
		Rating:      mr.Rating,
		CreatedAt:   mr.CreatedAt.UTC(),
		SubmittedAt: mr.SubmittedAt,
	}
}

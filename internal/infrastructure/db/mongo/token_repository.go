package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrack/finance-system/internal/core/domain"
)

const tokensCollection = "verification_tokens"

// TokenRepository persists single-use verification and reset tokens. The
// token value is the document id, so consumption maps onto a single
// FindOneAndDelete and inherits MongoDB's per-document atomicity: of two
// racing consumers exactly one gets the document back.
type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(tokensCollection)}
}

type tokenDoc struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Kind      string    `bson:"kind"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d tokenDoc) toDomain() domain.VerificationToken {
	return domain.VerificationToken{
		Token:     d.Token,
		UserID:    d.UserID,
		Kind:      domain.TokenKind(d.Kind),
		ExpiresAt: d.ExpiresAt.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// Replace stores the token after removing any prior token of the same kind
// for the same user, keeping at most one live token per (user, kind).
func (r *TokenRepository) Replace(ctx context.Context, token *domain.VerificationToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": token.UserID, "kind": string(token.Kind)}); err != nil {
		return fmt.Errorf("replace token: %w", err)
	}

	doc := tokenDoc{
		Token:     token.Token,
		UserID:    token.UserID,
		Kind:      string(token.Kind),
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("replace token: %w", err)
	}
	return nil
}

// Consume atomically finds and deletes the record for the token value. The
// kind is part of the filter, so a token of the other kind is reported as not
// found and stays live. Expiry is not checked here: the caller decides what a
// stale record means.
func (r *TokenRepository) Consume(ctx context.Context, token string, kind domain.TokenKind) (*domain.VerificationToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDoc
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": token, "kind": string(kind)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("consume token: %w", err)
	}
	rec := doc.toDomain()
	return &rec, nil
}

func (r *TokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete user tokens: %w", err)
	}
	return nil
}

// EnsureIndexes creates the (user_id, kind) index used by Replace. No TTL
// index: an expired token must still be observable as expired, not silently
// vanish into a not-found.
func (r *TokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "kind", Value: 1}},
	})
	return err
}

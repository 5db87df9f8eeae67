package mongo

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onlineshop/order-system/internal/core/domain"
)

const refreshTokensCollection = "refresh_tokens"

// tokenBytes sizes the opaque value at 256 bits of randomness; the
// value is the sole authentication factor for rotation.
const tokenBytes = 32

// RefreshTokenRepository is the durable refresh-token store. Every
// mutation is a single-document operation, which MongoDB applies
// atomically: two concurrent deletes of the same value report exactly
// one removal between them.
type RefreshTokenRepository struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewRefreshTokenRepository(db *mongo.Database, ttl time.Duration) *RefreshTokenRepository {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RefreshTokenRepository{coll: db.Collection(refreshTokensCollection), ttl: ttl}
}

type mongoRefreshToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Value     string             `bson:"value"`
	UserID    string             `bson:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Create generates a fresh opaque value and persists it for userID with
// expiry now + TTL.
func (r *RefreshTokenRepository) Create(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	value, err := generateOpaqueValue()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := mongoRefreshToken{
		Value:     value,
		UserID:    userID,
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert refresh token: %w", err)
	}

	return &domain.RefreshToken{
		ID:        res.InsertedID.(primitive.ObjectID).Hex(),
		Value:     doc.Value,
		UserID:    doc.UserID,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *RefreshTokenRepository) FindByValue(ctx context.Context, value string) (*domain.RefreshToken, error) {
	var mt mongoRefreshToken
	if err := r.coll.FindOne(ctx, bson.M{"value": value}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &domain.RefreshToken{
		ID:        mt.ID.Hex(),
		Value:     mt.Value,
		UserID:    mt.UserID,
		ExpiresAt: mt.ExpiresAt,
		CreatedAt: mt.CreatedAt,
	}, nil
}

// DeleteByValue removes the record for value and reports whether a
// document was actually deleted. A false return under concurrency means
// another rotation already consumed the value.
func (r *RefreshTokenRepository) DeleteByValue(ctx context.Context, value string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"value": value})
	if err != nil {
		return false, fmt.Errorf("delete refresh token: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteByUser removes all outstanding tokens for the subject
// (multi-device revocation on logout).
func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete refresh tokens by user: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique value index, the user_id index, and
// a TTL index that sweeps expired rows out of band. The rotation path
// still checks expiry itself; the TTL sweep is best-effort cleanup.
func (r *RefreshTokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "value", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// generateOpaqueValue returns a base64url-encoded 256-bit random string.
func generateOpaqueValue() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token value: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/domain/models"
)

// UserRepository defines persistence for administrator accounts and their
// refresh tokens.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user models.User) (string, error)
	Count(ctx context.Context) (int64, error)
	SaveRefreshToken(ctx context.Context, token models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// MongoUserRepository implements UserRepository on the shared Store.
type MongoUserRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewUserRepository builds the users collection adapter.
func NewUserRepository(store *Store, logger *zap.Logger) *MongoUserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoUserRepository{store: store, logger: logger}
}

// FindByEmail returns nil when no account matches; callers decide how to
// surface that so login failures stay indistinct.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.store.collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// Create inserts an administrator account.
func (r *MongoUserRepository) Create(ctx context.Context, user models.User) (string, error) {
	user.ID = primitive.NilObjectID
	user.CreatedAt = time.Now()

	res, err := r.store.collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	r.logger.Info("user created", zap.String("email", user.Email))
	return id.Hex(), nil
}

// Count returns the number of administrator accounts.
func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.collection(usersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// SaveRefreshToken persists a refresh token until it is used or revoked.
func (r *MongoUserRepository) SaveRefreshToken(ctx context.Context, token models.RefreshToken) error {
	if _, err := r.store.collection(refreshTokenCollection).InsertOne(ctx, token); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// FindRefreshToken returns nil when the token is unknown.
func (r *MongoUserRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.store.collection(refreshTokenCollection).FindOne(ctx, bson.M{"token": token}).Decode(&rt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return &rt, nil
}

// DeleteRefreshToken revokes a refresh token. Deleting an unknown token is
// not an error.
func (r *MongoUserRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := r.store.collection(refreshTokenCollection).DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/domain/models"
)

// MemberRepository defines roster persistence over the members collection.
type MemberRepository interface {
	List(ctx context.Context) ([]models.Member, error)
	Create(ctx context.Context, member models.Member) (string, error)
	Update(ctx context.Context, id string, member models.Member) error
	Delete(ctx context.Context, id string) error
}

// MongoMemberRepository implements MemberRepository on the shared Store.
type MongoMemberRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewMemberRepository builds the members collection adapter.
func NewMemberRepository(store *Store, logger *zap.Logger) *MongoMemberRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoMemberRepository{store: store, logger: logger}
}

// List fetches every member in store order. Store failures propagate to the
// caller unmodified; there is no retry.
func (r *MongoMemberRepository) List(ctx context.Context) ([]models.Member, error) {
	cursor, err := r.store.collection(membersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}

	r.logger.Debug("members listed", zap.Int("count", len(members)))
	return members, nil
}

// Create inserts a member, defaulting status to Ativo and role to Membro
// when absent and stamping created_at. Returns the store-assigned
// identifier.
func (r *MongoMemberRepository) Create(ctx context.Context, member models.Member) (string, error) {
	if member.Status == "" {
		r.logger.Warn("member created without status, defaulting", zap.String("default", string(models.StatusAtivo)))
	}
	if member.Role == "" {
		r.logger.Warn("member created without role, defaulting", zap.String("default", string(models.RoleMembro)))
	}
	member = memberWithDefaults(member)
	member.ID = primitive.NilObjectID
	member.CreatedAt = time.Now()

	res, err := r.store.collection(membersCollection).InsertOne(ctx, member)
	if err != nil {
		return "", fmt.Errorf("failed to insert member: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	r.logger.Info("member created", zap.String("id", id.Hex()))
	return id.Hex(), nil
}

// memberWithDefaults fills the record-level defaults applied at the
// collection boundary, not in the form layer, so they hold for every
// caller.
func memberWithDefaults(m models.Member) models.Member {
	if m.Status == "" {
		m.Status = models.StatusAtivo
	}
	if m.Role == "" {
		m.Role = models.RoleMembro
	}
	return m
}

// Update merges the provided fields onto the stored record and stamps
// updated_at. Identity and creation metadata are never overwritten.
func (r *MongoMemberRepository) Update(ctx context.Context, id string, member models.Member) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid member id %q: %w", id, err)
	}

	doc, err := toDocument(member)
	if err != nil {
		return err
	}
	delete(doc, "_id")
	delete(doc, "created_at")
	doc["updated_at"] = time.Now()

	res, err := r.store.collection(membersCollection).UpdateByID(ctx, oid, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	r.logger.Info("member updated", zap.String("id", id))
	return nil
}

// Delete removes the member by identity.
func (r *MongoMemberRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid member id %q: %w", id, err)
	}

	res, err := r.store.collection(membersCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete member %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	r.logger.Info("member deleted", zap.String("id", id))
	return nil
}

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

const dateLayout = "2006-01-02"

// TransactionRepository defines ledger persistence over the finances
// collection.
type TransactionRepository interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, tx models.Transaction) (string, error)
	Update(ctx context.Context, id string, tx models.Transaction) error
	Delete(ctx context.Context, id string) error
}

// MongoTransactionRepository implements TransactionRepository on the shared
// Store.
type MongoTransactionRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewTransactionRepository builds the finances collection adapter.
func NewTransactionRepository(store *Store, logger *zap.Logger) *MongoTransactionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoTransactionRepository{store: store, logger: logger}
}

// List fetches every transaction in store order. The Amount codec tolerates
// documents whose amount was stored as a string.
func (r *MongoTransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	cursor, err := r.store.collection(financesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []models.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	for i, tx := range transactions {
		if tx.Type == "" {
			r.logger.Warn("transaction missing type", zap.Int("index", i), zap.String("id", tx.ID.Hex()))
		}
		if tx.Date == "" {
			r.logger.Warn("transaction missing date", zap.Int("index", i), zap.String("id", tx.ID.Hex()))
		}
	}

	r.logger.Debug("transactions listed", zap.Int("count", len(transactions)))
	return transactions, nil
}

// Create validates the record shape before any store call: the type must be
// income or expense and the amount must have normalized to a positive
// number. A missing date defaults to today (local clock).
func (r *MongoTransactionRepository) Create(ctx context.Context, tx models.Transaction) (string, error) {
	if err := validateTransaction(tx); err != nil {
		return "", err
	}
	if tx.Date == "" {
		r.logger.Warn("transaction created without date, defaulting to today")
		tx.Date = time.Now().Format(dateLayout)
	}
	tx.ID = primitive.NilObjectID
	tx.CreatedAt = time.Now()

	res, err := r.store.collection(financesCollection).InsertOne(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	r.logger.Info("transaction created", zap.String("id", id.Hex()), zap.String("type", string(tx.Type)))
	return id.Hex(), nil
}

// Update merges the provided fields onto the stored record and stamps
// updated_at. The amount is written back as a number regardless of how the
// document originally stored it.
func (r *MongoTransactionRepository) Update(ctx context.Context, id string, tx models.Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q: %w", id, err)
	}

	doc, err := toDocument(tx)
	if err != nil {
		return err
	}
	delete(doc, "_id")
	delete(doc, "created_at")
	doc["updated_at"] = time.Now()

	res, err := r.store.collection(financesCollection).UpdateByID(ctx, oid, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}

	r.logger.Info("transaction updated", zap.String("id", id))
	return nil
}

// Delete removes the transaction by identity.
func (r *MongoTransactionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q: %w", id, err)
	}

	res, err := r.store.collection(financesCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}

	r.logger.Info("transaction deleted", zap.String("id", id))
	return nil
}

func validateTransaction(tx models.Transaction) error {
	if !models.ValidTransactionType(tx.Type) {
		return &models.ValidationError{Field: "type", Message: `type must be "income" or "expense"`}
	}
	if tx.Amount <= 0 {
		return &models.ValidationError{Field: "amount", Message: "amount must be a positive number"}
	}
	return nil
}

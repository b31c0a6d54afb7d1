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

const transactionsCollection = "transactions"

type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionsCollection)}
}

type transactionDoc struct {
	ID          string    `bson:"_id"`
	Amount      float64   `bson:"amount"`
	Description string    `bson:"description"`
	Date        string    `bson:"date"`
	CategoryID  string    `bson:"category_id"`
	Type        string    `bson:"type"`
	UserID      string    `bson:"user_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toTransactionDoc(t *domain.Transaction) transactionDoc {
	return transactionDoc{
		ID:          t.ID,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		CategoryID:  t.CategoryID,
		Type:        string(t.Type),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
	}
}

func (d transactionDoc) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          d.ID,
		Amount:      d.Amount,
		Description: d.Description,
		Date:        d.Date,
		CategoryID:  d.CategoryID,
		Type:        domain.CategoryType(d.Type),
		UserID:      d.UserID,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toTransactionDoc(tx)); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a transaction by id. When userID is non-empty an
// additional owner filter is applied; admins pass "".
func (r *TransactionRepository) FindByID(ctx context.Context, id, userID string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if userID != "" {
		filter["user_id"] = userID
	}

	var doc transactionDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	tx := doc.toDomain()
	return &tx, nil
}

// FindByUser lists transactions for one owner, or for everyone when userID
// is empty.
func (r *TransactionRepository) FindByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	transactions := []domain.Transaction{}
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		transactions = append(transactions, doc.toDomain())
	}
	return transactions, cursor.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": tx.ID}, toTransactionDoc(tx))
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// DeleteByCategory removes every transaction referencing the category,
// regardless of owner. The caller has already proven ownership of the
// category itself.
func (r *TransactionRepository) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"category_id": categoryID})
	if err != nil {
		return 0, fmt.Errorf("delete category transactions: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TransactionRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("delete user transactions: %w", err)
	}
	return nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes backing the scoped queries and the
// category cascade.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

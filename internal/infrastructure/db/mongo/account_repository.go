package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

const accountsCollection = "accounts"

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

// mongoAccount stores timestamps as Unix nanoseconds; BSON datetimes only
// carry milliseconds.
type mongoAccount struct {
	Seq          int    `bson:"seq"`
	Username     string `bson:"username"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (r *AccountRepository) LoadAll(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	var docs []mongoAccount
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	out := make([]domain.Account, len(docs))
	for i, d := range docs {
		out[i] = domain.Account{
			Username:     d.Username,
			PasswordHash: d.PasswordHash,
			Role:         domain.Role(d.Role),
			CreatedAt:    nanosToTime(d.CreatedAt),
			UpdatedAt:    nanosToTime(d.UpdatedAt),
		}
	}
	return out, nil
}

// ReplaceAll is not atomic across the delete and the insert; a standalone
// server has no multi-document transactions.
func (r *AccountRepository) ReplaceAll(ctx context.Context, accounts []domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, len(accounts))
	for i, a := range accounts {
		docs[i] = mongoAccount{
			Seq:          i,
			Username:     a.Username,
			PasswordHash: a.PasswordHash,
			Role:         string(a.Role),
			CreatedAt:    timeToNanos(a.CreatedAt),
			UpdatedAt:    timeToNanos(a.UpdatedAt),
		}
	}
	return replaceCollection(ctx, r.coll, docs)
}

// EnsureIndexes creates the unique username index.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "seq", Value: 1}}},
	})
	return err
}

func replaceCollection(ctx context.Context, coll *mongo.Collection, docs []any) error {
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear %s: %w", coll.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("insert %s: %w", coll.Name(), err)
	}
	return nil
}

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

const bugsCollection = "bugs"

type BugRepository struct {
	coll *mongo.Collection
}

func NewBugRepository(db *mongo.Database) *BugRepository {
	return &BugRepository{coll: db.Collection(bugsCollection)}
}

var _ ports.BugRepository = (*BugRepository)(nil)

type mongoBug struct {
	ID                int    `bson:"_id"`
	Title             string `bson:"title"`
	Category          string `bson:"category"`
	Priority          string `bson:"priority"`
	Severity          string `bson:"severity"`
	Project           string `bson:"project"`
	CreatedAt         int64  `bson:"created_at"`
	Status            string `bson:"status"`
	AssignedDeveloper string `bson:"assigned_developer"`
	AttachmentPath    string `bson:"attachment_path,omitempty"`
	ReportedBy        string `bson:"reported_by"`
}

func (r *BugRepository) LoadAll(ctx context.Context) ([]domain.BugRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find bugs: %w", err)
	}
	var docs []mongoBug
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bugs: %w", err)
	}

	out := make([]domain.BugRecord, len(docs))
	for i, d := range docs {
		out[i] = domain.BugRecord{
			ID:                d.ID,
			Title:             d.Title,
			Category:          d.Category,
			Priority:          domain.Priority(d.Priority),
			Severity:          domain.Severity(d.Severity),
			Project:           d.Project,
			CreatedAt:         nanosToTime(d.CreatedAt),
			Status:            domain.BugStatus(d.Status),
			AssignedDeveloper: d.AssignedDeveloper,
			AttachmentPath:    d.AttachmentPath,
			ReportedBy:        d.ReportedBy,
		}
	}
	return out, nil
}

func (r *BugRepository) ReplaceAll(ctx context.Context, bugs []domain.BugRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, len(bugs))
	for i, b := range bugs {
		docs[i] = mongoBug{
			ID:                b.ID,
			Title:             b.Title,
			Category:          b.Category,
			Priority:          string(b.Priority),
			Severity:          string(b.Severity),
			Project:           b.Project,
			CreatedAt:         timeToNanos(b.CreatedAt),
			Status:            string(b.Status),
			AssignedDeveloper: b.AssignedDeveloper,
			AttachmentPath:    b.AttachmentPath,
			ReportedBy:        b.ReportedBy,
		}
	}
	return replaceCollection(ctx, r.coll, docs)
}

// EnsureIndexes creates the lookup indexes used by the per-role listings.
func (r *BugRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reported_by", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_developer", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

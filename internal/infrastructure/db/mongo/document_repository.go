package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contractflow/review-api/internal/core/domain"
	"github.com/contractflow/review-api/internal/core/ports"
)

const collectionDocuments = "documents"

type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(collectionDocuments)}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Document
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return &d, nil
}

// ListForUser returns documents assigned to the user. Reviewers match on
// reviewer_id, approvers on approvers membership.
func (r *DocumentRepository) ListForUser(ctx context.Context, userID string, role domain.Role, status domain.DocumentStatus) ([]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if role == domain.RoleReviewer {
		filter["reviewer_id"] = userID
	} else {
		filter["approvers"] = userID
	}
	if status != "" {
		filter["status"] = string(status)
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]*domain.Document, 0)
	for cursor.Next(ctx) {
		var d domain.Document
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, &d)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Update applies a partial $set built from the non-nil patch fields and
// always bumps last_modified.
func (r *DocumentRepository) Update(ctx context.Context, id string, patch ports.DocumentPatch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"last_modified": time.Now().UTC()}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Approvers != nil {
		set["approvers"] = *patch.Approvers
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.LastReviewedBy != nil {
		set["last_reviewed_by"] = *patch.LastReviewedBy
	}
	if patch.ChangesSummary != nil {
		set["changes_summary"] = *patch.ChangesSummary
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// PromoteStale moves documents still in "new" created before the cutoff to
// "pending" in a single UpdateMany.
func (r *DocumentRepository) PromoteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{
			"status":     string(domain.StatusNew),
			"created_at": bson.M{"$lt": cutoff},
		},
		bson.M{"$set": bson.M{
			"status":        string(domain.StatusPending),
			"last_modified": time.Now().UTC(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("promote stale documents: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the indexes backing the assignment and sweep queries.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reviewer_id", Value: 1}}},
		{Keys: bson.D{{Key: "approvers", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

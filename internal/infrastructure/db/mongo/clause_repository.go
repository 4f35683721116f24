package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contractflow/review-api/internal/core/domain"
)

const collectionClauses = "clauses"

// ClauseRepository persists clause reference data. Clause ids are Mongo
// ObjectIDs exposed as hex strings.
type ClauseRepository struct {
	col *mongo.Collection
}

func NewClauseRepository(db *mongo.Database) *ClauseRepository {
	return &ClauseRepository{col: db.Collection(collectionClauses)}
}

type mongoClause struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Domain       string             `bson:"domain"`
	CreatedAt    time.Time          `bson:"created_at"`
	LastModified time.Time          `bson:"last_modified"`
}

func (mc mongoClause) toDomain() *domain.Clause {
	return &domain.Clause{
		ID:           mc.ID.Hex(),
		Title:        mc.Title,
		Description:  mc.Description,
		Domain:       mc.Domain,
		CreatedAt:    mc.CreatedAt,
		LastModified: mc.LastModified,
	}
}

func (r *ClauseRepository) List(ctx context.Context, domainFilter string) ([]*domain.Clause, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if domainFilter != "" {
		filter["domain"] = domainFilter
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list clauses: %w", err)
	}
	defer cursor.Close(ctx)

	clauses := make([]*domain.Clause, 0)
	for cursor.Next(ctx) {
		var mc mongoClause
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode clause: %w", err)
		}
		clauses = append(clauses, mc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list clauses: %w", err)
	}
	return clauses, nil
}

func (r *ClauseRepository) Create(ctx context.Context, c *domain.Clause) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClause{
		Title:        c.Title,
		Description:  c.Description,
		Domain:       c.Domain,
		CreatedAt:    c.CreatedAt,
		LastModified: c.LastModified,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert clause: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ClauseRepository) FindByID(ctx context.Context, id string) (*domain.Clause, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClauseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClause
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClauseNotFound
		}
		return nil, fmt.Errorf("find clause: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClauseRepository) Update(ctx context.Context, id, title, description, legalDomain string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClauseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":         title,
		"description":   description,
		"domain":        legalDomain,
		"last_modified": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update clause: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClauseNotFound
	}
	return nil
}

func (r *ClauseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClauseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete clause: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClauseNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

const toolsCollection = "ai_tools"

type AIToolRepository struct {
	coll *mongo.Collection
}

func NewAIToolRepository(db *mongo.Database) *AIToolRepository {
	return &AIToolRepository{coll: db.Collection(toolsCollection)}
}

type mongoTool struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	EmbedURL    string             `bson:"embed_url"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (t mongoTool) toDomain() *domain.AITool {
	return &domain.AITool{
		ID:          t.ID.Hex(),
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		EmbedURL:    t.EmbedURL,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func (r *AIToolRepository) EnsureIndexes(ctx context.Context) error {
	return uniqueSlugIndex(ctx, r.coll)
}

func (r *AIToolRepository) Create(ctx context.Context, t *domain.AITool) (*domain.AITool, error) {
	doc := mongoTool{
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		EmbedURL:    t.EmbedURL,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert tool: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *AIToolRepository) FindByID(ctx context.Context, id string) (*domain.AITool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrToolNotFound
	}

	var mt mongoTool
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrToolNotFound
		}
		return nil, fmt.Errorf("find tool: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *AIToolRepository) List(ctx context.Context, page, limit int, activeOnly bool) ([]domain.AITool, int64, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count tools: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list tools: %w", err)
	}
	defer cur.Close(ctx)

	tools := []domain.AITool{}
	for cur.Next(ctx) {
		var mt mongoTool
		if err := cur.Decode(&mt); err != nil {
			return nil, 0, fmt.Errorf("decode tool: %w", err)
		}
		tools = append(tools, *mt.toDomain())
	}
	return tools, total, cur.Err()
}

func (r *AIToolRepository) Update(ctx context.Context, t *domain.AITool) error {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return domain.ErrToolNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        t.Name,
		"slug":        t.Slug,
		"description": t.Description,
		"embed_url":   t.EmbedURL,
		"active":      t.Active,
		"updated_at":  t.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugExists
		}
		return fmt.Errorf("update tool: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrToolNotFound
	}
	return nil
}

func (r *AIToolRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrToolNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrToolNotFound
	}
	return nil
}

func (r *AIToolRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

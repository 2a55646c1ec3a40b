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

const (
	categoriesCollection = "categories"
	tagsCollection       = "tags"
)

type mongoTaxon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func uniqueSlugIndex(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CategoryRepository persists categories.
type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	return uniqueSlugIndex(ctx, r.coll)
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	doc := mongoTaxon{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	out := *c
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Category, error) {
	var mt mongoTaxon
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &domain.Category{
		ID:          mt.ID.Hex(),
		Name:        mt.Name,
		Slug:        mt.Slug,
		Description: mt.Description,
		CreatedAt:   mt.CreatedAt.UTC(),
		UpdatedAt:   mt.UpdatedAt.UTC(),
	}, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	cats := []domain.Category{}
	for cur.Next(ctx) {
		var mt mongoTaxon
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		cats = append(cats, domain.Category{
			ID:          mt.ID.Hex(),
			Name:        mt.Name,
			Slug:        mt.Slug,
			Description: mt.Description,
			CreatedAt:   mt.CreatedAt.UTC(),
			UpdatedAt:   mt.UpdatedAt.UTC(),
		})
	}
	return cats, cur.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"updated_at":  c.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugExists
		}
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCategoryNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// TagRepository persists tags.
type TagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(tagsCollection)}
}

func (r *TagRepository) EnsureIndexes(ctx context.Context) error {
	return uniqueSlugIndex(ctx, r.coll)
}

func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	doc := mongoTaxon{
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}

	out := *t
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*domain.Tag, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTagNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TagRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *TagRepository) findOne(ctx context.Context, filter bson.M) (*domain.Tag, error) {
	var mt mongoTaxon
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return &domain.Tag{
		ID:        mt.ID.Hex(),
		Name:      mt.Name,
		Slug:      mt.Slug,
		CreatedAt: mt.CreatedAt.UTC(),
		UpdatedAt: mt.UpdatedAt.UTC(),
	}, nil
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer cur.Close(ctx)

	tags := []domain.Tag{}
	for cur.Next(ctx) {
		var mt mongoTaxon
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		tags = append(tags, domain.Tag{
			ID:        mt.ID.Hex(),
			Name:      mt.Name,
			Slug:      mt.Slug,
			CreatedAt: mt.CreatedAt.UTC(),
			UpdatedAt: mt.UpdatedAt.UTC(),
		})
	}
	return tags, cur.Err()
}

func (r *TagRepository) Update(ctx context.Context, t *domain.Tag) error {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return domain.ErrTagNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":       t.Name,
		"slug":       t.Slug,
		"updated_at": t.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugExists
		}
		return fmt.Errorf("update tag: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTagNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoPost struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Slug          string             `bson:"slug"`
	Excerpt       string             `bson:"excerpt,omitempty"`
	Content       string             `bson:"content"`
	FeaturedImage string             `bson:"featured_image,omitempty"`
	CategoryID    string             `bson:"category_id,omitempty"`
	TagIDs        []string           `bson:"tag_ids,omitempty"`
	AuthorID      string             `bson:"author_id"`
	AuthorName    string             `bson:"author_name"`
	Status        string             `bson:"status"`
	Views         int64              `bson:"views"`
	PublishedAt   *time.Time         `bson:"published_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func fromDomainPost(p *domain.Post) mongoPost {
	return mongoPost{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		CategoryID:    p.CategoryID,
		TagIDs:        p.TagIDs,
		AuthorID:      p.AuthorID,
		AuthorName:    p.AuthorName,
		Status:        string(p.Status),
		Views:         p.Views,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (p mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:            p.ID.Hex(),
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		CategoryID:    p.CategoryID,
		TagIDs:        p.TagIDs,
		AuthorID:      p.AuthorID,
		AuthorName:    p.AuthorName,
		Status:        domain.PostStatus(p.Status),
		Views:         p.Views,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
}

// EnsureIndexes creates the unique slug index and the listing indexes.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "tag_ids", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	doc := fromDomainPost(post)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *PostRepository) findOne(ctx context.Context, filter bson.M) (*domain.Post, error) {
	var mp mongoPost
	if err := r.coll.FindOne(ctx, filter).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

// List applies the filter and returns one page plus the unpaged total.
// CategorySlug and TagSlug arrive already resolved to IDs by the service.
func (r *PostRepository) List(ctx context.Context, f domain.PostFilter) ([]domain.Post, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.CategorySlug != "" {
		filter["category_id"] = f.CategorySlug
	}
	if f.TagSlug != "" {
		filter["tag_ids"] = f.TagSlug
	}
	if f.Slug != "" {
		filter["slug"] = f.Slug
	}
	if f.AuthorID != "" {
		filter["author_id"] = f.AuthorID
	}
	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"excerpt": rx},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []domain.Post{}
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *mp.toDomain())
	}
	return posts, total, cur.Err()
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return domain.ErrPostNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":          post.Title,
		"slug":           post.Slug,
		"excerpt":        post.Excerpt,
		"content":        post.Content,
		"featured_image": post.FeaturedImage,
		"category_id":    post.CategoryID,
		"tag_ids":        post.TagIDs,
		"status":         string(post.Status),
		"published_at":   post.PublishedAt,
		"updated_at":     post.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugExists
		}
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// IncrementViews bumps the persistent view counter by one.
func (r *PostRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) CountByStatus(ctx context.Context, status domain.PostStatus) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
}

func (r *PostRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"category_id": categoryID})
}

func (r *PostRepository) CountByTag(ctx context.Context, tagID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"tag_ids": tagID})
}

// TotalViews sums the view counters across all posts.
func (r *PostRepository) TotalViews(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$views"}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("total views: %w", err)
	}
	defer cur.Close(ctx)

	var out struct {
		Total int64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&out); err != nil {
			return 0, fmt.Errorf("decode total views: %w", err)
		}
	}
	return out.Total, cur.Err()
}

func (r *PostRepository) Recent(ctx context.Context, limit int) ([]domain.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []domain.Post{}
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *mp.toDomain())
	}
	return posts, cur.Err()
}

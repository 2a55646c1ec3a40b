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

const mediaCollection = "media"

type MediaRepository struct {
	coll *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{coll: db.Collection(mediaCollection)}
}

type mongoMedia struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Key         string             `bson:"key"`
	FileName    string             `bson:"file_name"`
	ContentType string             `bson:"content_type"`
	Size        int64              `bson:"size"`
	Purpose     string             `bson:"purpose,omitempty"`
	URL         string             `bson:"url,omitempty"`
	Status      string             `bson:"status"`
	UploaderID  string             `bson:"uploader_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m mongoMedia) toDomain() *domain.Media {
	return &domain.Media{
		ID:          m.ID.Hex(),
		Key:         m.Key,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		Purpose:     m.Purpose,
		URL:         m.URL,
		Status:      domain.MediaStatus(m.Status),
		UploaderID:  m.UploaderID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *MediaRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MediaRepository) Create(ctx context.Context, m *domain.Media) (*domain.Media, error) {
	doc := mongoMedia{
		Key:         m.Key,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		Purpose:     m.Purpose,
		URL:         m.URL,
		Status:      string(m.Status),
		UploaderID:  m.UploaderID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert media: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MediaRepository) FindByID(ctx context.Context, id string) (*domain.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMediaNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MediaRepository) FindByKey(ctx context.Context, key string) (*domain.Media, error) {
	return r.findOne(ctx, bson.M{"key": key})
}

func (r *MediaRepository) findOne(ctx context.Context, filter bson.M) (*domain.Media, error) {
	var mm mongoMedia
	if err := r.coll.FindOne(ctx, filter).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("find media: %w", err)
	}
	return mm.toDomain(), nil
}

// List returns one page of media. contentType filters by MIME prefix, e.g.
// "image" matches image/png and image/jpeg.
func (r *MediaRepository) List(ctx context.Context, page, limit int, contentType string) ([]domain.Media, int64, error) {
	filter := bson.M{}
	if contentType != "" {
		filter["content_type"] = primitive.Regex{Pattern: "^" + contentType, Options: ""}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer cur.Close(ctx)

	items := []domain.Media{}
	for cur.Next(ctx) {
		var mm mongoMedia
		if err := cur.Decode(&mm); err != nil {
			return nil, 0, fmt.Errorf("decode media: %w", err)
		}
		items = append(items, *mm.toDomain())
	}
	return items, total, cur.Err()
}

func (r *MediaRepository) Update(ctx context.Context, m *domain.Media) error {
	oid, err := primitive.ObjectIDFromHex(m.ID)
	if err != nil {
		return domain.ErrMediaNotFound
	}

	update := bson.M{"$set": bson.M{
		"file_name":  m.FileName,
		"size":       m.Size,
		"url":        m.URL,
		"status":     string(m.Status),
		"updated_at": m.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update media: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMediaNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

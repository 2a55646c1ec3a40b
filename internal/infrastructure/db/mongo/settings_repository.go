package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

const settingsCollection = "site_settings"

// settingsDocID pins the singleton document.
const settingsDocID = "site"

type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(settingsCollection)}
}

type mongoSettings struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description,omitempty"`
	LogoURL     string    `bson:"logo_url,omitempty"`
	FaviconURL  string    `bson:"favicon_url,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// Load returns (nil, nil) when no settings document exists yet.
func (r *SettingsRepository) Load(ctx context.Context) (*domain.SiteSettings, error) {
	var ms mongoSettings
	if err := r.coll.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &domain.SiteSettings{
		Title:       ms.Title,
		Description: ms.Description,
		LogoURL:     ms.LogoURL,
		FaviconURL:  ms.FaviconURL,
		UpdatedAt:   ms.UpdatedAt.UTC(),
	}, nil
}

// Save upserts the singleton document.
func (r *SettingsRepository) Save(ctx context.Context, s *domain.SiteSettings) error {
	doc := mongoSettings{
		ID:          settingsDocID,
		Title:       s.Title,
		Description: s.Description,
		LogoURL:     s.LogoURL,
		FaviconURL:  s.FaviconURL,
		UpdatedAt:   s.UpdatedAt,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, opts); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

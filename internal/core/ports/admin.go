package ports

import (
	"context"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// DashboardStats is the aggregate view behind the admin dashboard.
type DashboardStats struct {
	PostsTotal     int64         `json:"posts_total"`
	PostsPublished int64         `json:"posts_published"`
	PostsDraft     int64         `json:"posts_draft"`
	Users          int64         `json:"users"`
	Media          int64         `json:"media"`
	Tools          int64         `json:"tools"`
	TotalViews     int64         `json:"total_views"`
	RecentPosts    []domain.Post `json:"recent_posts"`
}

// CreateUserInput carries the fields for admin-side account creation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries admin-side account updates. Empty fields are
// left unchanged; a non-empty Password is re-hashed.
type UpdateUserInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// AdminService defines dashboard and account-management use-cases.
type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ProfileService defines self-service account operations.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID, name, email string) (*domain.User, error)
}

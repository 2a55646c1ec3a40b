package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

const recentPostsLimit = 5

// AdminService implements the dashboard and account management.
type AdminService struct {
	users      ports.UserRepository
	posts      ports.PostRepository
	media      ports.MediaRepository
	tools      ports.AIToolRepository
	bcryptCost int
	logger     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, posts ports.PostRepository, media ports.MediaRepository, tools ports.AIToolRepository, bcryptCost int, logger zerolog.Logger) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{users: users, posts: posts, media: media, tools: tools, bcryptCost: bcryptCost, logger: logger}
}

// Dashboard aggregates the counters behind the admin landing page.
func (s *AdminService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	stats := &ports.DashboardStats{}

	published, err := s.posts.CountByStatus(ctx, domain.PostPublished)
	if err != nil {
		return nil, err
	}
	drafts, err := s.posts.CountByStatus(ctx, domain.PostDraft)
	if err != nil {
		return nil, err
	}
	stats.PostsPublished = published
	stats.PostsDraft = drafts
	stats.PostsTotal = published + drafts

	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Media, err = s.media.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Tools, err = s.tools.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalViews, err = s.posts.TotalViews(ctx); err != nil {
		return nil, err
	}
	if stats.RecentPosts, err = s.posts.Recent(ctx, recentPostsLimit); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// CreateUser provisions an account with an explicit role.
func (s *AdminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user created by admin")
	return user, nil
}

// UpdateUser applies non-empty fields; a non-empty password is re-hashed.
func (s *AdminService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" && in.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
			return nil, domain.ErrEmailInUse
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = in.Role
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted by admin")
	return nil
}

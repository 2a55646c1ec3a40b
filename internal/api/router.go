package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/aiblog/blog-platform/docs"
	"github.com/aiblog/blog-platform/internal/api/handler"
	"github.com/aiblog/blog-platform/internal/api/middleware"
	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
	"github.com/aiblog/blog-platform/internal/core/service"
	"github.com/aiblog/blog-platform/internal/infrastructure/config"
	mongodb "github.com/aiblog/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/aiblog/blog-platform/internal/infrastructure/db/redis"
	"github.com/aiblog/blog-platform/internal/infrastructure/queue"
)

// Deps bundles the infrastructure the router wires together.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Store     ports.ObjectStore
	Presigner ports.Presigner
	Config    *config.Config
	Log       zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the view dispatcher, which the caller must Start. Index
// creation runs here, before the server accepts traffic.
func NewRouter(ctx context.Context, d Deps) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(d.DB)
	postRepo := mongodb.NewPostRepository(d.DB)
	categoryRepo := mongodb.NewCategoryRepository(d.DB)
	tagRepo := mongodb.NewTagRepository(d.DB)
	mediaRepo := mongodb.NewMediaRepository(d.DB)
	toolRepo := mongodb.NewAIToolRepository(d.DB)
	settingsRepo := mongodb.NewSettingsRepository(d.DB)

	if err := mongodb.EnsureIndexes(ctx, userRepo, postRepo, categoryRepo, tagRepo, mediaRepo, toolRepo); err != nil {
		return nil, nil, err
	}

	// --- Services ---
	tokens := service.NewTokenManager(d.Config.JWTSecret, d.Config.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens, d.Config.BcryptCost)
	profileService := service.NewProfileService(userRepo)
	postService := service.NewPostService(postRepo, categoryRepo, tagRepo, d.Log)
	taxonomyService := service.NewTaxonomyService(categoryRepo, tagRepo, postRepo, d.Log)
	mediaService := service.NewMediaService(mediaRepo, d.Store, d.Presigner, d.Config.BaseURL, d.Log)
	toolService := service.NewAIToolService(toolRepo, d.Log)
	settingsService := service.NewSettingsService(settingsRepo, redisdb.NewSettingsCache(d.Redis), d.Log)
	adminService := service.NewAdminService(userRepo, postRepo, mediaRepo, toolRepo, d.Config.BcryptCost, d.Log)

	viewService := service.NewViewService(postRepo, redisdb.NewViewDeduper(d.Redis), d.Log)
	dispatcher := queue.NewDispatcher(d.Config.ViewWorkers, viewService, d.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(profileService, authService)
	postHandler := handler.NewPostHandler(postService, profileService, dispatcher)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService)
	mediaHandler := handler.NewMediaHandler(mediaService, d.Store, d.Presigner)
	toolHandler := handler.NewAIToolHandler(toolService)
	adminHandler := handler.NewAdminHandler(adminService, settingsService)

	auth := middleware.Auth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth ---
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/admin-login", authHandler.AdminLogin)
	authGroup.GET("/profile", userHandler.Profile, auth)
	authGroup.GET("/verify", authHandler.Verify, auth)

	// --- Users (self-service) ---
	users := api.Group("/users", auth)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.PUT("/password", userHandler.ChangePassword)

	// --- Posts ---
	posts := api.Group("/posts")
	posts.GET("", postHandler.List, optionalAuth)
	posts.GET("/:ref", postHandler.Get, optionalAuth)
	posts.POST("", postHandler.Create, auth)
	posts.PUT("/:id", postHandler.Update, auth)
	posts.DELETE("/:id", postHandler.Delete, auth)

	// --- Taxonomy ---
	api.GET("/categories", taxonomyHandler.ListCategories)
	api.POST("/categories", taxonomyHandler.CreateCategory, auth, adminOnly)
	api.PUT("/categories/:id", taxonomyHandler.UpdateCategory, auth, adminOnly)
	api.DELETE("/categories/:id", taxonomyHandler.DeleteCategory, auth, adminOnly)

	api.GET("/tags", taxonomyHandler.ListTags)
	api.POST("/tags", taxonomyHandler.CreateTag, auth, adminOnly)
	api.PUT("/tags/:id", taxonomyHandler.UpdateTag, auth, adminOnly)
	api.DELETE("/tags/:id", taxonomyHandler.DeleteTag, auth, adminOnly)

	// --- Media ---
	media := api.Group("/media")
	media.POST("/upload-url", mediaHandler.CreateUploadURL, auth)
	media.POST("/confirm-upload", mediaHandler.ConfirmUpload, auth)
	media.GET("", mediaHandler.List, auth)
	media.DELETE("/:id", mediaHandler.Delete, auth)
	// The presigned URL is the credential on the object routes.
	media.PUT("/object/*", mediaHandler.PutObject)
	media.GET("/object/*", mediaHandler.GetObject)

	// --- AI tools ---
	tools := api.Group("/ai-tools")
	tools.GET("", toolHandler.List, optionalAuth)
	tools.GET("/:id", toolHandler.Get, optionalAuth)
	tools.POST("", toolHandler.Create, auth, adminOnly)
	tools.PUT("/:id", toolHandler.Update, auth, adminOnly)
	tools.DELETE("/:id", toolHandler.Delete, auth, adminOnly)

	// --- Admin ---
	admin := api.Group("/admin", auth, adminOnly)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/settings", adminHandler.GetSettings)
	admin.PUT("/settings", adminHandler.UpdateSettings)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	// The original exposes the mutating post routes under /admin as well.
	admin.POST("/posts", postHandler.Create)
	admin.PUT("/posts/:id", postHandler.Update)
	admin.DELETE("/posts/:id", postHandler.Delete)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher, nil
}

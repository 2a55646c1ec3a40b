package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// AdminHandler exposes the dashboard, site settings, and account
// management. All routes are mounted behind Auth + RBAC(ADMIN).
type AdminHandler struct {
	admin    ports.AdminService
	settings ports.SettingsService
}

func NewAdminHandler(admin ports.AdminService, settings ports.SettingsService) *AdminHandler {
	return &AdminHandler{admin: admin, settings: settings}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type updateSettingsRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	FaviconURL  string `json:"favicon_url"`
}

// Dashboard returns the aggregate counters behind the admin home screen.
//
// @Summary      Admin dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// GetSettings returns the site-wide settings document.
//
// @Summary      Get site settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.SiteSettings
// @Router       /admin/settings [get]
func (h *AdminHandler) GetSettings(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the site-wide settings document.
//
// @Summary      Update site settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "Settings fields"
// @Success      200   {object}  domain.SiteSettings
// @Failure      422   {object}  map[string]string
// @Router       /admin/settings [put]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	settings, err := h.settings.Update(c.Request().Context(), &domain.SiteSettings{
		Title:       req.Title,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		FaviconURL:  req.FaviconURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// ListUsers returns every account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a single account.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.admin.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser creates an account with an explicit role.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account fields"
// @Success      201   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.admin.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser edits an account. Empty fields are left unchanged.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Account fields"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.admin.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account. An admin cannot delete itself.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if c.Param("id") == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete own account")
	}

	if err := h.admin.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

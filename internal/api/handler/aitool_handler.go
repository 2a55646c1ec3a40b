package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// AIToolHandler exposes the embeddable tool gallery. Listing is public and
// shows active tools only; admins see and manage everything.
type AIToolHandler struct {
	tools ports.AIToolService
}

func NewAIToolHandler(tools ports.AIToolService) *AIToolHandler {
	return &AIToolHandler{tools: tools}
}

type aiToolRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	EmbedURL    string `json:"embed_url" validate:"required,url"`
	Active      *bool  `json:"active"`
}

type listToolsResponse struct {
	Tools      []domain.AITool `json:"tools"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// List returns a page of tools. Inactive tools are only included for admins.
//
// @Summary      List tools
// @Tags         ai-tools
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listToolsResponse
// @Router       /ai-tools [get]
func (h *AIToolHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	_, role := optionalClaims(c)

	result, err := h.tools.List(c.Request().Context(), page, limit, role == domain.RoleAdmin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listToolsResponse{
		Tools:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a single tool.
//
// @Summary      Get a tool
// @Tags         ai-tools
// @Produce      json
// @Param        id   path      string  true  "Tool ID"
// @Success      200  {object}  domain.AITool
// @Failure      404  {object}  map[string]string
// @Router       /ai-tools/{id} [get]
func (h *AIToolHandler) Get(c echo.Context) error {
	tool, err := h.tools.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	// Hide inactive tools from non-admin callers.
	if !tool.Active {
		if _, role := optionalClaims(c); role != domain.RoleAdmin {
			return domain.ErrToolNotFound
		}
	}
	return c.JSON(http.StatusOK, tool)
}

// Create adds a tool to the gallery.
//
// @Summary      Create a tool
// @Tags         ai-tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      aiToolRequest  true  "Tool fields"
// @Success      201   {object}  domain.AITool
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /ai-tools [post]
func (h *AIToolHandler) Create(c echo.Context) error {
	var req aiToolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tool, err := h.tools.Create(c.Request().Context(), ports.AIToolInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		EmbedURL:    req.EmbedURL,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tool)
}

// Update edits a tool, including toggling its visibility.
//
// @Summary      Update a tool
// @Tags         ai-tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Tool ID"
// @Param        body  body      aiToolRequest  true  "Tool fields"
// @Success      200   {object}  domain.AITool
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /ai-tools/{id} [put]
func (h *AIToolHandler) Update(c echo.Context) error {
	var req aiToolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tool, err := h.tools.Update(c.Request().Context(), c.Param("id"), ports.AIToolInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		EmbedURL:    req.EmbedURL,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tool)
}

// Delete removes a tool from the gallery.
//
// @Summary      Delete a tool
// @Tags         ai-tools
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Tool ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /ai-tools/{id} [delete]
func (h *AIToolHandler) Delete(c echo.Context) error {
	if err := h.tools.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiblog/blog-platform/internal/core/ports"
)

// TaxonomyHandler exposes category and tag management. Listing is public;
// mutations are admin-only (enforced in the router).
type TaxonomyHandler struct {
	taxonomy ports.TaxonomyService
}

func NewTaxonomyHandler(taxonomy ports.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

type taxonomyRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ListCategories returns all categories with their post counts.
//
// @Summary      List categories
// @Tags         taxonomy
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *TaxonomyHandler) ListCategories(c echo.Context) error {
	categories, err := h.taxonomy.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a category.
//
// @Summary      Create a category
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taxonomyRequest  true  "Category fields"
// @Success      201   {object}  domain.Category
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /categories [post]
func (h *TaxonomyHandler) CreateCategory(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.taxonomy.CreateCategory(c.Request().Context(), ports.TaxonomyInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames or re-slugs a category.
//
// @Summary      Update a category
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category ID"
// @Param        body  body      taxonomyRequest  true  "Category fields"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /categories/{id} [put]
func (h *TaxonomyHandler) UpdateCategory(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.taxonomy.UpdateCategory(c.Request().Context(), c.Param("id"), ports.TaxonomyInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Refused with 409 while posts still
// reference it.
//
// @Summary      Delete a category
// @Tags         taxonomy
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Category ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(c echo.Context) error {
	if err := h.taxonomy.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTags returns all tags with their post counts.
//
// @Summary      List tags
// @Tags         taxonomy
// @Produce      json
// @Success      200  {array}  domain.Tag
// @Router       /tags [get]
func (h *TaxonomyHandler) ListTags(c echo.Context) error {
	tags, err := h.taxonomy.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// CreateTag creates a tag.
//
// @Summary      Create a tag
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taxonomyRequest  true  "Tag fields"
// @Success      201   {object}  domain.Tag
// @Failure      409   {object}  map[string]string
// @Router       /tags [post]
func (h *TaxonomyHandler) CreateTag(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tag, err := h.taxonomy.CreateTag(c.Request().Context(), ports.TaxonomyInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

// UpdateTag renames or re-slugs a tag.
//
// @Summary      Update a tag
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Tag ID"
// @Param        body  body      taxonomyRequest  true  "Tag fields"
// @Success      200   {object}  domain.Tag
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /tags/{id} [put]
func (h *TaxonomyHandler) UpdateTag(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tag, err := h.taxonomy.UpdateTag(c.Request().Context(), c.Param("id"), ports.TaxonomyInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

// DeleteTag removes a tag. Posts keep working; the tag reference simply
// stops resolving.
//
// @Summary      Delete a tag
// @Tags         taxonomy
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Tag ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tags/{id} [delete]
func (h *TaxonomyHandler) DeleteTag(c echo.Context) error {
	if err := h.taxonomy.DeleteTag(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

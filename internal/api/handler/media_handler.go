package handler

import (
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

// maxObjectBytes caps the size of a single uploaded object.
const maxObjectBytes = 32 << 20 // 32 MiB

// MediaHandler exposes the two-phase upload flow, the media library, and
// the raw object endpoints the presigned URLs point at.
type MediaHandler struct {
	media     ports.MediaService
	store     ports.ObjectStore
	presigner ports.Presigner
}

func NewMediaHandler(media ports.MediaService, store ports.ObjectStore, presigner ports.Presigner) *MediaHandler {
	return &MediaHandler{media: media, store: store, presigner: presigner}
}

// CreateUploadURL issues a presigned PUT URL for a new object.
//
// @Summary      Request a presigned upload URL
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadURLRequest  true  "Object metadata"
// @Success      200   {object}  uploadURLResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /media/upload-url [post]
func (h *MediaHandler) CreateUploadURL(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req uploadURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.media.CreateUploadURL(c.Request().Context(), ports.UploadURLInput{
		FileName:   req.FileName,
		FileType:   req.FileType,
		FileSize:   req.FileSize,
		Purpose:    req.Purpose,
		UploaderID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, uploadURLResponse{
		UploadURL: result.UploadURL,
		Key:       result.Key,
		ExpiresAt: result.ExpiresAt,
	})
}

// ConfirmUpload marks a pending upload as complete once the object landed.
//
// @Summary      Confirm a completed upload
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      confirmUploadRequest  true  "Uploaded object"
// @Success      200   {object}  domain.Media
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /media/confirm-upload [post]
func (h *MediaHandler) ConfirmUpload(c echo.Context) error {
	var req confirmUploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	media, err := h.media.ConfirmUpload(c.Request().Context(), ports.ConfirmUploadInput{
		Key:      req.Key,
		FileName: req.FileName,
		FileType: req.FileType,
		FileSize: req.FileSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, media)
}

// List returns a page of the media library, optionally filtered by
// content-type prefix (e.g. type=image).
//
// @Summary      List media
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Param        type   query     string  false  "Content-type prefix filter"
// @Success      200    {object}  listMediaResponse
// @Router       /media [get]
func (h *MediaHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.media.List(c.Request().Context(), page, limit, c.QueryParam("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListMediaResponse(result))
}

// Delete removes a media record and its stored object.
//
// @Summary      Delete media
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Media ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /media/{id} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	if err := h.media.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PutObject receives the raw object bytes for a presigned upload. The
// signature covers method, key, and expiry, so the grant cannot be reused
// for another object or after it lapses. No session token is required —
// the signature is the credential.
//
// @Summary      Upload object bytes (presigned)
// @Tags         media
// @Accept       octet-stream
// @Produce      json
// @Param        key        path      string  true  "Object key"
// @Param        expires    query     int     true  "Grant expiry (unix seconds)"
// @Param        signature  query     string  true  "Grant signature"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  map[string]string
// @Failure      413        {object}  map[string]string
// @Router       /media/object/{key} [put]
func (h *MediaHandler) PutObject(c echo.Context) error {
	key := c.Param("*")

	expiresUnix, err := strconv.ParseInt(c.QueryParam("expires"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expires parameter")
	}
	expires := time.Unix(expiresUnix, 0)

	if err := h.presigner.Verify(http.MethodPut, key, expires, c.QueryParam("signature")); err != nil {
		return err
	}

	n, err := h.store.Put(key, c.Request().Body, maxObjectBytes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"key": key, "size": n})
}

// GetObject serves stored object bytes. Only confirmed objects are public;
// an upload that never ran confirm-upload reads as missing.
//
// @Summary      Download object bytes
// @Tags         media
// @Produce      octet-stream
// @Param        key  path  string  true  "Object key"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /media/object/{key} [get]
func (h *MediaHandler) GetObject(c echo.Context) error {
	key := c.Param("*")

	media, err := h.media.GetByKey(c.Request().Context(), key)
	if err != nil {
		return err
	}
	if media.Status != domain.MediaConfirmed {
		return domain.ErrMediaNotFound
	}

	rc, size, err := h.store.Open(key)
	if err != nil {
		return domain.ErrMediaNotFound
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(size, 10))
	return c.Stream(http.StatusOK, contentType, rc)
}

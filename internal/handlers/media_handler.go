package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 10 << 20

// MediaHandler handles media feed HTTP requests
type MediaHandler struct {
	mediaRepository repositories.MediaRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository) *MediaHandler {
	return &MediaHandler{mediaRepository: mediaRepo}
}

// RegisterMediaRoutes registers media routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/upload", h.Upload)
	g.GET("", h.ListMine)
	g.GET("/:id", h.GetMedia)
	g.GET("/:id/image", h.GetImage)
	g.DELETE("/:id", h.DeleteMedia)
}

// Upload stores an uploaded image for the caller
func (h *MediaHandler) Upload(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot read uploaded file")
	}
	if len(data) > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}

	media := &models.Media{
		UserID:    userID,
		MediaType: mediaType,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := h.mediaRepository.CreateMedia(c.Request().Context(), media); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         media.ID.Hex(),
		"media_type": media.MediaType,
		"created_at": media.CreatedAt,
	})
}

// ListMine lists the caller's media metadata, newest first
func (h *MediaHandler) ListMine(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	media, err := h.mediaRepository.GetMediaByUserID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	items := make([]echo.Map, len(media))
	for i, m := range media {
		items[i] = echo.Map{
			"id":         m.ID.Hex(),
			"media_type": m.MediaType,
			"created_at": m.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"media": items})
}

// GetMedia returns a single media document's metadata
func (h *MediaHandler) GetMedia(c echo.Context) error {
	if _, _, err := currentUser(c); err != nil {
		return err
	}

	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         media.ID.Hex(),
		"user_id":    media.UserID,
		"media_type": media.MediaType,
		"created_at": media.CreatedAt,
	})
}

// GetImage streams the stored image bytes
func (h *MediaHandler) GetImage(c echo.Context) error {
	if _, _, err := currentUser(c); err != nil {
		return err
	}

	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	contentType := media.MediaType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, media.Data)
}

// DeleteMedia removes the caller's own media document
func (h *MediaHandler) DeleteMedia(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if media.UserID != userID {
		return httpError(repositories.ErrNotOwner)
	}
	if err := h.mediaRepository.DeleteMedia(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Media deleted"})
}

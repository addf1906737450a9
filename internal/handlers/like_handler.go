package handlers

import (
	"log"
	"net/http"

	"github.com/PlayHaven/PlayHaven/internal/delivery"
	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles media like HTTP requests
type LikeHandler struct {
	likeRepository  repositories.LikeRepository
	mediaRepository repositories.MediaRepository
	notifier        *delivery.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, mediaRepo repositories.MediaRepository, notifier *delivery.Notifier) *LikeHandler {
	return &LikeHandler{
		likeRepository:  likeRepo,
		mediaRepository: mediaRepo,
		notifier:        notifier,
	}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/:id/like", h.Like)
	g.DELETE("/:id/like", h.Unlike)
	g.GET("/:id/likes", h.LikeCount)
}

type likeEventPayload struct {
	SenderID       uint   `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	MediaID        string `json:"media_id"`
}

// Like records a like and notifies the media owner
func (h *LikeHandler) Like(c echo.Context) error {
	userID, username, err := currentUser(c)
	if err != nil {
		return err
	}

	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	like := &models.Like{MediaID: media.ID.Hex(), UserID: userID}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return httpError(err)
	}

	if media.UserID != userID {
		if _, err := h.notifier.Notify(media.UserID, models.NotificationLike, likeEventPayload{
			SenderID:       userID,
			SenderUsername: username,
			MediaID:        media.ID.Hex(),
		}); err != nil {
			log.Printf("handlers: like notification to user %d failed: %v", media.UserID, err)
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Liked"})
}

// Unlike removes the caller's like
func (h *LikeHandler) Unlike(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.likeRepository.DeleteLike(c.Param("id"), userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unliked"})
}

// LikeCount returns a media item's like count and whether the caller liked it
func (h *LikeHandler) LikeCount(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.likeRepository.CountByMediaID(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	liked, err := h.likeRepository.HasUserLiked(c.Param("id"), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": count,
		"liked": liked,
	})
}

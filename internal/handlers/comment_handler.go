package handlers

import (
	"log"
	"net/http"

	"github.com/PlayHaven/PlayHaven/internal/delivery"
	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles media comment HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	mediaRepository   repositories.MediaRepository
	notifier          *delivery.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, mediaRepo repositories.MediaRepository, notifier *delivery.Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		mediaRepository:   mediaRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:id/comments", h.CreateComment)
	g.GET("/:id/comments", h.GetComments)
	g.DELETE("/comments/:commentId", h.DeleteComment)
}

type commentEventPayload struct {
	SenderID       uint   `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	MediaID        string `json:"media_id"`
	Content        string `json:"content"`
}

// CreateComment adds a comment to a media item and notifies its owner
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, username, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	comment := &models.Comment{
		MediaID: media.ID.Hex(),
		UserID:  userID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return httpError(err)
	}

	if media.UserID != userID {
		if _, err := h.notifier.Notify(media.UserID, models.NotificationComment, commentEventPayload{
			SenderID:       userID,
			SenderUsername: username,
			MediaID:        media.ID.Hex(),
			Content:        req.Content,
		}); err != nil {
			log.Printf("handlers: comment notification to user %d failed: %v", media.UserID, err)
		}
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists a media item's comments, newest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	if _, _, err := currentUser(c); err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByMediaID(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

// DeleteComment removes the caller's own comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		return httpError(err)
	}
	if comment.UserID != userID {
		return httpError(repositories.ErrNotOwner)
	}
	if err := h.commentRepository.DeleteComment(commentID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted"})
}

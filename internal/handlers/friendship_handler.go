package handlers

import (
	"net/http"

	"github.com/PlayHaven/PlayHaven/internal/delivery"
	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles friend-graph HTTP requests
type FriendshipHandler struct {
	friendships *delivery.FriendshipService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendships *delivery.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

// RegisterFriendshipRoutes registers friend-graph routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/request", h.SendRequest)
	g.POST("/accept", h.AcceptRequest)
	g.DELETE("/reject", h.RejectRequest)
	g.GET("", h.ListFriends)
	g.GET("/pending", h.ListPending)
}

// SendRequest creates a pending friend request toward the named user
func (h *FriendshipHandler) SendRequest(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.SendFriendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	edge, err := h.friendships.Request(userID, req.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Friend request sent",
		"request_id": edge.ID,
	})
}

// AcceptRequest accepts a pending request addressed to the caller
func (h *FriendshipHandler) AcceptRequest(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.FriendRequestActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.friendships.Accept(userID, req.RequestID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request accepted"})
}

// RejectRequest deletes a pending request addressed to the caller
func (h *FriendshipHandler) RejectRequest(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.FriendRequestActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.friendships.Reject(userID, req.RequestID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request rejected"})
}

// ListFriends returns the caller's accepted friends
func (h *FriendshipHandler) ListFriends(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	friends, err := h.friendships.Friends(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"friends": friends})
}

// ListPending returns requests waiting on the caller's decision
func (h *FriendshipHandler) ListPending(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	pending, err := h.friendships.Pending(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": pending})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/PlayHaven/PlayHaven/internal/delivery"
	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatRepository repositories.ChatRepository
	coordinator    *delivery.Coordinator
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatRepo repositories.ChatRepository, coordinator *delivery.Coordinator) *ChatHandler {
	return &ChatHandler{
		chatRepository: chatRepo,
		coordinator:    coordinator,
	}
}

// RegisterChatRoutes registers chat routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.POST("/rooms", h.CreateRoom)
	g.GET("/rooms", h.MyRooms)
	g.GET("/rooms/:id/messages", h.GetMessages)
	g.GET("/rooms/:id/participants", h.Participants)
	g.POST("/messages", h.SendMessage)
	g.PUT("/rooms/:id/read", h.MarkRead)
}

// CreateRoom creates a chat room with the given members. The creator is
// always a member regardless of the submitted list.
func (h *ChatHandler) CreateRoom(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.chatRepository.CreateRoom(userID, req.UserIDs, req.Name, req.IsGroup)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, room)
}

// MyRooms lists the caller's rooms, most recently active first
func (h *ChatHandler) MyRooms(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	rooms, err := h.chatRepository.RoomsByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	for i := range rooms {
		if rooms[i].LastMessageAt != nil {
			rooms[i].Timestamp = humanize.Time(*rooms[i].LastMessageAt)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// GetMessages returns a room's full history and advances the caller's read
// watermark, so fetching history clears the unread count.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	member, err := h.chatRepository.IsMember(userID, roomID)
	if err != nil {
		return httpError(err)
	}
	if !member {
		return httpError(repositories.ErrNotMember)
	}

	room, err := h.chatRepository.GetRoomByID(roomID)
	if err != nil {
		return httpError(err)
	}
	messages, err := h.chatRepository.MessagesByRoomID(roomID)
	if err != nil {
		return httpError(err)
	}
	if err := h.chatRepository.MarkRead(userID, roomID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"room_name": room.Name,
		"messages":  messages,
	})
}

// Participants lists a room's members
func (h *ChatHandler) Participants(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	member, err := h.chatRepository.IsMember(userID, roomID)
	if err != nil {
		return httpError(err)
	}
	if !member {
		return httpError(repositories.ErrNotMember)
	}

	users, err := h.chatRepository.Participants(roomID)
	if err != nil {
		return httpError(err)
	}
	participants := make([]models.UserCompact, len(users))
	for i, u := range users {
		participants[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"participants": participants})
}

// SendMessage persists a message and fans it out to the room's members
func (h *ChatHandler) SendMessage(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.coordinator.SendMessage(userID, req.RoomID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, payload)
}

// MarkRead advances the caller's read watermark without fetching history
func (h *ChatHandler) MarkRead(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.chatRepository.MarkRead(userID, roomID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Marked as read"})
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id parameter")
	}
	return uint(id), nil
}

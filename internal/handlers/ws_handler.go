package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/PlayHaven/PlayHaven/internal/delivery"
	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/realtime"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WSHandler upgrades authenticated clients onto their presence channel
type WSHandler struct {
	hub         *realtime.Hub
	coordinator *delivery.Coordinator
	jwtSecret   string
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *realtime.Hub, coordinator *delivery.Coordinator, jwtSecret string) *WSHandler {
	return &WSHandler{
		hub:         hub,
		coordinator: coordinator,
		jwtSecret:   jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// RegisterWSRoutes registers the websocket endpoint
func (h *WSHandler) RegisterWSRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve authenticates the handshake and runs the connection's pumps. Browsers
// cannot set headers on websocket requests, so the token rides the query
// string.
func (h *WSHandler) Serve(c echo.Context) error {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := realtime.NewClient(h.hub, conn, claims.UserID, h.handleInbound)
	go client.Run()
	return nil
}

// handleInbound dispatches client-originated events. Only typing signals are
// accepted over the socket; everything else arrives via HTTP.
func (h *WSHandler) handleInbound(userID uint, ev realtime.Event) {
	if ev.Name != realtime.EventUserTyping {
		return
	}
	raw, err := json.Marshal(ev.Data)
	if err != nil {
		return
	}
	var req models.TypingRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.RoomID == 0 {
		return
	}
	if err := h.coordinator.Typing(userID, req.RoomID); err != nil {
		log.Printf("ws: typing relay from user %d to room %d dropped: %v", userID, req.RoomID, err)
	}
}

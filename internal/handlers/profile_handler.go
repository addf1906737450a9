package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

// ProfileHandler handles gamer-profile HTTP requests
type ProfileHandler struct {
	profileRepository    repositories.ProfileRepository
	userRepository       repositories.UserRepository
	friendshipRepository repositories.FriendshipRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository, friendshipRepo repositories.FriendshipRepository) *ProfileHandler {
	return &ProfileHandler{
		profileRepository:    profileRepo,
		userRepository:       userRepo,
		friendshipRepository: friendshipRepo,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("", h.GetProfile)
	g.PUT("/bio", h.UpdateBio)
	g.PUT("/links", h.UpdateLinks)
	g.PUT("/games", h.UpdateGames)
	g.GET("/consoles", h.GetConsoles)
	g.PUT("/consoles/playstation", h.UpdatePlayStation)
	g.PUT("/consoles/xbox", h.UpdateXbox)
	g.PUT("/consoles/steam", h.UpdateSteam)
	g.PUT("/consoles/nintendo", h.UpdateNintendo)
	g.PUT("/consoles/discord", h.UpdateDiscord)
}

// GetProfile returns the caller's aggregated profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}
	profile, err := h.profileRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	consoles, err := h.profileRepository.GetConsoleAccounts(userID)
	if err != nil {
		return httpError(err)
	}
	friends, err := h.friendshipRepository.Friends(userID)
	if err != nil {
		return httpError(err)
	}
	pending, err := h.friendshipRepository.PendingRequests(userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":             user.ToCompact(),
		"bio":              profile.Bio,
		"links":            profile.Links,
		"games":            profile.Games,
		"consoles":         consoles,
		"friend_count":     len(friends),
		"pending_requests": len(pending),
	})
}

// UpdateBio replaces the caller's bio text
func (h *ProfileHandler) UpdateBio(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateBioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	profile.Bio = req.Bio
	if err := h.profileRepository.Save(profile); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Bio updated"})
}

// UpdateLinks replaces the caller's social links
func (h *ProfileHandler) UpdateLinks(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateLinksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	profile, err := h.profileRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	raw, err := json.Marshal(req.Links)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid links payload")
	}
	profile.Links = datatypes.JSON(raw)
	if err := h.profileRepository.Save(profile); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Links updated"})
}

// UpdateGames replaces the caller's favorite games list
func (h *ProfileHandler) UpdateGames(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateGamesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	profile, err := h.profileRepository.GetByUserID(userID)
	if err != nil {
		return httpError(err)
	}
	raw, err := json.Marshal(req.Games)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid games payload")
	}
	profile.Games = datatypes.JSON(raw)
	if err := h.profileRepository.Save(profile); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Games updated"})
}

// GetConsoles returns the caller's linked console accounts
func (h *ProfileHandler) GetConsoles(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	consoles, err := h.profileRepository.GetConsoleAccounts(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, consoles)
}

// UpdatePlayStation links or updates the caller's PSN account
func (h *ProfileHandler) UpdatePlayStation(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdatePlayStationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.profileRepository.UpsertPlayStation(userID, req.PSNUsername); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "PlayStation account updated"})
}

// UpdateXbox links or updates the caller's Xbox gamertag
func (h *ProfileHandler) UpdateXbox(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateXboxRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.profileRepository.UpsertXbox(userID, req.XboxGamertag); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Xbox account updated"})
}

// UpdateSteam links or updates the caller's Steam account
func (h *ProfileHandler) UpdateSteam(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateSteamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.profileRepository.UpsertSteam(userID, req.SteamUsername); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Steam account updated"})
}

// UpdateNintendo links or updates the caller's Nintendo friend code
func (h *ProfileHandler) UpdateNintendo(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateNintendoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.profileRepository.UpsertNintendo(userID, req.FriendCode); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Nintendo account updated"})
}

// UpdateDiscord links or updates the caller's Discord handle
func (h *ProfileHandler) UpdateDiscord(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateDiscordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.profileRepository.UpsertDiscord(userID, req.DiscordUsername); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Discord account updated"})
}

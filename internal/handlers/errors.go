package handlers

import (
	"errors"
	"net/http"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/PlayHaven/PlayHaven/internal/repositories"
	"github.com/labstack/echo/v4"
)

// httpError translates repository sentinel errors into HTTP responses. Every
// handler funnels store failures through here so status codes stay uniform.
func httpError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrRoomNotFound),
		errors.Is(err, repositories.ErrRequestNotFound),
		errors.Is(err, repositories.ErrMediaNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrNotMember),
		errors.Is(err, repositories.ErrNotRequestRecipient),
		errors.Is(err, repositories.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, repositories.ErrDuplicateRequest),
		errors.Is(err, repositories.ErrAlreadyAccepted),
		errors.Is(err, repositories.ErrAlreadyLiked):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repositories.ErrEmptyContent),
		errors.Is(err, repositories.ErrInvalidMembership),
		errors.Is(err, repositories.ErrRoomNameRequired),
		errors.Is(err, repositories.ErrSelfFriend):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// currentUser pulls the verified identity the JWT middleware stored on the
// context.
func currentUser(c echo.Context) (uint, string, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "Missing user claims")
	}
	return claims.UserID, claims.Username, nil
}

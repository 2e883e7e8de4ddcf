package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/poshanlabs/nutrigap-backend/internal/service"
)

// currentUserID pulls the authenticated user id set by the auth
// middleware. The bool is false when the route is reached unauthenticated.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}

// respondError maps service errors to HTTP statuses: missing profile and
// failed demographic matches are not-found conditions, incomplete
// profiles and malformed input are bad requests.
func respondError(c *gin.Context, err error) {
	var incomplete *service.ProfileIncompleteError
	var noMatch *service.NoDemographicMatchError

	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found, please create your profile"})
	case errors.As(err, &noMatch):
		c.JSON(http.StatusNotFound, gin.H{"error": noMatch.Error(), "age": noMatch.Age})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": incomplete.Error(), "missing_fields": incomplete.Missing})
	case errors.Is(err, service.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
	case errors.Is(err, service.ErrInvalidBirthDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

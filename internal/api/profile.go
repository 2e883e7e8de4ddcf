package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poshanlabs/nutrigap-backend/internal/service"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

// ProfileHandler handles the profile read and upsert endpoints.
type ProfileHandler struct {
	profileService        service.IProfileService
	recommendationService service.IRecommendationService
}

func NewProfileHandler(profileService service.IProfileService, recommendationService service.IRecommendationService) *ProfileHandler {
	return &ProfileHandler{
		profileService:        profileService,
		recommendationService: recommendationService,
	}
}

// RegisterRoutes registers the profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("/me", h.GetProfile)
		profile.POST("/me", h.CreateOrUpdateProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// CreateOrUpdateProfile saves the profile and recomputes the cached
// demographic group. A failed match on this path is a bad request: the
// submitted stats have no reference group.
func (h *ProfileHandler) CreateOrUpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, group, err := h.profileService.CreateOrUpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		var noMatch *service.NoDemographicMatchError
		if errors.As(err, &noMatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": noMatch.Error(), "age": noMatch.Age})
			return
		}
		respondError(c, err)
		return
	}

	// A changed profile invalidates any cached recommendation.
	if h.recommendationService != nil {
		h.recommendationService.InvalidateCache(c.Request.Context(), userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":              profile,
		"matched_group":        group.Name,
		"demographic_group_id": group.ID,
	})
}

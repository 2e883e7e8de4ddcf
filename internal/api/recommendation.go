package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poshanlabs/nutrigap-backend/internal/service"
)

// RecommendationHandler serves the meal/exercise suggestion endpoint.
type RecommendationHandler struct {
	profileService        service.IProfileService
	recommendationService service.IRecommendationService
}

func NewRecommendationHandler(profileService service.IProfileService, recommendationService service.IRecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		profileService:        profileService,
		recommendationService: recommendationService,
	}
}

// RegisterRoutes registers the recommendation routes
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup, limiter gin.HandlerFunc) {
	group := router.Group("/recommendations")
	if limiter != nil {
		group.Use(limiter)
	}
	group.GET("", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
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

	resp, err := h.recommendationService.Generate(c.Request.Context(), userID, profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

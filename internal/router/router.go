package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poshanlabs/nutrigap-backend/internal/api"
	"github.com/poshanlabs/nutrigap-backend/internal/middleware"
	"github.com/poshanlabs/nutrigap-backend/internal/service"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth           *api.AuthHandler
	Profile        *api.ProfileHandler
	Dashboard      *api.DashboardHandler
	Food           *api.FoodHandler
	FoodLog        *api.FoodLogHandler
	Recommendation *api.RecommendationHandler
	Recipe         *api.RecipeHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, authService service.IAuthService, recommendationLimiter gin.HandlerFunc) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		h.Profile.RegisterRoutes(protected)
		h.Dashboard.RegisterRoutes(protected)
		h.Food.RegisterRoutes(protected)
		h.FoodLog.RegisterRoutes(protected)
		h.Recommendation.RegisterRoutes(protected, recommendationLimiter)
		h.Recipe.RegisterRoutes(protected)
	}

	return router
}

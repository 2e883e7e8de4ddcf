package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poshanlabs/nutrigap-backend/internal/service"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

// FoodLogHandler handles food log creation and listing.
type FoodLogHandler struct {
	foodLogService service.IFoodLogService
}

func NewFoodLogHandler(foodLogService service.IFoodLogService) *FoodLogHandler {
	return &FoodLogHandler{foodLogService: foodLogService}
}

// RegisterRoutes registers the food log routes
func (h *FoodLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/food-logs")
	{
		logs.POST("", h.CreateLog)
		logs.GET("", h.ListLogs)
	}
}

func (h *FoodLogHandler) CreateLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.LogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.foodLogService.CreateLog(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *FoodLogHandler) ListLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	logDate := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		logDate = parsed
	}

	entries, err := h.foodLogService.ListLogs(c.Request.Context(), userID, logDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

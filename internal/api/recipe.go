package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poshanlabs/nutrigap-backend/internal/service"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

// RecipeHandler serves recipe text analysis.
type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/analyze", h.AnalyzeRecipe)
}

func (h *RecipeHandler) AnalyzeRecipe(c *gin.Context) {
	var req types.RecipeAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.recipeService.AnalyzeRecipe(c.Request.Context(), req.RecipeText)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

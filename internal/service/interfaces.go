package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	CreateOrUpdateProfile(ctx context.Context, userID uuid.UUID, req *types.ProfileRequest) (*models.UserProfile, *models.DemographicGroup, error)
}

// IDashboardService defines the interface for the gap analysis
type IDashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID, logDate time.Time) (*types.DashboardReport, error)
}

// IFoodService defines the interface for the food catalog
type IFoodService interface {
	GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error)
	ListFoods(ctx context.Context, search string, offset, limit int) ([]models.Food, error)
}

// IFoodLogService defines the interface for food logging
type IFoodLogService interface {
	CreateLog(ctx context.Context, userID uuid.UUID, req *types.LogCreateRequest) (*models.FoodLog, error)
	ListLogs(ctx context.Context, userID uuid.UUID, logDate time.Time) ([]types.FoodLogEntry, error)
}

// IRecommendationService defines the interface for meal/exercise suggestions
type IRecommendationService interface {
	Generate(ctx context.Context, userID uuid.UUID, profile *models.UserProfile) (*types.RecommendationResponse, error)
	InvalidateCache(ctx context.Context, userID uuid.UUID)
}

// IRecipeService defines the interface for recipe analysis
type IRecipeService interface {
	AnalyzeRecipe(ctx context.Context, recipeText string) (*types.RecipeAnalysis, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(to, subject, body string) error
	SendWelcomeEmail(user *models.User) error
}

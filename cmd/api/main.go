package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/poshanlabs/nutrigap-backend/config"
	"github.com/poshanlabs/nutrigap-backend/internal/api"
	"github.com/poshanlabs/nutrigap-backend/internal/database"
	"github.com/poshanlabs/nutrigap-backend/internal/middleware"
	"github.com/poshanlabs/nutrigap-backend/internal/router"
	"github.com/poshanlabs/nutrigap-backend/internal/server"
	"github.com/poshanlabs/nutrigap-backend/internal/service"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to redis")
	}

	emailService := service.NewEmailService(cfg)
	authService := service.NewAuthService(db, cfg.JWTSecret, emailService)
	profileService := service.NewProfileService(db)
	dashboardService := service.NewDashboardService(db)
	foodService := service.NewFoodService(db)
	foodLogService := service.NewFoodLogService(db)
	recommendationService := service.NewRecommendationService(cfg.GeminiAPIKey, cfg.GeminiAPIURL, redisClient)
	recipeService := service.NewRecipeService(db)

	limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Hour,
		Limit:     10,
		KeyPrefix: "ratelimit:recommendations",
	})

	handlers := router.Handlers{
		Auth:           api.NewAuthHandler(authService),
		Profile:        api.NewProfileHandler(profileService, recommendationService),
		Dashboard:      api.NewDashboardHandler(dashboardService),
		Food:           api.NewFoodHandler(foodService),
		FoodLog:        api.NewFoodLogHandler(foodLogService),
		Recommendation: api.NewRecommendationHandler(profileService, recommendationService),
		Recipe:         api.NewRecipeHandler(recipeService),
	}

	engine := router.SetupRouter(handlers, authService, limiter.Middleware())

	srv := server.New(engine, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))

	go func() {
		if err := srv.Start(); err != nil {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
	logrus.Info("server stopped")
}

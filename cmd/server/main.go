package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sanchaypro/sanchay-server/internal/api"
	"github.com/sanchaypro/sanchay-server/internal/config"
	"github.com/sanchaypro/sanchay-server/internal/notify"
	"github.com/sanchaypro/sanchay-server/internal/repository"
	"github.com/sanchaypro/sanchay-server/internal/service"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load configuration
	cfg := config.LoadConfig()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to set up database", zap.Error(err))
	}
	defer db.Close()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create notifier
	notifier := notify.NewTelegramNotifier(repo, logger)

	// Create service
	svc := service.NewDefaultService(repo, notifier, logger, cfg.Auth.JWTSecret)

	// Seed the first administrator if the store is empty
	if err := svc.Bootstrap(context.Background()); err != nil {
		logger.Warn("bootstrap failed", zap.Error(err))
	}

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", zap.String("addr", serverAddr))
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

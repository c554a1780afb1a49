package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotsense/config"
	"slotsense/handlers"
	"slotsense/middleware"
	"slotsense/routes"
	"slotsense/services/availability"
	ai "slotsense/services/intelligence"
	"slotsense/services/scheduling"
	"slotsense/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Echo which credentials are present without leaking them.
	logger.Info("Configuration loaded",
		zap.Bool("geminiKeySet", config.AppConfig.GeminiAPIKey != ""),
		zap.Bool("calKeySet", config.AppConfig.CalAPIKey != ""),
		zap.String("port", config.AppConfig.AppPort),
		zap.String("timezone", config.AppConfig.BookingTimezone))

	loc, err := time.LoadLocation(config.AppConfig.BookingTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid booking timezone %q: %v", config.AppConfig.BookingTimezone, err)
	}

	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// External clients.
	geminiClient := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	calClient := scheduling.NewCalClient(
		config.AppConfig.CalAPIURL,
		config.AppConfig.CalAPIKey,
		config.AppConfig.CalAPIVersion,
		config.AppConfig.CalEventTypeID,
		config.AppConfig.CalCredentialID,
		config.AppConfig.CalExternalID,
		config.AppConfig.BookingTimezone,
		loc,
	)

	// Services.
	var normCache *ai.NormalizationCache
	if cacheClient := utils.GetCacheClient(); cacheClient != nil {
		ttl := time.Duration(config.AppConfig.NormalizerCacheTTL) * time.Minute
		normCache = ai.NewNormalizationCache(cacheClient, ttl)
	}
	normalizer := &ai.DefaultNormalizerService{
		Model:    geminiClient,
		Cache:    normCache,
		Timezone: config.AppConfig.BookingTimezone,
		Loc:      loc,
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Client: calClient,
		Loc:    loc,
	}

	webhookHandler := handlers.NewWebhookHandler(normalizer, availabilityService, logger)

	// Register routes.
	routes.RegisterRoutes(router, webhookHandler, config.AppConfig.WebhookID)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	logger.Sugar().Infof("Webhook available at: http://localhost:%s/webhook/%s", port, config.AppConfig.WebhookID)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

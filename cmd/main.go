package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jarahq/jara-backend/internal/clients/redis"
	"github.com/jarahq/jara-backend/internal/db"
	"github.com/jarahq/jara-backend/internal/handlers"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/middleware"
	"github.com/jarahq/jara-backend/internal/observability"
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/server"
	"github.com/jarahq/jara-backend/internal/services"
	"github.com/jarahq/jara-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	serviceName := utils.GetEnv("SERVICE_NAME", "jara-backend", log)
	port := utils.GetEnv("PORT", "8080", log)
	allowedOrigins := server.ParseOrigins(utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log))
	tracingEnabled := utils.GetEnvAsBool("OTEL_ENABLED", false, log)

	// Tracing
	ctx := context.Background()
	shutdownTracing := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "", log),
	})
	if shutdownTracing != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	// Database
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	gdb := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	creatorRepo := repos.NewCreatorRepo(gdb, log)
	pageRepo := repos.NewLandingPageRepo(gdb, log)
	paymentLinkRepo := repos.NewPaymentLinkRepo(gdb, log)
	transactionRepo := repos.NewTransactionRepo(gdb, log)
	videoRepo := repos.NewVideoRepo(gdb, log)
	userOTPRepo := repos.NewUserOTPRepo(gdb, log)

	// Redis (optional: everything works off the database without it)
	var creatorCache redis.CreatorCache
	if cache, cErr := redis.NewCreatorCache(log); cErr != nil {
		log.Warn("Creator cache unavailable, continuing without it", "error", cErr)
	} else {
		creatorCache = cache
		defer creatorCache.Close()
	}

	// Services
	log.Info("Setting up services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}
	aiClient, err := services.NewAIClient(log)
	if err != nil {
		log.Error("Could not init AIClient", "error", err)
		os.Exit(1)
	}
	mailer, err := services.NewMailerFromEnv(log)
	if err != nil {
		log.Error("Could not init Mailer", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(gdb, log, userRepo, userTokenRepo, userOTPRepo, mailer, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	creatorService := services.NewCreatorService(gdb, log, creatorRepo, creatorCache)
	pageService := services.NewPageService(gdb, log, pageRepo, creatorRepo, creatorService)
	paymentLinkService := services.NewPaymentLinkService(gdb, log, paymentLinkRepo, creatorService)
	transactionService := services.NewTransactionService(gdb, log, transactionRepo, paymentLinkService, creatorService)
	dashboardService := services.NewDashboardService(gdb, log, paymentLinkRepo, transactionRepo, creatorService)
	draftingService := services.NewDraftingService(gdb, log, aiClient)
	uploadService := services.NewUploadService(log, bucketService)
	videoService := services.NewVideoService(gdb, log, videoRepo, uploadService, creatorService)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(log, authService)
	if oauthHandler == nil {
		log.Warn("OAuth sign-in disabled (GOOGLE_CLIENT_ID not set)")
	}
	creatorHandler := handlers.NewCreatorHandler(creatorService)
	pageHandler := handlers.NewPageHandler(pageService)
	publicHandler := handlers.NewPublicHandler(creatorService, pageService, paymentLinkService)
	paymentLinkHandler := handlers.NewPaymentLinkHandler(paymentLinkService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	videoHandler := handlers.NewVideoHandler(videoService)
	uploadHandler := handlers.NewUploadHandler(uploadService, creatorService)
	draftingHandler := handlers.NewDraftingHandler(draftingService, creatorService)
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ServiceName:        serviceName,
		AllowedOrigins:     allowedOrigins,
		TracingEnabled:     tracingEnabled,
		AuthMiddleware:     authMiddleware,
		AuthHandler:        authHandler,
		OAuthHandler:       oauthHandler,
		CreatorHandler:     creatorHandler,
		PageHandler:        pageHandler,
		PublicHandler:      publicHandler,
		PaymentLinkHandler: paymentLinkHandler,
		TransactionHandler: transactionHandler,
		DashboardHandler:   dashboardHandler,
		VideoHandler:       videoHandler,
		UploadHandler:      uploadHandler,
		DraftingHandler:    draftingHandler,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

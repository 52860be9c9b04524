package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduleave-api/config"
	"eduleave-api/controllers"
	"eduleave-api/middleware"
	"eduleave-api/routes"
	"eduleave-api/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if closer := config.InitLogging(cfg.Log); closer != nil {
		defer closer.Close()
	}

	// Initialize database
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer config.CloseDB(db)

	ctx := context.Background()
	if err := services.Migrate(ctx, db); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if _, err := services.Seed(ctx, db, services.SeedAdmin{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	// Set Gin mode
	if cfg.GinMode == gin.ReleaseMode || cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = config.LogWriter
	gin.DefaultErrorWriter = config.LogWriter

	var mailer services.Mailer
	if m := config.NewMailer(cfg.SMTP); m.Configured() {
		mailer = m
	} else {
		log.Printf("SMTP not configured, decision emails are disabled")
	}

	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL())
	authService := services.NewAuthService(db, tokens)
	notificationService := services.NewNotificationService(db, mailer, cfg.AppBaseURL)
	leaveService := services.NewLeaveService(db, notificationService)
	directoryService := services.NewDirectoryService(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to access database pool: %v", err)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowOrigins))

	routes.SetupRoutes(router, routes.Deps{
		Tokens:        tokens,
		Users:         authService,
		DB:            sqlDB,
		Auth:          controllers.NewAuthController(authService),
		Leaves:        controllers.NewLeaveController(leaveService),
		Directory:     controllers.NewDirectoryController(directoryService),
		Notifications: controllers.NewNotificationController(notificationService),
		LogPath:       config.LogFilePath(cfg.Log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.ServerPort)
		if cfg.IsProduction() {
			log.Printf("🏭 Running in production mode")
		} else {
			log.Printf("🔧 Running in development mode")
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

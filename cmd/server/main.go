package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doafacil/doafacil/internal/api"
	"github.com/doafacil/doafacil/internal/config"
	"github.com/doafacil/doafacil/internal/db"
	"github.com/doafacil/doafacil/internal/repository"
	"github.com/doafacil/doafacil/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database and apply pending migrations
	conn, err := db.Connect(cfg.DatabaseURL, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize repositories (shared db connection)
	institutionRepo := repository.NewInstitutionRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	donationTypeRepo := repository.NewDonationTypeRepository(conn)
	adminRepo := repository.NewAdminRepository(conn)
	statsRepo := repository.NewStatsRepository(conn)

	// Initialize services
	institutionService := service.NewInstitutionService(institutionRepo, categoryRepo, donationTypeRepo)
	catalogService := service.NewCatalogService(categoryRepo, donationTypeRepo)
	statsService := service.NewStatsService(statsRepo)
	authService := service.NewAuthService(adminRepo, cfg.JWTSecret)
	rateLimitService, err := service.NewRateLimitService(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rateLimitService.Close()

	// Set up router
	router := api.NewRouter(
		institutionService,
		catalogService,
		statsService,
		authService,
		rateLimitService,
		cfg.RateLimitDaily,
	)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting DoaFacil server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockmate-backend/internal/config"
	"mockmate-backend/internal/database"
	"mockmate-backend/internal/handlers"
	"mockmate-backend/internal/middleware"
	"mockmate-backend/internal/repository"
	"mockmate-backend/internal/router"
	"mockmate-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting MockMate Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Connect to MongoDB ────
	mongoClient, db, err := database.NewMongoDatabase(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("✗ MongoDB connection failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()
	log.Println("✓ MongoDB connected")

	// ──── Step 3: Connect to Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Initialize Repositories ────
	interviewRepo := repository.NewInterviewRepo(db)
	userRepo := repository.NewUserRepo(db)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	summaryService := services.NewSessionSummaryService(interviewRepo)
	pdfService := services.NewPDFReportService()
	progressService := services.NewProgressAnalyticsService(interviewRepo)
	planService := services.NewPlanService(userRepo, redisClient, time.Duration(cfg.PlanCacheTTLSeconds)*time.Second)

	// ──── Initialize Handlers ────
	reportHandler := handlers.NewReportHandler(
		summaryService,
		pdfService,
		progressService,
		planService,
		interviewRepo,
		userRepo,
	)

	// ──── Start HTTP Server ────
	r := router.New(jwtAuth, reportHandler, cfg.PDFExportPerMin, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ MockMate Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

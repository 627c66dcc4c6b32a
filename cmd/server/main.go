package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"job_portal/internal/config"
	"job_portal/internal/handler"
	"job_portal/internal/middleware"
	"job_portal/internal/repository"
	"job_portal/internal/service"
	"job_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHoursStr := os.Getenv("JWT_EXPIRATION_HOURS")
	jwtExpHours, err := strconv.ParseInt(jwtExpHoursStr, 10, 64)
	if err != nil {
		log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		jwtExpHours = 24
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "4444" // Default port
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "public" // Default uploads directory
	}
	// Ensure per-category upload directories exist
	if err := service.EnsureUploadDirs(uploadsDir); err != nil {
		log.Fatalf("Failed to create upload directories under %s: %v", uploadsDir, err)
	}
	log.Printf("Uploads will be stored in: %s", uploadsDir)

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	profileRepo := repository.NewProfileRepository(dbPool)
	jobRepo := repository.NewJobRepository(dbPool)
	appRepo := repository.NewApplicationRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, profileRepo, jwtUtil)
	profileService := service.NewProfileService(profileRepo)
	uploadService := service.NewUploadService(uploadsDir)
	jobService := service.NewJobService(jobRepo, appRepo, userRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	jobHandler := handler.NewJobHandler(jobService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()
	router.Use(middleware.ErrorLoggingMiddleware())

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil, userRepo)
	applicantMW := middleware.ApplicantMiddleware()
	recruiterMW := middleware.RecruiterMiddleware()
	adminMW := middleware.AdminMiddleware()
	// Multipart framing overhead on top of the 10MiB file cap
	uploadSizeMW := middleware.RequestSizeLimit(service.MaxUploadSize + 1024*1024)

	// --- Register Routes ---
	root := router.Group("")
	authHandler.RegisterAuthRoutes(root)
	uploadHandler.RegisterUploadRoutes(root, uploadSizeMW)

	apiGroup := router.Group("/api")
	profileHandler.RegisterProfileRoutes(apiGroup, jwtAuthMW)
	jobHandler.RegisterJobRoutes(apiGroup, jwtAuthMW, applicantMW, recruiterMW, adminMW)

	// Static retrieval of uploaded artifacts
	router.Static("/host", uploadsDir)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

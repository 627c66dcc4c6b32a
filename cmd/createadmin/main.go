package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"job_portal/internal/config"
	"job_portal/internal/model"
	"job_portal/internal/repository"
	"job_portal/internal/service"
	"job_portal/internal/utils"

	"github.com/joho/godotenv"
)

// Seeds the bootstrap administrator account through the same signup path
// the API uses. Running it twice is a no-op.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

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
		jwtExpHours = 24
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@jobportal.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(dbPool)
	profileRepo := repository.NewProfileRepository(dbPool)
	authService := service.NewAuthService(userRepo, profileRepo, utils.NewJWTUtil(jwtSecret, jwtExpHours))

	ctx := context.Background()

	existing, err := userRepo.FindFirstByType(ctx, model.TypeAdmin)
	if err != nil {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}
	if existing != nil {
		log.Println("Admin user already exists!")
		return
	}

	_, _, err = authService.Signup(ctx, model.SignupRequest{
		Email:         adminEmail,
		Password:      adminPassword,
		Type:          model.TypeAdmin,
		Name:          "System Administrator",
		ContactNumber: "+11234567890",
		Role:          "Super Admin",
		Permissions:   model.DefaultAdminPermissions,
	})
	if err != nil {
		log.Fatalf("Error creating admin user: %v", err)
	}

	log.Println("Admin user created successfully!")
	log.Printf("Email: %s", adminEmail)
	log.Println("Please change the password after first login.")
}

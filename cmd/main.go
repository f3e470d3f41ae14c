package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"slotify/internal/caching"
	"slotify/internal/config"
	"slotify/internal/handlers"
	"slotify/internal/jobs/background"
	"slotify/internal/middleware"
	"slotify/internal/models"
	"slotify/internal/repositories"
	"slotify/internal/services"
	"slotify/pkg/database"
)

const version = "1.0.0"

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret; sessions will not survive restarts")
	}
	tokenTTL := envInt("ACCESS_TOKEN_TTL_SECONDS", 900)
	refreshTTL := envInt("REFRESH_TOKEN_TTL_SECONDS", 30*24*3600)

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := envInt("REDIS_DB", 0)

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	mediaSvc, err := services.NewMediaService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: failed to ensure branding bucket: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	partnerRepo := repositories.NewPartnerRepo(pool)
	planRepo := repositories.NewPlanRepo(pool)
	providerRepo := repositories.NewProviderRepo(pool)
	serviceRepo := repositories.NewServiceRepo(pool)
	availabilityRepo := repositories.NewAvailabilityRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)

	// Services
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	notificationSvc := services.NewNotificationService(config.LoadEmailConfig(), cacheSvc)
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, tokenTTL, refreshTTL)
	licenseSvc := services.NewLicenseService(partnerRepo, planRepo, cacheSvc)
	quotaSvc := services.NewQuotaService(partnerRepo)
	partnerSvc := services.NewPartnerService(partnerRepo, userRepo, licenseSvc, notificationSvc, cacheSvc)
	planSvc := services.NewPlanService(planRepo, cacheSvc)
	providerSvc := services.NewProviderService(providerRepo, quotaSvc)
	catalogSvc := services.NewServiceCatalogService(serviceRepo)
	availabilitySvc := services.NewAvailabilityService(availabilityRepo, providerRepo)
	bookingSvc := services.NewBookingService(bookingRepo, providerRepo, serviceRepo, userRepo, notificationSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	partnerHandlers := handlers.NewPartnerHandlers(partnerSvc)
	adminPartnerHandlers := handlers.NewAdminPartnerHandlers(partnerSvc)
	planHandlers := handlers.NewPlanHandlers(planSvc)
	licenseHandlers := handlers.NewLicenseHandlers(licenseSvc)
	providerHandlers := handlers.NewProviderHandlers(providerSvc)
	serviceHandlers := handlers.NewServiceHandlers(catalogSvc)
	availabilityHandlers := handlers.NewAvailabilityHandlers(availabilitySvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc)
	brandingHandlers := handlers.NewBrandingHandlers(mediaSvc, partnerRepo, cacheSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	jobScheduler, err := background.NewJobScheduler(partnerRepo, notificationSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	jobScheduler.Start()
	defer func() {
		if err := jobScheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.LivenessCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	v1 := e.Group("/v1")

	// Authentication routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	// Public plan catalog for upgrade pickers
	v1.GET("/plans", planHandlers.ListActive)

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(middleware.JWTMiddleware(authSvc))
	authed.GET("/me", authHandlers.Me)

	// Partner onboarding and customer-side booking
	authed.POST("/partners", partnerHandlers.Create)
	authed.POST("/partners/:partnerId/bookings", bookingHandlers.Create)
	authed.GET("/my/bookings", bookingHandlers.ListMine)

	// Partner-scoped routes: every request resolves the caller's partner
	partner := authed.Group("/partner")
	partner.Use(middleware.PartnerAccessMiddleware(partnerSvc))
	partner.GET("", partnerHandlers.GetMe)
	partner.PUT("", partnerHandlers.UpdateMe)
	partner.GET("/license", licenseHandlers.Get)
	partner.POST("/license/upgrade", licenseHandlers.Upgrade)

	// Routes past this point additionally require a usable license
	licensed := partner.Group("")
	licensed.Use(middleware.LicenseMiddleware(licenseSvc))

	licensed.GET("/providers", providerHandlers.List)
	licensed.POST("/providers", providerHandlers.Create)
	licensed.GET("/providers/:id", providerHandlers.Get)
	licensed.PUT("/providers/:id", providerHandlers.Update)
	licensed.POST("/providers/:id/deactivate", providerHandlers.Deactivate)
	licensed.POST("/providers/:id/reactivate", providerHandlers.Reactivate)
	licensed.GET("/providers/:providerId/availability", availabilityHandlers.ListByProvider)
	licensed.GET("/providers/:providerId/bookings", bookingHandlers.ListByProvider)

	licensed.GET("/services", serviceHandlers.List)
	licensed.POST("/services", serviceHandlers.Create)
	licensed.GET("/services/:id", serviceHandlers.Get)
	licensed.PUT("/services/:id", serviceHandlers.Update)
	licensed.DELETE("/services/:id", serviceHandlers.Delete)

	licensed.POST("/availability", availabilityHandlers.Create)
	licensed.PUT("/availability/:id", availabilityHandlers.Update)
	licensed.DELETE("/availability/:id", availabilityHandlers.Delete)

	licensed.GET("/bookings", bookingHandlers.List)
	licensed.GET("/bookings/:id", bookingHandlers.Get)
	licensed.PUT("/bookings/:id/status", bookingHandlers.UpdateStatus)

	licensed.GET("/branding", brandingHandlers.Get)
	licensed.POST("/branding/logo", brandingHandlers.UploadLogo)
	licensed.POST("/branding/banner", brandingHandlers.UploadBanner)

	// Platform admin routes
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(models.RolePlatformAdmin))
	admin.GET("/partners", adminPartnerHandlers.List)
	admin.GET("/partners/:id", adminPartnerHandlers.Get)
	admin.POST("/partners/:id/approve", adminPartnerHandlers.Approve)
	admin.POST("/partners/:id/suspend", adminPartnerHandlers.Suspend)
	admin.DELETE("/partners/:id", adminPartnerHandlers.Delete)
	admin.GET("/plans", planHandlers.ListAll)
	admin.GET("/plans/:id", planHandlers.Get)
	admin.POST("/plans", planHandlers.Create)
	admin.PUT("/plans/:id", planHandlers.Update)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Slotify server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

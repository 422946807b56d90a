package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"templeseva/internal/config"
	"templeseva/internal/database"
	"templeseva/internal/metrics"
	"templeseva/internal/middleware"
	"templeseva/internal/modules/admin"
	"templeseva/internal/modules/auth"
	"templeseva/internal/modules/donation"
	"templeseva/internal/modules/gallery"
	"templeseva/internal/modules/live"
	"templeseva/internal/modules/puja"
	jwtsvc "templeseva/internal/pkg/jwt"
	"templeseva/internal/razorpay"
	"templeseva/internal/repository"
	"templeseva/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	store, localStore, err := buildStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	paymentMetrics := metrics.NewPaymentMetrics(registry)

	userRepo := repository.NewUserRepository(db)
	donorRepo := repository.NewDonorRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	pujaRepo := repository.NewPujaEventRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)
	gateway := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	hub := live.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	donationService := donation.NewService(
		donorRepo, donationRepo, userRepo, settingsRepo,
		gateway, store, paymentMetrics, hub, nil,
		cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret, cfg.TempleName,
		log.Printf,
	)
	donationHandler := donation.NewHandler(donationService)

	adminService := admin.NewService(adminRepo, donorRepo, donationRepo, settingsRepo, cfg.AdminEmail, cfg.AdminPhone)
	adminHandler := admin.NewHandler(adminService)

	pujaHandler := puja.NewHandler(puja.NewService(pujaRepo))
	galleryHandler := gallery.NewHandler(gallery.NewService(galleryRepo, store))
	liveHandler := live.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	if localStore != nil {
		r.Static("/static/uploads", localStore.BaseDir())
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)
		pujaHandler.RegisterPublicRoutes(v1)
		galleryHandler.RegisterPublicRoutes(v1)
		liveHandler.RegisterRoutes(v1)
		donationHandler.RegisterRoutes(v1, j)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.Auth(j), middleware.AdminOnly(adminService))
		{
			adminHandler.RegisterAdminRoutes(adminGroup)
			pujaHandler.RegisterAdminRoutes(adminGroup)
			galleryHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func buildStore(cfg *config.RuntimeConfig) (storage.ObjectStore, *storage.LocalStore, error) {
	if cfg.StorageBackend == "s3" {
		s3Store, err := storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			return nil, nil, err
		}
		return s3Store, nil, nil
	}
	localStore := storage.NewLocalStore(cfg.StorageDir, cfg.StorageBaseURL)
	return localStore, localStore, nil
}

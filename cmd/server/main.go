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

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dermalens/internal/cache"
	"dermalens/internal/config"
	"dermalens/internal/repository"
	"dermalens/internal/service"
	"dermalens/internal/storage"
	"dermalens/internal/transport/rest"
	"dermalens/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// MinIO connection (optional; uploads fall back to sample data only)
	var store service.ObjectStore
	if cfg.Minio.Endpoint != "" {
		s, err := storage.New(ctx, cfg.Minio.Endpoint, cfg.Minio.Region, cfg.Minio.BucketName,
			cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Fatal("Failed to connect to MinIO:", err)
		}
		store = s
		log.Println("Connected to MinIO")
	} else {
		log.Println("MINIO_ENDPOINT not set, image uploads disabled")
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories and caches
	analysisRepo := repository.NewAnalysisRepo(db)
	sessionCache := cache.NewSessionCache(rdb)
	analysisCache := cache.NewAnalysisCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth.JWTSecret)
	sessionSvc := service.NewSessionService(sessionCache, authSvc)
	uploadSvc := service.NewUploadService(store, sessionSvc)
	analysisSvc := service.NewAnalysisService(analysisRepo, analysisCache, sessionSvc)
	reportSvc := service.NewReportService(analysisRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	analysisSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		SessionService:  sessionSvc,
		UploadService:   uploadSvc,
		AnalysisService: analysisSvc,
		ReportService:   reportSvc,
		WSHub:           wsHub,
		Mongo:           mongoClient,
		Redis:           rdb,
		MaxUploadBytes:  cfg.Uploads.MaxBytes,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%d", cfg.Server.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/sessions")
		log.Println("  GET  /v1/sessions/current")
		log.Println("  POST /v1/sessions/navigate")
		log.Println("  POST /v1/sessions/reset")
		log.Println("  POST /v1/uploads/{slot}")
		log.Println("  POST /v1/uploads/sample")
		log.Println("  POST /v1/analyses")
		log.Println("  POST /v1/analyses/demo")
		log.Println("  GET  /v1/analyses")
		log.Println("  GET  /v1/analyses/latest")
		log.Println("  GET  /v1/analyses/{id}/report")
		log.Println("  GET  /v1/meta/{categories,sites,about}")
		log.Println("  WS   /v1/ws/sessions")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

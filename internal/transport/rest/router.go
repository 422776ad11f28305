package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"dermalens/internal/service"
	"dermalens/internal/transport/rest/handler"
	"dermalens/internal/transport/rest/middleware"
	"dermalens/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	SessionService  *service.SessionService
	UploadService   *service.UploadService
	AnalysisService *service.AnalysisService
	ReportService   *service.ReportService
	WSHub           *ws.Hub
	Mongo           *mongo.Client
	Redis           *redis.Client
	MaxUploadBytes  int64
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.UploadService)
	uploadHandler := handler.NewUploadHandler(c.UploadService, c.MaxUploadBytes)
	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService, c.ReportService)
	metaHandler := handler.NewMetaHandler()
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/meta/categories", metaHandler.Categories).Methods("GET", "OPTIONS")
	v1.HandleFunc("/meta/sites", metaHandler.Sites).Methods("GET", "OPTIONS")
	v1.HandleFunc("/meta/about", metaHandler.About).Methods("GET", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/sessions", wsHandler.SessionWS).Methods("GET")

	// Health check with backend pings
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := map[string]string{"mongo": "ok", "redis": "ok"}
		if c.Mongo != nil {
			if err := c.Mongo.Ping(ctx, nil); err != nil {
				checks["mongo"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		if c.Redis != nil {
			if err := c.Redis.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{"status": overall, "checks": checks})
	}).Methods("GET")

	// Session routes (require session auth)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/sessions/current", sessionHandler.Current).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/navigate", sessionHandler.Navigate).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/reset", sessionHandler.Reset).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/uploads/sample", uploadHandler.UseSample).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/uploads/{slot}", uploadHandler.Store).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/analyses", analysisHandler.Run).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/analyses/demo", analysisHandler.RunDemo).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/analyses", analysisHandler.History).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/analyses/latest", analysisHandler.Latest).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/analyses/{analysisId}/report", analysisHandler.Report).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

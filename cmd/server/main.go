// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sanarte/go-sanarte/internal/config"
	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/handlers"
	"github.com/sanarte/go-sanarte/internal/middleware"
	"github.com/sanarte/go-sanarte/internal/ratelimit"
	"github.com/sanarte/go-sanarte/internal/repository/cache"
	"github.com/sanarte/go-sanarte/internal/services"
	"github.com/sanarte/go-sanarte/internal/services/chatbot"
	"github.com/sanarte/go-sanarte/internal/services/gemini"
	"github.com/sanarte/go-sanarte/internal/services/markdown"
	"github.com/sanarte/go-sanarte/internal/services/symptom"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.SearchCacheEntry{}, &domain.SymptomCacheEntry{}, &domain.CatalogEntry{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	searchCacheRepo := cache.NewSearchCacheRepository(db)
	symptomCacheRepo := cache.NewSymptomCacheRepository(db)
	catalogRepo := cache.NewCatalogRepository(db)

	// --- Rate Limiter ---
	limiterCfg := &ratelimit.Config{
		WindowSize:    cfg.RateLimitWindow,
		MaxRequests:   cfg.RateLimitMax,
		CleanupPeriod: 5 * time.Minute,
	}
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		limiter = ratelimit.NewRedisRateLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), limiterCfg)
		log.Printf("Rate limiting via Redis at %s", cfg.RedisAddr)
	} else {
		limiter = ratelimit.NewMemoryRateLimiter(limiterCfg)
	}
	defer limiter.Close()

	// --- Services ---
	geminiCfg := gemini.DefaultConfig()
	geminiCfg.APIKey = cfg.GeminiAPIKey
	geminiCfg.Model = cfg.GeminiModel
	geminiCfg.BaseURL = cfg.GeminiBaseURL
	geminiCfg.Temperature = cfg.GeminiTemperature
	geminiCfg.MaxOutputTokens = cfg.GeminiMaxOutputTokens

	geminiClient, err := gemini.NewClient(geminiCfg, services.NewLogger("gemini"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Gemini client: %v", err)
	}

	detailService := symptom.NewDetailService(catalogRepo, symptomCacheRepo, geminiClient, services.NewLogger("symptom.detail"))
	searchService := symptom.NewSearchService(searchCacheRepo, geminiClient, services.NewLogger("symptom.search"))
	chatService := chatbot.NewService(geminiClient, services.NewLogger("chatbot"))
	renderer := markdown.NewRenderer()

	// --- Handlers ---
	geminiHandler := handlers.NewGeminiHandler(geminiClient)
	symptomHandler := handlers.NewSymptomHandler(detailService, searchService, renderer)
	chatHandler := handlers.NewChatHandler(chatService)
	adminHandler := handlers.NewAdminHandler(detailService)

	// --- Router Setup ---
	r := mux.NewRouter()
	identityMiddleware := middleware.NewIdentityMiddleware(cfg.SessionSecret)
	rateLimitMiddleware := middleware.RateLimitMiddleware(limiter, "generation")

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)
	r.Use(identityMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/api/symptoms/autocomplete", symptomHandler.Autocomplete).Methods("GET")

	// --- Generation Routes (rate limited) ---
	gen := r.PathPrefix("/api").Subrouter()
	gen.Use(rateLimitMiddleware)
	gen.HandleFunc("/gemini", geminiHandler.HandleGenerate).Methods("POST")
	gen.HandleFunc("/chat", chatHandler.HandleMessage).Methods("POST")
	gen.HandleFunc("/symptoms/search", symptomHandler.Search).Methods("GET")
	gen.HandleFunc("/symptoms/{name}", symptomHandler.GetDetail).Methods("GET")
	gen.HandleFunc("/symptoms/{name}/html", symptomHandler.GetDetailHTML).Methods("GET")

	// --- Admin Routes ---
	adminApiRoutes := r.PathPrefix("/api/admin").Subrouter()
	adminApiRoutes.Use(middleware.RequireIdentity)
	adminApiRoutes.HandleFunc("/symptoms/regenerate", adminHandler.RegenerateSymptom).Methods("POST")

	// Wrong verbs on existing resources answer 405, not 404.
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"message":"Method Not Allowed"}`))
	})

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("SanArte symptom service starting on port %s", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}

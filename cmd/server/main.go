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
	"gorm.io/gorm"

	"github.com/niksalehi/go-visionchat/internal/config"
	"github.com/niksalehi/go-visionchat/internal/domain"
	"github.com/niksalehi/go-visionchat/internal/handlers"
	"github.com/niksalehi/go-visionchat/internal/middleware"
	"github.com/niksalehi/go-visionchat/internal/ratelimit"
	chatrepo "github.com/niksalehi/go-visionchat/internal/repository/chat"
	"github.com/niksalehi/go-visionchat/internal/repository/message"
	"github.com/niksalehi/go-visionchat/internal/repository/user"
	"github.com/niksalehi/go-visionchat/internal/services"
	"github.com/niksalehi/go-visionchat/internal/services/ai"
	"github.com/niksalehi/go-visionchat/internal/services/token"
	"github.com/niksalehi/go-visionchat/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// newProvider picks the completion gateway for the configured mode.
func newProvider(cfg *config.Config) (ai.Provider, error) {
	if cfg.UseMockAI {
		log.Println("WARNING: mock AI mode enabled; gateway calls will be echoed, not executed")
		return ai.NewMockProvider(), nil
	}

	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.OpenRouterAPIKey
	aiConfig.BaseURL = cfg.OpenRouterBaseURL
	aiConfig.TextModel = cfg.TextModel
	aiConfig.VisionModel = cfg.VisionModel
	return ai.NewOpenAIProvider(aiConfig)
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("go_visionchat")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	tokenService := token.NewService(cfg.JWTSecretKey)
	authService := user_services.NewAuthService(userRepo, tokenService, logger)

	provider, err := newProvider(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize completion provider: %v", err)
	}

	chatService, err := services.NewChatService(chatRepo, messageRepo, provider, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	systemHandler := handlers.NewSystemHandler(cfg)

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/", systemHandler.Root).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/test-key", systemHandler.TestKey).Methods("GET")
	r.HandleFunc("/api/log", handlers.LogFrontendEvent).Methods("POST")

	authRoutes := r.NewRoute().Subrouter()
	authRoutes.Use(middleware.RateLimitMiddleware(authLimiter, "auth"))
	authRoutes.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	authRoutes.HandleFunc("/login", authHandler.Login).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/{id:[0-9]+}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/chat", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/analyze-image", chatHandler.AnalyzeImage).Methods("POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting visionchat API on port %s (env=%s, mock_ai=%t)", cfg.ServerPort, cfg.Environment, cfg.UseMockAI)

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

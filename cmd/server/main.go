package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealpick/internal/config"
	"mealpick/internal/database"
	"mealpick/internal/handlers"
	"mealpick/internal/notify"
	"mealpick/internal/repository"
	"mealpick/internal/security"
	"mealpick/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	childRepo := repository.NewChildRepository(db)
	foodRepo := repository.NewFoodItemRepository(db)
	choiceRepo := repository.NewDailyChoiceRepository(db)

	// Services
	hub := notify.NewHub()
	authService := service.NewAuthService(userRepo, familyRepo, cfg.SessionDuration)
	rosterService := service.NewRosterService(childRepo, hub)
	catalogService := service.NewCatalogService(foodRepo, hub)
	choiceService := service.NewChoiceService(childRepo, foodRepo, choiceRepo, hub)

	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Handlers
	middleware := handlers.NewMiddleware(authService, familyRepo)
	authLimiter := security.NewRateLimiter(10, time.Minute)
	authHandler := handlers.NewAuthHandler(authService, emailService, familyRepo)
	oauthHandler := handlers.NewOAuthHandler(authService, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBase)
	familyHandler := handlers.NewFamilyHandler()
	childHandler := handlers.NewChildHandler(rosterService)
	foodHandler := handlers.NewFoodHandler(catalogService)
	choiceHandler := handlers.NewChoiceHandler(choiceService)
	eventsHandler := handlers.NewEventsHandler(hub)

	// Routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /auth/register", handlers.RateLimit(authLimiter, authHandler.Register))
	mux.HandleFunc("POST /auth/login", handlers.RateLimit(authLimiter, authHandler.Login))
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/google/start", oauthHandler.Start)
	mux.HandleFunc("GET /auth/google/callback", oauthHandler.Callback)

	// Authenticated routes
	mux.HandleFunc("GET /auth/session", middleware.RequireAuth(authHandler.Session))
	mux.HandleFunc("GET /family", middleware.RequireAuth(familyHandler.Get))

	mux.HandleFunc("GET /children", middleware.RequireAuth(childHandler.List))
	mux.HandleFunc("POST /children", middleware.RequireAuth(childHandler.Create))
	mux.HandleFunc("GET /children/{id}", middleware.RequireAuth(childHandler.Get))
	mux.HandleFunc("PATCH /children/{id}", middleware.RequireAuth(childHandler.Update))
	mux.HandleFunc("DELETE /children/{id}", middleware.RequireAuth(childHandler.Delete))

	mux.HandleFunc("GET /food-items", middleware.RequireAuth(foodHandler.List))
	mux.HandleFunc("POST /food-items", middleware.RequireAuth(foodHandler.Create))
	mux.HandleFunc("GET /food-items/{id}", middleware.RequireAuth(foodHandler.Get))
	mux.HandleFunc("PATCH /food-items/{id}", middleware.RequireAuth(foodHandler.Update))
	mux.HandleFunc("DELETE /food-items/{id}", middleware.RequireAuth(foodHandler.Delete))

	mux.HandleFunc("GET /choices/today", middleware.RequireAuth(choiceHandler.Dashboard))
	mux.HandleFunc("GET /children/{id}/choice", middleware.RequireAuth(choiceHandler.Get))
	mux.HandleFunc("PUT /children/{id}/choice", middleware.RequireAuth(choiceHandler.Submit))

	mux.HandleFunc("GET /events", middleware.RequireAuth(eventsHandler.Stream))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: /events streams indefinitely
		IdleTimeout: 60 * time.Second,
	}

	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}

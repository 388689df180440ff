// Main entry point of the application. It is responsible for loading
// configuration, connecting to the database and the object store, running
// migrations, wiring services and handlers, setting up the HTTP router and
// middleware, and starting the HTTP server with graceful shutdown.
//
// @title Instagram Clone API
// @version 1.0
// @description Minimal photo-sharing backend: registration, login, posts, likes and uploads.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/wiryawan46/instagram-clone-be/auth"
	"github.com/wiryawan46/instagram-clone-be/config"
	"github.com/wiryawan46/instagram-clone-be/db"
	"github.com/wiryawan46/instagram-clone-be/posts"
	"github.com/wiryawan46/instagram-clone-be/storage"
)

func main() {
	// .env is a development convenience; production sets variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Error detail in responses is a development-only behavior.
	auth.SetErrorDetails(!cfg.Server.IsProduction())

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to create object store client: %v", err)
	}
	// A missing policy only breaks anonymous reads, not uploads, so the
	// server still starts.
	policyCtx, policyCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := objectStore.EnsurePublicReadPolicy(policyCtx); err != nil {
		log.Printf("Warning: could not set public bucket policy: %v", err)
	}
	policyCancel()

	// Manual dependency injection: services get their dependencies through
	// constructors, handlers get their services.
	tokenCodec := auth.NewTokenCodec(cfg.Auth)
	authService := auth.NewAuthService(pool, tokenCodec, cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	postService := posts.NewPostService(pool, cfg.Storage)
	postHandlers := posts.NewPostHandlers(postService)

	storageHandlers := storage.NewStorageHandlers(objectStore)

	r := chi.NewRouter()

	// Global middleware. Chi requires all middleware to be registered before
	// any routes. Panic recovery answers with the standard error envelope
	// instead of an empty 500.
	r.Use(middleware.Logger)
	r.Use(auth.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger UI. The doc.json it serves is generated out-of-band by `swag init`.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public routes.
	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/login", authHandlers.HandleLogin())
	// NOTE: /upload intentionally has no auth requirement, matching the
	// documented API surface. Tightening it is a pending product decision.
	r.Post("/upload", storageHandlers.HandleUpload())
	r.Get("/image/{filename}", storageHandlers.HandleImage())

	// Protected routes: everything below runs behind the request
	// authenticator.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(tokenCodec, authService))

		r.Get("/protected", authHandlers.HandleProtected())
		r.Get("/posts", postHandlers.HandleListPosts())
		r.Post("/create-post", postHandlers.HandleCreatePost())
		r.Get("/myposts", postHandlers.HandleMyPosts())
		r.Put("/like-post", postHandlers.HandleLikePost())
		r.Put("/unlike-post", postHandlers.HandleUnlikePost())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/workout-planner/backend/api/v1/database"
	"github.com/workout-planner/backend/api/v1/handlers"
	"github.com/workout-planner/backend/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Create handlers with the store injected
	workoutHandler := &handlers.WorkoutHandler{Store: store}
	diagnosticsHandler := &handlers.DiagnosticsHandler{Store: store}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handlers.HomeHandler)
	r.Get("/health", handlers.HealthHandler)
	r.Get("/test", diagnosticsHandler.TestDatabase)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handlers.ApiInfoHandler)

		r.Route("/workouts", func(r chi.Router) {
			r.Post("/", workoutHandler.CreateWorkout)
			r.Get("/", workoutHandler.GetWorkouts)
			r.Patch("/{id}", workoutHandler.UpdateWorkout)
			r.Delete("/{id}", workoutHandler.DeleteWorkout)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-shutdownCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("failed to close database connection: %v", err)
	}
}

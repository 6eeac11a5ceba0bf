package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"travely-api/internal/config"
	"travely-api/internal/container"
	"travely-api/internal/handler"
	"travely-api/internal/middleware"
	"travely-api/pkg/logger"
	"travely-api/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	mongoClient *mongo.Client
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed")
		}
	}

	if r.mongoClient != nil {
		if err := r.mongoClient.Disconnect(ctx); err != nil {
			r.log.WithError(err).Error("Failed to disconnect MongoDB client")
			errs = append(errs, fmt.Errorf("Mongo disconnect: %w", err))
		} else {
			r.log.Info("MongoDB connection closed")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting travely-api server")

	ctx := context.Background()
	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	router := setupRouter(c)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	resources := &Resources{
		mongoClient: c.MongoClient,
		redisClient: c.RedisClient,
		server:      server,
		log:         log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.Config
	log := c.Logger
	services := c.Services

	r := chi.NewRouter()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(c.Metrics.Middleware)

	healthHandler := handler.NewHealthHandler(c)
	userHandler := handler.NewUserHandler(services.User, services.Team, log)
	travelHandler := handler.NewTravelHandler(services.Travel, services.Bookmark, log)
	teamHandler := handler.NewTeamHandler(services.Team, log)
	reviewHandler := handler.NewReviewHandler(services.Review, log)
	bookmarkHandler := handler.NewBookmarkHandler(services.Bookmark, log)
	guideHandler := handler.NewTravelGuideHandler(services.TravelGuide, log)
	commentHandler := handler.NewCommentHandler(services.Comment, log)

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, log))

				r.Patch("/update-user-status", userHandler.UpdateUserStatus)
				r.Patch("/mbti", userHandler.UpdateMBTI)
				r.Patch("/phone", userHandler.UpdatePhone)
				r.Patch("/bank-account", userHandler.UpdateBankAccount)
			})
		})

		r.Route("/travels", func(r chi.Router) {
			r.Get("/", travelHandler.List)
			r.Get("/travel-list", travelHandler.List)
			r.Get("/detail/{travelId}", travelHandler.Detail)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, log))

				r.Post("/add-travel", travelHandler.AddTravel)
				r.Get("/bookmark-list", travelHandler.BookmarkList)
				r.Get("/my-travels", travelHandler.MyTravels)
				r.Get("/my-created-travels", travelHandler.MyCreatedTravels)
				r.Get("/manage-my-travel/{travelId}", travelHandler.ManageMyTravel)
				r.Get("/manage-my-travel-teams/{travelId}", travelHandler.ManageMyTravelTeams)
				r.Patch("/update-active", travelHandler.UpdateActive)
				r.Patch("/delete-travel", travelHandler.DeleteTravel)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, log))

			r.Post("/join", teamHandler.Join)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, log))

				r.Post("/", reviewHandler.Create)
				r.Delete("/{reviewId}", reviewHandler.Delete)
			})
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, log))

			r.Get("/", bookmarkHandler.Get)
			r.Post("/", bookmarkHandler.Create)
			r.Delete("/", bookmarkHandler.Delete)
		})

		r.Route("/travels-guide", func(r chi.Router) {
			r.Get("/travel", guideHandler.List)
			r.Get("/travel-list", guideHandler.TravelList)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth, log))

				r.Post("/add-travel", guideHandler.AddTravel)

				r.Route("/comments", func(r chi.Router) {
					r.Post("/", commentHandler.Create)
					r.Patch("/", commentHandler.Update)
					r.Delete("/", commentHandler.Delete)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Endpoint not found"}`))
	})

	log.Info("Router configured successfully")
	return r
}

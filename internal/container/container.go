package container

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"travely-api/internal/config"
	"travely-api/internal/repository"
	"travely-api/internal/service"
	"travely-api/internal/service/auth"
	"travely-api/pkg/logger"
	"travely-api/pkg/metrics"
	"travely-api/pkg/redis"
	"travely-api/pkg/utils"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	MongoClient *mongo.Client
	RedisClient *redis.Client
	Metrics     *metrics.Metrics
	Services    *service.Services
}

// New creates a new dependency injection container
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	mongoClient, err := repository.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	redisClient, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
	if err != nil {
		return nil, err
	}

	users := repository.NewMongoUserRepository(db)
	travels := repository.NewMongoTravelRepository(db)
	guides := repository.NewMongoTravelGuideRepository(db)
	teams := repository.NewMongoTeamRepository(db)
	reviews := repository.NewMongoReviewRepository(db)
	ratings := repository.NewMongoUserRatingRepository(db)
	bookmarks := repository.NewMongoBookmarkRepository(db)
	comments := repository.NewMongoCommentRepository(db)

	cache := service.NewCacheService(redisClient, log.Logger)
	images := utils.NewImageValidator(cfg.ImageCheckTimeout)

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry, log)
	services := &service.Services{
		Auth:        authService,
		User:        service.NewUserService(users, ratings, authService, cache, log),
		Team:        service.NewTeamService(teams, users, log),
		Travel:      service.NewTravelService(mongoClient, travels, teams, users, reviews, bookmarks, ratings, cache, images, log),
		TravelGuide: service.NewTravelGuideService(mongoClient, guides, teams, users, bookmarks, images, log),
		Review:      service.NewReviewService(reviews, travels, teams, users, ratings, cache, images, log),
		Bookmark:    service.NewBookmarkService(bookmarks, travels, users, reviews, cache, log),
		Comment:     service.NewCommentService(comments, guides, users, log),
	}

	return &Container{
		Config:      cfg,
		Logger:      log,
		MongoClient: mongoClient,
		RedisClient: redisClient,
		Metrics:     metrics.NewMetrics("travely"),
		Services:    services,
	}, nil
}

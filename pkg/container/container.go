// Package container wires the application graph: config, infrastructure,
// repositories, services and handlers, in that order.
package container

import (
	"context"
	"fmt"

	"microblog-backend/internal/config"
	commenthandler "microblog-backend/internal/domains/comment/handler"
	commentrepo "microblog-backend/internal/domains/comment/repository"
	commentservice "microblog-backend/internal/domains/comment/service"
	followhandler "microblog-backend/internal/domains/follow/handler"
	followrepo "microblog-backend/internal/domains/follow/repository"
	followservice "microblog-backend/internal/domains/follow/service"
	grouphandler "microblog-backend/internal/domains/group/handler"
	grouprepo "microblog-backend/internal/domains/group/repository"
	groupservice "microblog-backend/internal/domains/group/service"
	posthandler "microblog-backend/internal/domains/post/handler"
	postrepo "microblog-backend/internal/domains/post/repository"
	postservice "microblog-backend/internal/domains/post/service"
	userhandler "microblog-backend/internal/domains/user/handler"
	userrepo "microblog-backend/internal/domains/user/repository"
	userservice "microblog-backend/internal/domains/user/service"
	infracache "microblog-backend/internal/infrastructure/cache"
	"microblog-backend/internal/infrastructure/database"
	"microblog-backend/internal/infrastructure/storage"
	"microblog-backend/pkg/jwt"
	"microblog-backend/pkg/logger"
)

type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Cache *infracache.RedisCache

	JWTManager *jwt.Manager

	UserHandler    *userhandler.Handler
	GroupHandler   *grouphandler.Handler
	PostHandler    *posthandler.Handler
	CommentHandler *commenthandler.Handler
	FollowHandler  *followhandler.Handler
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbCfg)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		// The index cache degrades to direct reads, so a missing redis is
		// a warning at startup, not a fatal error.
		logger.Warn("redis unavailable, feed cache disabled", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	userRepo := userrepo.NewPostgresRepository(db.Pool)
	groupRepo := grouprepo.NewPostgresRepository(db.Pool)
	postRepo := postrepo.NewPostgresRepository(db.Pool)
	commentRepo := commentrepo.NewPostgresRepository(db.Pool)
	followRepo := followrepo.NewPostgresRepository(db.Pool)

	postSvc := postservice.NewPostService(postRepo, userRepo, groupRepo, followRepo, commentRepo, minioStorage, redisCache, cfg.Feed)
	groupSvc := groupservice.NewGroupService(groupRepo, postRepo)
	commentSvc := commentservice.NewCommentService(commentRepo, postRepo, userRepo)
	followSvc := followservice.NewFollowService(followRepo, userRepo)
	userSvc := userservice.NewUserService(userRepo, postRepo, postSvc, commentRepo, followRepo, jwtManager)

	return &Container{
		Config:         cfg,
		DB:             db,
		Cache:          redisCache,
		JWTManager:     jwtManager,
		UserHandler:    userhandler.NewHandler(userSvc),
		GroupHandler:   grouphandler.NewHandler(groupSvc),
		PostHandler:    posthandler.NewHandler(postSvc, commentSvc, groupSvc),
		CommentHandler: commenthandler.NewHandler(commentSvc),
		FollowHandler:  followhandler.NewHandler(followSvc),
	}, nil
}

func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Warn("failed to close redis client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

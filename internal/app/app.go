package app

import (
	"hr-portal/internal/auth"
	"hr-portal/internal/config"
	"hr-portal/internal/middleware"
	"hr-portal/internal/shared/connection"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisMaxRetries = 3

// Dependencies are the connections shared by every module.
type Dependencies struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// BuildApp connects the infrastructure and mounts every module on router.
// The returned cleanup closes the connections it opened.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	// Redis only backs caching and idempotency, so the API starts without it.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, redisMaxRetries, logger)
		if err != nil {
			logger.Warn("continuing without redis", zap.Error(err))
			rdb = nil
		}
	}

	if err := Mount(router, cfg, Dependencies{DB: gormDB, Redis: rdb}, logger); err != nil {
		return nil, err
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return cleanup, nil
}

// Mount installs the global middleware chain and registers the modules.
func Mount(router *gin.Engine, cfg config.Config, deps Dependencies, logger *zap.Logger) error {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.AdminEmails)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.OptionalAuth(tokens))
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())

	return registerModules(router, cfg, deps, tokens)
}

package app

import (
	"github.com/nateesoft/management-hrm-system/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the API's infrastructure and mounts every module on
// router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L().Named("app.api")

	if err := cfg.RequireAPI(); err != nil {
		return nil, err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, zap.L()); err != nil {
		cleanup()
		return nil, err
	}

	logger.Info("api modules registered")
	return cleanup, nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	myPostgres "github.com/conceptlabs/auth-service/internal/adapters/db/postgres"
	myRedis "github.com/conceptlabs/auth-service/internal/adapters/db/redis"
	transport "github.com/conceptlabs/auth-service/internal/adapters/transport/http"
	appjwt "github.com/conceptlabs/auth-service/internal/app/auth/jwt"
	appsvc "github.com/conceptlabs/auth-service/internal/app/auth/service"
	"github.com/conceptlabs/auth-service/internal/infra/config"
	lg "github.com/conceptlabs/auth-service/internal/infra/log"
	"github.com/conceptlabs/auth-service/internal/infra/migrate"
	"github.com/conceptlabs/auth-service/internal/infra/server"
	"golang.org/x/sync/errgroup"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg.Must("").Fatal("failed to load config", zap.Error(err))
	}

	zapLog := lg.Must(cfg.LogLevel)
	defer zapLog.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	// The service fails open without redis: rate limiting and revocation
	// degrade but auth keeps working, so a dead redis is a warning only.
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisCli.Ping(pingCtx).Err(); err != nil {
		zapLog.Warn("redis unreachable, rate limiting and revocation degraded", zap.Error(err))
	}
	cancelPing()

	validate := validator.New()

	userRepo := myPostgres.NewPostgresUserRepo(db)
	tokenStore := myRedis.NewRedisTokenStore(redisCli)
	limiter := myRedis.NewRedisRateLimiter(redisCli)
	codec := appjwt.NewTokenCodec(cfg)

	svc := appsvc.New(userRepo, tokenStore, limiter, codec, cfg, validate, zapLog)
	handler := transport.NewHandler(svc, zapLog)
	router := transport.NewRouter(handler, cfg, zapLog)

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg.HTTPAddress, router, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}

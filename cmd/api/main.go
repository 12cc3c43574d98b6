package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/agenda-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-scheduler/internal/logger"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/routes"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
	"github.com/BruksfildServices01/agenda-scheduler/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if err := timezone.SetDefault(cfg.DefaultTimezone); err != nil {
		zlog.Fatal("invalid default timezone", zap.Error(err))
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := validators.Register(); err != nil {
		zlog.Fatal("failed to register validators", zap.Error(err))
	}

	// ------------------------------
	// Redis (optional)
	// ------------------------------
	var (
		rdb     *redis.Client
		limiter middleware.Limiter
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zlog.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()

		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMin, time.Minute)
		zlog.Info("redis enabled", zap.String("addr", cfg.RedisAddr))
	} else {
		limiter = middleware.NewLocalLimiter(cfg.RateLimitPerMin)
		zlog.Warn("REDIS_ADDR not set, using in-process rate limiter and no provider cache")
	}

	// ------------------------------
	// PIX (optional)
	// ------------------------------
	var gateway payment.Gateway
	if cfg.PixEnabled() {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.MercadoPagoNotificationURL)
		if err != nil {
			zlog.Fatal("failed to configure mercado pago", zap.Error(err))
		}
		gateway = mp
	}

	dispatcher := audit.NewDispatcher(audit.New(db), zlog.Named("audit"))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(zlog.Named("http")),
		middleware.Recovery(zlog),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     zlog,
		Cache:   infraRepo.NewProviderCache(rdb, zlog),
		Audit:   dispatcher,
		Limiter: limiter,
		Gateway: gateway,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()), zap.Bool("pix", gateway != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		zlog.Error("audit drain", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kinsman/brandsite/backend/go-services/handlers"
	"github.com/kinsman/brandsite/backend/go-services/internal/auth"
	"github.com/kinsman/brandsite/backend/go-services/internal/config"
	"github.com/kinsman/brandsite/backend/go-services/internal/contact"
	"github.com/kinsman/brandsite/backend/go-services/internal/database"
	"github.com/kinsman/brandsite/backend/go-services/internal/notify"
	"github.com/kinsman/brandsite/backend/go-services/internal/projects"
	"github.com/kinsman/brandsite/backend/go-services/internal/schemasource"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/kinsman/brandsite/backend/go-services/pkg/logger"
	"github.com/kinsman/brandsite/backend/go-services/pkg/metrics"
	"github.com/kinsman/brandsite/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s store=%s mongo=%v redis=%v auth=%v notify=%v",
		cfg.Server.Environment, cfg.Database.Backend, cfg.Database.URL != "", cfg.Redis.Host != "", cfg.AuthEnabled(), cfg.NotifyEnabled())
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	var st store.Store
	switch {
	case cfg.Database.Backend == "memory":
		st = store.NewMemory(cfg.Database.Name)
		logger.Warnf("using in-memory document store; data is lost on restart")
	case cfg.Database.URL != "":
		client, db, err := database.Open(ctx, cfg.Database.URL, cfg.Database.Name, cfg.Database.Timeout)
		if err != nil {
			logger.Errorf("document store unavailable, continuing without it: %v", err)
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			st = store.NewMongo(db)
			logger.Infof("connected to MongoDB database %q", db.Name())
		}
	default:
		logger.Warnf("DATABASE_URL not set; running without a document store")
	}
	if st != nil {
		st = store.WithMetrics(st)
	}

	var notifier contact.Notifier
	if cfg.NotifyEnabled() {
		ses, err := notify.NewSES(ctx, cfg.Notify.SESRegion, cfg.Notify.From, cfg.Notify.To)
		if err != nil {
			logger.Warnf("contact notifications disabled: %v", err)
		} else {
			notifier = ses
		}
	}

	verifier, err := auth.New(ctx, cfg.Auth.JWTSecret, cfg.Auth.OIDCIssuer, cfg.Auth.OIDCClientID)
	if err != nil {
		// refuse to expose an unguarded admin write when auth was asked for
		logger.Fatalf("failed to initialize token verifier: %v", err)
	}

	src, err := schemasource.New(cfg)
	if err != nil {
		logger.Warnf("schema object source unavailable, falling back to %s: %v", cfg.Schema.Path, err)
		src = schemasource.File{Path: cfg.Schema.Path}
	}

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		limiter = newLimiter(ctx, cfg)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	site := handlers.NewSiteHandler(cfg, st, contact.NewService(st, notifier), projects.NewService(st), src)
	site.Register(r, limiter, verifier)
	handlers.RegisterOps(r, st, startTime)
	handlers.RegisterSwagger(r)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handlers.WithCORS(r),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting site API on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// newLimiter builds the contact-form limiter, shared through Redis when configured
// and reachable.
func newLimiter(ctx context.Context, cfg *config.Config) gin.HandlerFunc {
	if !cfg.RateLimit.UseRedis || cfg.Redis.Host == "" {
		return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("redis %s:%s unreachable, using in-process rate limiter: %v", cfg.Redis.Host, cfg.Redis.Port, err)
		_ = client.Close()
		return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	logger.Infof("rate limiter backed by redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	return middleware.RedisRateLimitMiddleware(client, "contact", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/klasstra/klasstra-api/api/swagger"
	"github.com/klasstra/klasstra-api/internal/repository"
	"github.com/klasstra/klasstra-api/internal/router"
	"github.com/klasstra/klasstra-api/internal/service"
	"github.com/klasstra/klasstra-api/pkg/cache"
	"github.com/klasstra/klasstra-api/pkg/config"
	"github.com/klasstra/klasstra-api/pkg/database"
	"github.com/klasstra/klasstra-api/pkg/llm"
	"github.com/klasstra/klasstra-api/pkg/logger"
	"github.com/klasstra/klasstra-api/pkg/ratelimit"
	"github.com/klasstra/klasstra-api/pkg/storage"
)

// @title Klasstra API
// @version 1.0.0
// @description School announcements for teachers, class representatives and parents
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logr); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		return err
	}
	cfg.Upload.Dir = store.Dir()

	limiter, err := newLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		return err
	}

	var completer llm.Completer
	if client, err := llm.NewOpenAIClient(cfg.AI); err == nil {
		completer = client
	} else if !errors.Is(err, llm.ErrNotConfigured) {
		return err
	} else {
		logr.Warn("OPENAI_API_KEY not set, /ai/generate is disabled")
	}

	users := repository.NewUserRepository(db)
	classes := repository.NewClassRepository(db)
	children := repository.NewChildRepository(db)
	teacherClasses := repository.NewTeacherClassRepository(db)
	announcements := repository.NewAnnouncementRepository(db)
	audits := repository.NewAuditRepository(db)

	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Classes.CacheTTL, logr, cacheRepo.Enabled())

	engine := router.New(router.Dependencies{
		Config:  cfg,
		Logger:  logr,
		DB:      db,
		Metrics: metrics,
		Limiter: limiter,
		Auth: service.NewAuthService(users, validate, logr, service.AuthConfig{
			Secret:        cfg.JWT.Secret,
			Expiration:    cfg.JWT.Expiration,
			LiveRoleCheck: cfg.JWT.LiveRoleCheck,
		}),
		Users:         service.NewUserService(users, validate, logr),
		Classes:       service.NewClassService(classes, cacheSvc, validate, logr),
		Children:      service.NewChildService(children, classes, validate, logr),
		Announcements: service.NewAnnouncementService(announcements, users, classes, children, teacherClasses, validate, logr),
		Admin:         service.NewAdminService(users, classes, teacherClasses, validate, logr),
		Audit:         service.NewAuditService(audits, logr),
		Parents:       service.NewParentService(users, logr),
		Uploads:       service.NewUploadService(store, cfg.Upload.PublicBaseURL, logr),
		AI:            service.NewAIService(completer, metrics, validate, logr),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("rate_limit_backend", cfg.RateLimit.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLimiter(cfg config.RateLimitConfig, client *redis.Client) (*ratelimit.Limiter, error) {
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.Backend == config.RateLimitBackendRedis {
		if client == nil {
			return nil, errors.New("RATE_LIMIT_BACKEND=redis requires REDIS_ENABLED=true")
		}
		store = ratelimit.NewRedisStore(client)
	}
	return ratelimit.New(store, cfg.Limit, cfg.Window), nil
}

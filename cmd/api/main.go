package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bruinrecruit/recruitment-service/internal/api/http"
	"github.com/bruinrecruit/recruitment-service/internal/api/http/handlers"
	"github.com/bruinrecruit/recruitment-service/internal/auth"
	"github.com/bruinrecruit/recruitment-service/internal/cache"
	"github.com/bruinrecruit/recruitment-service/internal/config"
	"github.com/bruinrecruit/recruitment-service/internal/events"
	"github.com/bruinrecruit/recruitment-service/internal/observability"
	"github.com/bruinrecruit/recruitment-service/internal/persistence"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
	"github.com/bruinrecruit/recruitment-service/internal/repository/memory"
	"github.com/bruinrecruit/recruitment-service/internal/service"
	"github.com/bruinrecruit/recruitment-service/internal/worker"
	"github.com/bruinrecruit/recruitment-service/internal/workflow"
)

type repositories struct {
	users   repository.UserRepository
	seasons repository.SeasonRepository
	apps    repository.ApplicationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := newRepositories(pg)
	seasonCache := cache.NewSeasonCache(repos.seasons, redis.Client, cfg.Season.CacheTTL(), logger)

	if cfg.App.SeedDevData {
		if err := service.SeedDevData(ctx, repos.users, seasonCache, cfg.App.SeedPassword, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed development data", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, logger, cfg.Notification), metrics)

	authService := service.NewAuthService(cfg.Auth, repos.users, logger)
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		AppRepo:    repos.apps,
		SeasonRepo: seasonCache,
		Machine:    workflow.NewMachine(),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	seasonService := service.NewSeasonService(seasonCache, dispatcher, logger)

	if redis.Enabled() {
		refresher, err := worker.NewSeasonRefresher(cfg.Season.RefreshCron, seasonCache, logger)
		if err != nil {
			logger.Fatal("invalid season refresh schedule", zap.Error(err))
		}
		refresher.Start()
		defer refresher.Stop()
	}

	var limiterStorage fiber.Storage
	if store := cache.NewLimiterStorage(redis.Client); store != nil {
		limiterStorage = store
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:          cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Seasons:        handlers.NewSeasonsHandler(seasonService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), repos.users),
		AuthLimiter:    httptransport.NewAuthLimiter(cfg.RateLimit, limiterStorage),
		Metrics:        metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newRepositories uses Postgres when a pool exists and in-memory stores otherwise.
func newRepositories(pg *persistence.Postgres) repositories {
	if !pg.Enabled() {
		return repositories{
			users:   memory.NewUserRepository(),
			seasons: memory.NewSeasonRepository(),
			apps:    memory.NewApplicationRepository(),
		}
	}
	pool := pg.PoolHandle()
	return repositories{
		users:   repository.NewUserRepository(pool),
		seasons: repository.NewSeasonRepository(pool),
		apps:    repository.NewApplicationRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

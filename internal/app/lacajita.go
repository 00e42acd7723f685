package app

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"lacajita-admin/internal/cache"
	"lacajita-admin/internal/config"
	"lacajita-admin/internal/dashboard"
	"lacajita-admin/internal/export"
	"lacajita-admin/internal/idp"
	"lacajita-admin/internal/notifier"
	"lacajita-admin/internal/permission"
	"lacajita-admin/internal/repository"
	"lacajita-admin/internal/service"
)

func Run(cfg config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	// The repository, cache and notifier shut down only after the HTTP server
	// has drained, so in-flight requests keep their backends.
	delayedCtx, delayedCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	delayedWg.Add(1)
	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka)

	var grantCache permission.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisGrantCache(delayedCtx, logger, delayedWg, cfg.Redis)
		if err != nil {
			logger.Fatalw("failed to create redis cache", "error", err)
		}
		grantCache = redisCache
	}

	identity := idp.NewClient(logger, cfg.IdP, cfg.MasterAccountEmail)
	resolver := permission.NewResolver(logger, identity, grantCache, cfg.MasterAccountEmail)
	dash := dashboard.NewService(logger, identity, repo)
	exporter := export.NewExporter(logger)

	service.RunServices(ctx, logger, wg, cfg, repo, identity, resolver, dash, exporter, notif)

	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	delayedCancel()
	delayedWg.Wait()
}

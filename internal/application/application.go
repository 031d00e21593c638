package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"notion-config-tool/internal/config"
	"notion-config-tool/internal/domain/service/commodity"
	"notion-config-tool/internal/domain/service/history"
	"notion-config-tool/internal/domain/service/lottery"
	"notion-config-tool/internal/domain/service/workshop"
	"notion-config-tool/internal/infrastructure/filestore"
	"notion-config-tool/internal/infrastructure/notifier"
	"notion-config-tool/internal/infrastructure/notion"
	"notion-config-tool/internal/infrastructure/persistence"
	"notion-config-tool/internal/server"
	"notion-config-tool/internal/transport/bot"
	"notion-config-tool/internal/transport/bot/handler"
	"notion-config-tool/internal/worker"
	"notion-config-tool/pkg/application/connectors"
	"notion-config-tool/pkg/application/modules"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/logx"
	"notion-config-tool/pkg/middlewarex"
)

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run starts the HTTP API, the sync worker and the name refresher and
// blocks until ctx is cancelled or one of them fails.
func Run(ctx context.Context, cfg config.Config) error { //nolint:funlen
	redisConnector := &connectors.Redis{
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		Address:            cfg.Redis.Address,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	defer redisConnector.Close(ctx)

	redisClient, err := redisConnector.Client(ctx)
	if err != nil {
		return fmt.Errorf("redisConnector.Client: %w", err)
	}

	reporter := history.NewReporter()

	if cfg.Postgres.DSN != "" {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		defer pg.Close(ctx)

		db, err := pg.Client(ctx)
		if err != nil {
			return fmt.Errorf("pg.Client: %w", err)
		}

		reporter.WithRepository(persistence.NewSyncHistoryRepository(db))
	} else {
		logger(ctx).Warn("PG_DSN is empty, sync history is disabled")
	}

	if cfg.Bot.Enabled() {
		reportBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		reporter.WithNotifier(reportBot)
	}

	var source notion.Querier = notion.NewClient(
		cfg.Notion.Token,
		notion.WithBaseURL(cfg.Notion.BaseURL),
		notion.WithTimeout(cfg.Notion.Timeout),
		notion.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
	)

	if cfg.Notion.CacheTTL > 0 {
		source = notion.NewCache(source, redisClient, cfg.Notion.CacheTTL)
	}

	store, err := filestore.New(cfg.Project.Root)
	if err != nil {
		return fmt.Errorf("filestore.New: %w", err)
	}

	commodityService := commodity.NewService(source, store, cfg.Notion.CommodityDatabaseID).
		WithReporter(reporter)
	lotteryService := lottery.NewService(source, store, commodityService, lottery.Databases{
		Lottery:   cfg.Notion.LotteryDatabaseID,
		BoxConfig: cfg.Notion.BoxConfigDatabaseID,
	}).WithReporter(reporter)
	workshopService := workshop.NewService(source, store, workshop.DefaultRegistry(), cfg.Notion.WorkshopDatabaseID).
		WithReporter(reporter)

	refresher := worker.NewNameRefresher(cfg.Refresh.Interval).
		WithSource("commodity", commodityService.RefreshNames).
		WithSource("box", lotteryService.RefreshBoxNames)

	if err = refresher.Start(ctx); err != nil {
		return fmt.Errorf("refresher.Start: %w", err)
	}
	defer refresher.Stop()

	asynqClient := asynq.NewClientFromRedisClient(redisClient)
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger(ctx).Error("asynqClient.Close", logx.Error(err))
		}
	}()

	enqueuer := worker.NewEnqueuer(asynqClient)

	var tgBot *bot.Bot

	if cfg.Bot.CommandsEnabled() {
		commands := handler.New(workshopService, enqueuer, reporter, refresher)

		if tgBot, err = bot.New(ctx, cfg.Bot.Token, cfg.Bot.AdminIDs, commands); err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}
	}

	srv := server.NewServer(
		server.NewLotteryServer(lotteryService),
		server.NewCommodityServer(commodityService),
		server.NewWorkshopServer(workshopService),
		server.NewJobServer(enqueuer, reporter),
	)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, newHTTPServer(ctx, cfg, srv))
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g)
	modules.AsynqServer{
		RedisUsername:   cfg.Redis.Username,
		RedisPassword:   cfg.Redis.Password,
		RedisAddress:    cfg.Redis.Address,
		RedisDB:         cfg.Redis.DatabaseNumber,
		Concurrency:     cfg.Worker.Concurrency,
		ShutdownTimeout: cfg.Worker.ShutdownTimeout,
	}.Run(
		ctx,
		g,
		modules.AsynqQueues{worker.QueueSync: 1},
		worker.NewSyncHandler(lotteryService, commodityService, workshopService).Handlers()...,
	)

	if tgBot != nil {
		g.Go(func() error {
			return tgBot.Run(ctx)
		})
	}

	logger(ctx).Info("application started", slog.String("project-root", store.Root()))

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newHTTPServer(ctx context.Context, cfg config.Config, srv server.Server) *http.Server {
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.UserID,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)

	srv.RegisterRoutes(router)

	return &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}

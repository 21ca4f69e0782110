package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/config"
	"github.com/aliskhannn/auslan-bot/internal/delivery/telegram"
	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/infra/contentapi"
	"github.com/aliskhannn/auslan-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/auslan-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/auslan-bot/internal/infra/redis"
	"github.com/aliskhannn/auslan-bot/internal/logger"
	"github.com/aliskhannn/auslan-bot/internal/repository"
	"github.com/aliskhannn/auslan-bot/internal/service"
	"github.com/aliskhannn/auslan-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped", zap.Error(err))
	}

	logExit(ctx, lg)
}

func logExit(ctx context.Context, lg *zap.Logger) {
	if ctx.Err() != nil {
		lg.Info("shutdown signal received")
		return
	}
	lg.Info("update stream closed")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	var rdb *goredis.Client
	if cfg.Redis.URL != "" {
		rdb, err = redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
	}

	// Learned sets and learners.
	var (
		kv    service.KVStorage
		users service.UserRepository
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		kv = pgrepo.NewLearnedSetRepository(pool)
		users = pgrepo.NewUserRepository(pool)

	case config.StorageRedis:
		kv = redis.NewKVStore(rdb, cfg.Redis.KeyPrefix)
		users = repository.NewMemoryUsers()

	default:
		lg.Warn("learned sets are kept in memory and lost on restart")
		kv = repository.NewMemoryKV()
		users = repository.NewMemoryUsers()
	}
	lg.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	// Catalog source and cache.
	var source service.CatalogSource
	if cfg.ContentAPI.BaseURL != "" {
		source = contentapi.NewClient(cfg.ContentAPI.BaseURL, map[entities.ModuleKey]string{
			entities.ModuleLettersNumbers: cfg.ContentAPI.LettersPath,
			entities.ModuleBasicWords:     cfg.ContentAPI.WordsPath,
		}, cfg.ContentAPI.Timeout)
	} else {
		fc, err := repository.NewFileCatalog(cfg.Catalog.FallbackPath)
		if err != nil {
			return err
		}
		source = fc
	}

	var cache service.CatalogCache = storage.NewCatalogCache(cfg.Redis.CatalogTTL)
	if rdb != nil {
		cache = redis.NewCatalogCache(rdb, cfg.Redis.KeyPrefix, cfg.Redis.CatalogTTL, lg)
	}

	catalogService := service.NewCatalogService(source, cache, lg)
	if err := catalogService.Warm(ctx, entities.ModuleLettersNumbers, entities.ModuleBasicWords); err != nil {
		// Views degrade to a notice until the source recovers.
		lg.Warn("catalog warm-up failed", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		service.NewUserService(users),
		catalogService,
		service.NewProgressService(kv, lg, cfg.Progress.MaxCachedLearners),
		service.NewQuizFactory(nil),
		storage.NewQuizStorage(),
		storage.NewDeckStorage(),
		telegram.Options{
			QuizLengths:       cfg.Quiz.Lengths,
			DefaultQuizLength: cfg.Quiz.DefaultLength,
		},
	)

	return handler.Run(ctx)
}

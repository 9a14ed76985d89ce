package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/lingua-progress/internal/config"
	"github.com/aliskhannn/lingua-progress/internal/delivery/rest"
	"github.com/aliskhannn/lingua-progress/internal/delivery/telegram"
	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
	"github.com/aliskhannn/lingua-progress/internal/infra/postgres"
	"github.com/aliskhannn/lingua-progress/internal/infra/postgres/repository"
	"github.com/aliskhannn/lingua-progress/internal/infra/redis"
	"github.com/aliskhannn/lingua-progress/internal/logger"
	"github.com/aliskhannn/lingua-progress/internal/service"
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

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := entities.ParseTimezoneLocation(cfg.Progress.Timezone)
	if err != nil {
		return err
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	if cfg.DB.MigrateOnStart {
		if err := postgres.Migrate(dsn, lg); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	// Initialize repositories.
	progressRepo := repository.NewProgressRepository(pool)
	achievementRepo := repository.NewAchievementRepository(pool)
	unlockRepo := repository.NewUnlockRepository(pool)
	transactor := postgres.NewTransactor(pool)

	var lessons service.LessonCatalog = repository.NewLessonRepository(pool)
	if cfg.Redis.URL != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		lessons = redis.NewLessonCountCache(rdb, lessons, cfg.Redis.CacheTTL, lg)
		lg.Info("lesson count cache enabled", zap.Duration("ttl", cfg.Redis.CacheTTL))
	}

	// Initialize services.
	progressService := service.NewProgressService(progressRepo, lessons, service.ProgressOptions{
		Location:            loc,
		WordsPerVocabLesson: cfg.Progress.WordsPerVocabLesson,
	}, lg)
	achievementService := service.NewAchievementService(progressRepo, achievementRepo, unlockRepo, lg)
	catalogService := service.NewCatalogService(achievementRepo, unlockRepo, transactor, lg)

	g, ctx := errgroup.WithContext(ctx)

	// HTTP API.
	auth := rest.NewAuthenticator(cfg.JWTSecret, lg)
	handler := rest.NewHandler(progressService, achievementService, catalogService, lg)
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      rest.NewRouter(handler, auth, cfg.HTTP.AllowedOrigins),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g.Go(func() error {
		lg.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		lg.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	// Counter resync.
	if cfg.Maintenance.CounterResyncEnabled {
		maintenance := service.NewMaintenanceService(progressRepo, cfg.Maintenance.CounterResyncSchedule, lg)
		g.Go(func() error { return maintenance.Start(ctx) })
	}

	// Telegram bot.
	if cfg.TelegramAPIToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
		if err != nil {
			return err
		}
		bot.Debug = cfg.Env != "production"
		lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

		if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands...)); err != nil {
			lg.Warn("failed to set bot commands", zap.Error(err))
		}

		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates := bot.GetUpdatesChan(u)

		tg := telegram.NewHandler(bot, lg, progressService, achievementService)
		g.Go(func() error {
			err := tg.Run(ctx, updates)
			bot.StopReceivingUpdates()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		lg.Info("telegram bot disabled: TELEGRAM_API_TOKEN is empty")
	}

	if err := g.Wait(); err != nil {
		return err
	}

	lg.Info("shutdown complete")
	return nil
}

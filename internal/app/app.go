package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/auth"
	"github.com/Freeeeeet/courier_scheduler/internal/config"
	"github.com/Freeeeeet/courier_scheduler/internal/controller/httpapi"
	"github.com/Freeeeeet/courier_scheduler/internal/controller/telegram"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/notify"
	"github.com/Freeeeeet/courier_scheduler/internal/repository"
	"github.com/Freeeeeet/courier_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Connect открывает пул и проверяет соединение
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureWorkplaces справочник точек из базы; пустая база заполняется из YAML
func EnsureWorkplaces(ctx context.Context, repo *repository.WorkplaceRepository, path string, logger *zap.Logger) ([]model.Workplace, error) {
	workplaces, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(workplaces) > 0 {
		return workplaces, nil
	}

	workplaces, err = config.LoadWorkplaces(path)
	if err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, workplaces); err != nil {
		return nil, err
	}

	logger.Info("Workplaces seeded", zap.String("file", path), zap.Int("count", len(workplaces)))
	return workplaces, nil
}

// Serve собирает зависимости и обслуживает HTTP (и бота, если задан токен) до отмены ctx
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := Connect(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		migrator, err := NewMigrator(pool, logger)
		if err != nil {
			return err
		}
		err = migrator.Run(ctx)
		migrator.Close()
		if err != nil {
			return err
		}
	}

	profileRepo := repository.NewProfileRepository(pool)
	identityRepo := repository.NewIdentityRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	reserveRepo := repository.NewReserveRepository(pool, logger)
	workplaceRepo := repository.NewWorkplaceRepository(pool)

	workplaces, err := EnsureWorkplaces(ctx, workplaceRepo, cfg.WorkplacesFile, logger)
	if err != nil {
		return fmt.Errorf("load workplaces: %w", err)
	}

	var (
		notifier service.Notifier = notify.Nop{}
		tgBot    *bot.Bot
	)
	if cfg.TelegramToken != "" {
		tgBot, err = bot.New(cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
		notifier = notify.NewTelegram(tgBot, logger)
	} else {
		logger.Warn("TELEGRAM_TOKEN is not set, confirmation notifications are disabled")
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(identityRepo, profileRepo, tokens, logger)
	courierService := service.NewCourierService(profileRepo, identityRepo, tokens, logger)
	shiftService := service.NewShiftService(shiftRepo, workplaces, logger)
	reserveService := service.NewReserveService(reserveRepo, profileRepo, notifier, logger)
	boardService := service.NewBoardService(profileRepo, shiftRepo, reserveRepo, workplaces, logger)

	handler := httpapi.NewHandler(httpapi.Deps{
		Auth:       authService,
		Couriers:   courierService,
		Shifts:     shiftService,
		Reserves:   reserveService,
		Board:      boardService,
		Middleware: auth.NewMiddleware(authService, logger),
		Logger:     logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	server := NewServer(cfg.HTTPAddr, handler.Routes(), logger)
	g.Go(func() error {
		return server.Run(gctx)
	})

	if tgBot != nil {
		controller := telegram.NewBotController(tgBot, courierService, shiftService, tokens, logger)
		if err := controller.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands were not registered", zap.Error(err))
		}
		g.Go(func() error {
			controller.Start(gctx)
			return nil
		})
	}

	return g.Wait()
}

// CourierService для команд CLI без HTTP
func CourierService(pool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *service.CourierService {
	return service.NewCourierService(
		repository.NewProfileRepository(pool),
		repository.NewIdentityRepository(pool),
		auth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		logger,
	)
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/arena"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	resultRepo, closeStorage, err := initResultRepository(ctx, conf.Storage)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithWorkers(conf.Engine.Workers),
	}
	if conf.Engine.Seed != 0 {
		opts = append(opts, engine.WithSeed(conf.Engine.Seed))
	}

	session := engine.NewSession(opts...)
	view := console.New(os.Stdout, conf.Color)

	switch conf.Mode {
	case config.ModeArena:
		return runArena(ctx, logger, conf, session, resultRepo, view)
	default:
		return runPlay(ctx, logger, conf, session, resultRepo, view)
	}
}

func runPlay(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
	session *engine.Session,
	resultRepo repository.ResultRepository,
	view *console.View,
) error {
	humanMark, err := entity.ParseMark(conf.HumanMark)
	if err != nil {
		return fmt.Errorf("invalid human mark: %w", err)
	}

	human := service.NewHumanPlayer(humanMark, os.Stdin, view)
	bot := service.NewBotPlayer(logger, humanMark.Other(), session, view)

	manager := usecase.NewGameManager(logger, resultRepo, view)
	if _, err = manager.Play(ctx, human, bot); err != nil {
		return fmt.Errorf("game stopped: %w", err)
	}

	return nil
}

func runArena(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
	session *engine.Session,
	resultRepo repository.ResultRepository,
	view *console.View,
) error {
	// games run concurrently, so only the summary reaches the terminal
	manager := usecase.NewGameManager(logger, resultRepo, console.Discard())

	seed := conf.Engine.Seed
	if seed == 0 {
		seed = int64(os.Getpid())
	}

	runner := arena.New(logger, manager, session, arena.Config{
		Games:   conf.Arena.Games,
		Workers: conf.Arena.Workers,
		Seed:    seed,
	})

	stats, err := runner.Run(ctx)
	view.Summary(stats)
	if err != nil {
		return err
	}

	if resultRepo == nil {
		return nil
	}

	stored, err := resultRepo.Stats(ctx)
	if err != nil {
		return fmt.Errorf("could not read stored results: %w", err)
	}

	view.Summary(stored)

	return nil
}

// initResultRepository returns a nil repository for storage type "none".
func initResultRepository(ctx context.Context, conf config.Storage) (repository.ResultRepository, func() error, error) {
	noop := func() error { return nil }

	switch conf.Type {
	case config.StorageRedis:
		client, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, noop, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisResultRepository(client), client.Close, nil
	case config.StorageSQLite:
		db, err := storage.NewSQLite(ctx, conf.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = repository.InitSQLiteResults(ctx, db); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("could not prepare sqlite storage: %w", err)
		}

		return repository.NewSQLiteResultRepository(db), db.Close, nil
	default:
		return nil, noop, nil
	}
}


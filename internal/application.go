package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/laststep/internal/apperror"
	"github.com/rocketscienceinc/laststep/internal/config"
	"github.com/rocketscienceinc/laststep/internal/entity"
	"github.com/rocketscienceinc/laststep/internal/repository"
	"github.com/rocketscienceinc/laststep/internal/repository/storage"
	"github.com/rocketscienceinc/laststep/internal/transport/terminal"
	"github.com/rocketscienceinc/laststep/internal/usecase"
)

const summaryTimeout = 2 * time.Second

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, closeResults, err := initResults(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeResults()

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("Starting round", "player", conf.Player, "seed", seed)

	session := entity.NewSession(rand.New(rand.NewSource(seed))) //nolint: gosec // game randomness

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not create terminal screen: %w", err)
	}

	view := terminal.New(logger, screen, conf.FrameRate)
	gameManager := usecase.NewGameManager(logger, session, view, results, conf.Player, time.Now)

	if err = view.Run(ctx, gameManager); err != nil {
		return err
	}

	log.Info("Game ended")

	return printSummary(ctx, results, conf.Leaderboard.Size)
}

// initResults - picks the leaderboard backend. Redis is only dialled when enabled.
func initResults(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.ResultRepository, func(), error) {
	if !conf.Leaderboard.Enabled {
		log.Info("Leaderboard kept in memory")
		return repository.NewMemoryResultRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, apperror.ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Leaderboard stored in redis", "addr", redisAddrString)

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewResultRepository(redisStorage.Connection), closeFn, nil
}

func printSummary(ctx context.Context, results repository.ResultRepository, size int) error {
	if size <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), summaryTimeout)
	defer cancel()

	top, err := results.Top(ctx, size)
	if err != nil {
		return fmt.Errorf("could not load leaderboard: %w", err)
	}

	return terminal.PrintLeaderboard(os.Stdout, top)
}

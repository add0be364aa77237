package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
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

	mode, opponent, err := GameMode(conf.Mode)
	if err != nil {
		return err
	}

	difficulty, err := minimax.ParseDifficulty(conf.Difficulty)
	if err != nil {
		return fmt.Errorf("invalid difficulty: %w", err)
	}

	var dataset naivebayes.Dataset
	if conf.NeedsDataset() {
		if dataset, err = naivebayes.LoadFile(conf.Dataset.Path); err != nil {
			return fmt.Errorf("could not load dataset: %w", err)
		}
		log.Info("dataset loaded", "path", conf.Dataset.Path, "rows", len(dataset), "positives", dataset.Positives())
	}

	var modelRepo repository.ModelRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		modelRepo = repository.NewModelRepository(redisStorage, conf.Redis.TTL)
	}

	gameManager := usecase.NewGameManager(logger, modelRepo, dataset, usecase.Settings{
		Difficulty:       difficulty,
		TrainingFraction: conf.Dataset.TrainingFraction,
		Seed:             conf.Dataset.Seed,
	})

	server := console.New(logger, gameManager, os.Stdout)
	if err = server.Start(ctx, mode, opponent, os.Stdin); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}

// GameMode maps a configured mode name to the controller mode and the opponent seated in it.
func GameMode(name string) (tictactoe.Mode, entity.PlayerKind, error) {
	switch name {
	case config.ModeLocal:
		return tictactoe.ModeLocal, entity.Human, nil
	case config.ModeMinimax:
		return tictactoe.ModeSinglePlayer, entity.AutomatedMinimax, nil
	case config.ModeNaiveBayes:
		return tictactoe.ModeSinglePlayer, entity.AutomatedNaiveBayes, nil
	case config.ModeRandom:
		return tictactoe.ModeSinglePlayer, entity.AutomatedRandom, nil
	case config.ModeSelfPlay:
		return tictactoe.ModeSelfPlay, entity.AutomatedMinimax, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", config.ErrInvalidMode, name)
	}
}

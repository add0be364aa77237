package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type modelRepo interface {
	Save(ctx context.Context, key string, snapshot repository.ModelSnapshot) error
	Get(ctx context.Context, key string) (repository.ModelSnapshot, error)
}

// Settings tune the automated opponents. A zero Seed trains with a time based seed and skips the cache.
type Settings struct {
	Difficulty       minimax.Difficulty
	TrainingFraction float64
	Seed             int64
}

// GameManager keeps the running games by session id and the shared naive Bayes model.
type GameManager struct {
	logger    *slog.Logger
	modelRepo modelRepo
	dataset   naivebayes.Dataset
	settings  Settings

	mu     sync.Mutex
	games  map[string]*tictactoe.GameController
	model  *naivebayes.Model
	matrix naivebayes.ConfusionMatrix
}

// NewGameManager accepts a nil modelRepo, which disables the model cache.
func NewGameManager(logger *slog.Logger, modelRepo modelRepo, dataset naivebayes.Dataset, settings Settings) *GameManager {
	return &GameManager{
		logger: logger,

		modelRepo: modelRepo,
		dataset:   dataset,
		settings:  settings,
		games:     make(map[string]*tictactoe.GameController),
	}
}

// TrainModel trains the classifier, or loads it from the cache when a seed is fixed.
func (that *GameManager) TrainModel(ctx context.Context) (naivebayes.Model, naivebayes.ConfusionMatrix, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.trainModel(ctx); err != nil {
		return naivebayes.Model{}, naivebayes.ConfusionMatrix{}, err
	}

	return *that.model, that.matrix, nil
}

func (that *GameManager) trainModel(ctx context.Context) error {
	log := that.logger.With("method", "trainModel")

	seed := that.settings.Seed
	useCache := that.modelRepo != nil && seed != 0
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	key := that.dataset.CacheKey(seed, that.settings.TrainingFraction)
	if useCache {
		snapshot, err := that.modelRepo.Get(ctx, key)
		switch {
		case err == nil:
			that.model, that.matrix = &snapshot.Model, snapshot.ConfusionMatrix
			log.InfoContext(ctx, "model loaded from cache", "key", key, "accuracy", that.matrix.Accuracy)

			return nil
		case !errors.Is(err, repository.ErrModelNotFound):
			log.WarnContext(ctx, "failed to read cached model", "key", key, "error", err)
		}
	}

	classifier := naivebayes.NewClassifier(that.dataset, seed)
	if err := classifier.Train(that.settings.TrainingFraction); err != nil {
		return fmt.Errorf("failed to train naive bayes: %w", err)
	}

	model := classifier.Model()
	that.model, that.matrix = &model, classifier.ConfusionMatrix()
	log.InfoContext(ctx, "model trained",
		"rows", len(that.dataset),
		"training", model.TrainingCount,
		"accuracy", that.matrix.Accuracy,
		"probability_error", that.matrix.ProbabilityError,
	)

	if useCache {
		snapshot := repository.ModelSnapshot{Model: model, ConfusionMatrix: that.matrix}
		if err := that.modelRepo.Save(ctx, key, snapshot); err != nil {
			log.WarnContext(ctx, "failed to cache model", "key", key, "error", err)
		}
	}

	return nil
}

func (that *GameManager) bots(ctx context.Context, opponent entity.PlayerKind) (map[entity.PlayerKind]tictactoe.Bot, error) {
	bots := map[entity.PlayerKind]tictactoe.Bot{
		entity.AutomatedMinimax: service.NewMinimaxBot(that.settings.Difficulty),
	}

	switch opponent {
	case entity.AutomatedRandom:
		bots[entity.AutomatedRandom] = service.NewRandomBot(time.Now().UnixNano())
	case entity.AutomatedNaiveBayes:
		if that.model == nil {
			if err := that.trainModel(ctx); err != nil {
				return nil, err
			}
		}
		bots[entity.AutomatedNaiveBayes] = service.NewNaiveBayesBot(*that.model)
	}

	return bots, nil
}

// StartGame registers a new game under a fresh session id.
func (that *GameManager) StartGame(ctx context.Context, mode tictactoe.Mode, opponent entity.PlayerKind) (string, *tictactoe.GameController, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	bots, err := that.bots(ctx, opponent)
	if err != nil {
		return "", nil, fmt.Errorf("failed to prepare bots: %w", err)
	}

	controller := tictactoe.NewGameController(that.logger, bots)
	if err = controller.StartGame(mode, opponent); err != nil {
		return "", nil, fmt.Errorf("failed to start game: %w", err)
	}

	id := uuid.New().String()
	that.games[id] = controller
	that.logger.InfoContext(ctx, "game started", "id", id, "mode", mode, "opponent", opponent)

	return id, controller, nil
}

// MakeTurn advances game id with the human move, if any.
func (that *GameManager) MakeTurn(ctx context.Context, id string, move *entity.Move) (*tictactoe.GameController, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.game(id)
	if err != nil {
		return nil, err
	}

	if err = controller.AdvanceTurn(move); err != nil {
		return controller, fmt.Errorf("failed make turn: %w", err)
	}

	if controller.State() == tictactoe.GameOver {
		that.logger.InfoContext(ctx, "game finished", "id", id, "draw", controller.IsDraw())
	}

	return controller, nil
}

func (that *GameManager) Restart(ctx context.Context, id string) (*tictactoe.GameController, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.game(id)
	if err != nil {
		return nil, err
	}

	if err = controller.Reset(); err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	that.logger.DebugContext(ctx, "game restarted", "id", id)

	return controller, nil
}

func (that *GameManager) Game(id string) (*tictactoe.GameController, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game(id)
}

func (that *GameManager) EndGame(id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.game(id); err != nil {
		return err
	}

	delete(that.games, id)

	return nil
}

// ConfusionMatrix returns the evaluation of the trained model.
func (that *GameManager) ConfusionMatrix() (naivebayes.ConfusionMatrix, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.model == nil {
		return naivebayes.ConfusionMatrix{}, apperror.ErrModelNotTrained
	}

	return that.matrix, nil
}

func (that *GameManager) game(id string) (*tictactoe.GameController, error) {
	controller, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return controller, nil
}

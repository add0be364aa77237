package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

const rows = `x,x,x,x,o,o,x,o,o,positive
x,x,x,x,o,o,o,x,o,positive
x,x,x,b,o,b,o,b,b,positive
o,x,x,b,o,x,x,o,o,negative
x,o,x,x,o,o,o,x,x,negative
o,o,o,x,x,b,x,b,b,negative
`

type mockModelRepo struct {
	mock.Mock
}

func (that *mockModelRepo) Save(ctx context.Context, key string, snapshot repository.ModelSnapshot) error {
	args := that.Called(ctx, key, snapshot)
	return args.Error(0)
}

func (that *mockModelRepo) Get(ctx context.Context, key string) (repository.ModelSnapshot, error) {
	args := that.Called(ctx, key)
	return args.Get(0).(repository.ModelSnapshot), args.Error(1)
}

func newMockModelRepo(t *testing.T) *mockModelRepo {
	t.Helper()

	repo := &mockModelRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func testDataset(t *testing.T) naivebayes.Dataset {
	t.Helper()

	dataset, err := naivebayes.Load(strings.NewReader(rows))
	require.NoError(t, err)

	return dataset
}

func newManager(t *testing.T, repo modelRepo, seed int64) *GameManager {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := Settings{Difficulty: minimax.Hard, TrainingFraction: 0.5, Seed: seed}

	return NewGameManager(logger, repo, testDataset(t), settings)
}

func TestGameManager_TrainModel(t *testing.T) {
	ctx := context.Background()

	t.Run("Trains without a repository", func(t *testing.T) {
		// Given: a manager without a model cache
		manager := newManager(t, nil, 0)

		// When: the model is trained
		model, matrix, err := manager.TrainModel(ctx)

		// Then: half of the rows train it and the rest evaluate it
		require.NoError(t, err)
		assert.Equal(t, 3, model.TrainingCount)
		assert.Equal(t, 3, matrix.Samples)
	})

	t.Run("Stores the model after a cache miss", func(t *testing.T) {
		// Given: an empty cache
		repo := newMockModelRepo(t)
		manager := newManager(t, repo, 42)
		key := testDataset(t).CacheKey(42, 0.5)

		repo.On("Get", mock.Anything, key).
			Return(repository.ModelSnapshot{}, repository.ErrModelNotFound).
			Once()
		repo.On("Save", mock.Anything, key, mock.AnythingOfType("repository.ModelSnapshot")).
			Return(nil).
			Once()

		// When: the model is trained
		model, _, err := manager.TrainModel(ctx)

		// Then: the trained model is cached
		require.NoError(t, err)
		assert.Equal(t, 3, model.TrainingCount)
	})

	t.Run("Uses a cached model", func(t *testing.T) {
		// Given: a cache holding a snapshot
		repo := newMockModelRepo(t)
		manager := newManager(t, repo, 42)
		cached := repository.ModelSnapshot{
			Model:           naivebayes.Model{PriorPositive: 1, TrainingCount: 7},
			ConfusionMatrix: naivebayes.ConfusionMatrix{Accuracy: 0.5, Samples: 2},
		}

		repo.On("Get", mock.Anything, mock.AnythingOfType("string")).
			Return(cached, nil).
			Once()

		// When: the model is trained
		model, matrix, err := manager.TrainModel(ctx)

		// Then: the snapshot is returned and nothing is saved
		require.NoError(t, err)
		assert.Equal(t, cached.Model, model)
		assert.Equal(t, cached.ConfusionMatrix, matrix)
	})

	t.Run("Cache failures do not stop training", func(t *testing.T) {
		repo := newMockModelRepo(t)
		manager := newManager(t, repo, 42)

		repo.On("Get", mock.Anything, mock.Anything).
			Return(repository.ModelSnapshot{}, errRedisDown).
			Once()
		repo.On("Save", mock.Anything, mock.Anything, mock.Anything).
			Return(errRedisDown).
			Once()

		model, _, err := manager.TrainModel(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, model.TrainingCount)
	})

	t.Run("A time based seed skips the cache", func(t *testing.T) {
		repo := newMockModelRepo(t)
		manager := newManager(t, repo, 0)

		_, _, err := manager.TrainModel(ctx)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("An empty dataset fails", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := NewGameManager(logger, nil, nil, Settings{TrainingFraction: 0.8})

		_, _, err := manager.TrainModel(ctx)

		require.ErrorIs(t, err, naivebayes.ErrEmptyDataset)
	})
}

func TestGameManager_StartGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Naive Bayes opponent trains lazily", func(t *testing.T) {
		// Given: an untrained manager
		manager := newManager(t, nil, 1)
		_, err := manager.ConfusionMatrix()
		require.ErrorIs(t, err, apperror.ErrModelNotTrained)

		// When: a game against naive Bayes starts
		id, controller, err := manager.StartGame(ctx, tictactoe.ModeSinglePlayer, entity.AutomatedNaiveBayes)

		// Then: the game is registered and the model is available
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, entity.AutomatedNaiveBayes, controller.Players()[1].Kind)

		_, err = manager.ConfusionMatrix()
		require.NoError(t, err)

		registered, err := manager.Game(id)
		require.NoError(t, err)
		assert.Same(t, controller, registered)
	})

	t.Run("Self-play finishes before returning", func(t *testing.T) {
		manager := newManager(t, nil, 1)

		_, controller, err := manager.StartGame(ctx, tictactoe.ModeSelfPlay, entity.AutomatedMinimax)

		require.NoError(t, err)
		assert.True(t, controller.IsDraw())
	})

	t.Run("Random opponent", func(t *testing.T) {
		manager := newManager(t, nil, 1)

		id, _, err := manager.StartGame(ctx, tictactoe.ModeSinglePlayer, entity.AutomatedRandom)
		require.NoError(t, err)

		controller, err := manager.MakeTurn(ctx, id, &entity.Move{Row: 1, Column: 1})

		require.NoError(t, err)
		board := controller.Board()
		assert.Len(t, board.EmptyCells(), entity.Size-2)
	})

	t.Run("Naive Bayes self-play is rejected", func(t *testing.T) {
		manager := newManager(t, nil, 1)

		_, _, err := manager.StartGame(ctx, tictactoe.ModeSelfPlay, entity.AutomatedNaiveBayes)

		require.ErrorIs(t, err, apperror.ErrUnknownOpponent)
		assert.Empty(t, manager.games)
	})

	t.Run("Unknown mode is not registered", func(t *testing.T) {
		manager := newManager(t, nil, 1)

		_, _, err := manager.StartGame(ctx, tictactoe.Mode(9), entity.AutomatedMinimax)

		require.ErrorIs(t, err, apperror.ErrUnknownMode)
		assert.Empty(t, manager.games)
	})
}

func TestGameManager_Sessions(t *testing.T) {
	ctx := context.Background()

	t.Run("MakeTurn applies the human move and the reply", func(t *testing.T) {
		// Given: a game against minimax
		manager := newManager(t, nil, 1)
		id, _, err := manager.StartGame(ctx, tictactoe.ModeSinglePlayer, entity.AutomatedMinimax)
		require.NoError(t, err)

		// When: the human takes a corner
		controller, err := manager.MakeTurn(ctx, id, &entity.Move{Row: 0, Column: 0})

		// Then: minimax answers in the centre
		require.NoError(t, err)
		board := controller.Board()
		assert.Equal(t, entity.MarkA, board.Get(entity.Move{Row: 1, Column: 1}))
		assert.Equal(t, entity.PlayerOne, controller.CurrentPlayer().Index)
	})

	t.Run("MakeTurn wraps controller errors", func(t *testing.T) {
		manager := newManager(t, nil, 1)
		id, _, err := manager.StartGame(ctx, tictactoe.ModeLocal, entity.Human)
		require.NoError(t, err)

		_, err = manager.MakeTurn(ctx, id, nil)

		require.ErrorIs(t, err, apperror.ErrMoveRequired)
	})

	t.Run("Restart clears the board", func(t *testing.T) {
		manager := newManager(t, nil, 1)
		id, _, err := manager.StartGame(ctx, tictactoe.ModeLocal, entity.Human)
		require.NoError(t, err)
		_, err = manager.MakeTurn(ctx, id, &entity.Move{Row: 2, Column: 2})
		require.NoError(t, err)

		controller, err := manager.Restart(ctx, id)

		require.NoError(t, err)
		assert.Empty(t, controller.History())
	})

	t.Run("Unknown ids", func(t *testing.T) {
		manager := newManager(t, nil, 1)

		_, err := manager.MakeTurn(ctx, "missing", nil)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		_, err = manager.Restart(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		_, err = manager.Game("missing")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		require.ErrorIs(t, manager.EndGame("missing"), apperror.ErrGameNotFound)
	})

	t.Run("EndGame forgets the session", func(t *testing.T) {
		manager := newManager(t, nil, 1)
		id, _, err := manager.StartGame(ctx, tictactoe.ModeLocal, entity.Human)
		require.NoError(t, err)

		require.NoError(t, manager.EndGame(id))

		_, err = manager.Game(id)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

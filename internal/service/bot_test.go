package service

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimaxBot_ChooseMove(t *testing.T) {
	board := entity.BoardFromCells([entity.Size]entity.Cell{
		entity.MarkA, entity.MarkB, entity.MarkB,
		entity.MarkA, entity.Empty, entity.Empty,
		entity.Empty, entity.Empty, entity.Empty,
	})

	t.Run("Completes a winning line", func(t *testing.T) {
		// Given: mark A has two in the left column and a one ply search
		bot := NewMinimaxBot(minimax.Medium)

		// When: the bot chooses for mark A
		move, err := bot.ChooseMove(board, entity.MarkA)

		// Then: the column is completed
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Column: 0}, move)
	})

	t.Run("Full depth picks a forced win", func(t *testing.T) {
		// Given: the same board, where both the column and the centre fork win
		bot := NewMinimaxBot(minimax.Hard)

		// When: the bot chooses for mark A
		move, err := bot.ChooseMove(board, entity.MarkA)
		require.NoError(t, err)

		// Then: the chosen move still wins against the best defence
		var score int
		require.NoError(t, board.Try(move, entity.MarkA, func() {
			score = minimax.Search(&board, entity.MarkA, entity.MarkB, false, 0, minimax.HardDepth, -1000, 1000)
		}))
		assert.Equal(t, minimax.WinScore, score)
	})

	t.Run("Wraps errors from the search", func(t *testing.T) {
		var board entity.Board
		board.Reset(entity.MarkA)

		_, err := NewMinimaxBot(minimax.Easy).ChooseMove(board, entity.MarkB)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}

func TestNaiveBayesBot_ChooseMove(t *testing.T) {
	// Given: a model learned from a single positive row
	model := naivebayes.Learn(naivebayes.Dataset{
		{Cells: [entity.Size]entity.Cell{
			entity.MarkA, entity.MarkB, entity.Empty,
			entity.Empty, entity.Empty, entity.Empty,
			entity.Empty, entity.Empty, entity.Empty,
		}, Label: naivebayes.Positive},
	})
	board := entity.BoardFromCells([entity.Size]entity.Cell{
		entity.Empty, entity.MarkB, entity.Empty,
		entity.Empty, entity.Empty, entity.Empty,
		entity.Empty, entity.Empty, entity.Empty,
	})

	// When: the bot chooses for mark A
	move, err := NewNaiveBayesBot(model).ChooseMove(board, entity.MarkA)

	// Then: only the cell matching the learned row keeps a non-zero score
	require.NoError(t, err)
	assert.Equal(t, entity.Move{Row: 0, Column: 0}, move)
}

func TestRandomBot_ChooseMove(t *testing.T) {
	t.Run("Always picks an empty cell", func(t *testing.T) {
		bot := NewRandomBot(11)
		board := entity.BoardFromCells([entity.Size]entity.Cell{
			entity.MarkA, entity.MarkB, entity.MarkA,
			entity.Empty, entity.MarkB, entity.Empty,
			entity.MarkB, entity.MarkA, entity.MarkB,
		})

		for i := 0; i < 20; i++ {
			move, err := bot.ChooseMove(board, entity.MarkA)

			require.NoError(t, err)
			assert.Equal(t, entity.Empty, board.Get(move))
		}
	})

	t.Run("No moves on a full board", func(t *testing.T) {
		var board entity.Board
		board.Reset(entity.MarkB)

		_, err := NewRandomBot(1).ChooseMove(board, entity.MarkA)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}

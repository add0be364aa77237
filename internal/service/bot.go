package service

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
)

// BotService picks a move for an automated player. It never mutates the given board.
type BotService interface {
	ChooseMove(board entity.Board, mark entity.Cell) (entity.Move, error)
}

type minimaxBot struct {
	difficulty minimax.Difficulty
}

func NewMinimaxBot(difficulty minimax.Difficulty) BotService {
	return &minimaxBot{difficulty: difficulty}
}

func (that *minimaxBot) ChooseMove(board entity.Board, mark entity.Cell) (entity.Move, error) {
	move, err := minimax.ChooseMove(board, mark, that.difficulty)
	if err != nil {
		return entity.Move{}, fmt.Errorf("minimax failed to choose a move: %w", err)
	}

	return move, nil
}

type naiveBayesBot struct {
	model naivebayes.Model
}

func NewNaiveBayesBot(model naivebayes.Model) BotService {
	return &naiveBayesBot{model: model}
}

func (that *naiveBayesBot) ChooseMove(board entity.Board, mark entity.Cell) (entity.Move, error) {
	move, err := naivebayes.ChooseMove(&that.model, board, mark)
	if err != nil {
		return entity.Move{}, fmt.Errorf("naive bayes failed to choose a move: %w", err)
	}

	return move, nil
}

type randomBot struct {
	rng *rand.Rand
}

// NewRandomBot plays a uniformly random empty cell.
func NewRandomBot(seed int64) BotService {
	return &randomBot{rng: rand.New(rand.NewSource(seed))} //nolint: gosec // it's ok
}

func (that *randomBot) ChooseMove(board entity.Board, _ entity.Cell) (entity.Move, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}

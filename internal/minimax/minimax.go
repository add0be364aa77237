package minimax

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	WinScore  = 1
	LossScore = -1
	DrawScore = 0

	// window bounds, outside the reachable score range
	lowerBound = -1000
	upperBound = 1000
)

// Stats counts the work done by one move selection.
type Stats struct {
	Nodes   int
	Cutoffs int
}

// Search returns the minimax value of board for maxMark, pruned with alpha-beta.
// The board is restored before Search returns.
func Search(board *entity.Board, maxMark, minMark entity.Cell, maximizing bool, depth, maxDepth, alpha, beta int) int {
	s := searcher{board: board, maxMark: maxMark, minMark: minMark, maxDepth: maxDepth}
	return s.search(maximizing, depth, alpha, beta)
}

type searcher struct {
	board    *entity.Board
	maxMark  entity.Cell
	minMark  entity.Cell
	maxDepth int
	stats    Stats
}

func (that *searcher) search(maximizing bool, depth, alpha, beta int) int {
	that.stats.Nodes++

	if record, ok := that.board.CheckWin(); ok {
		switch record.Mark {
		case that.maxMark:
			return WinScore
		case that.minMark:
			return LossScore
		}
	}

	// depth cutoff is scored as neutral even though the outcome is unresolved
	if that.board.IsFull() || depth == that.maxDepth {
		return DrawScore
	}

	best, mark := upperBound, that.minMark
	if maximizing {
		best, mark = lowerBound, that.maxMark
	}

	for _, move := range that.board.EmptyCells() {
		var score int
		_ = that.board.Try(move, mark, func() {
			score = that.search(!maximizing, depth+1, alpha, beta)
		})

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}

		if beta <= alpha {
			that.stats.Cutoffs++
			break
		}
	}

	return best
}

// ChooseMove picks the move for mark with the strictly greatest search value.
// Ties keep the earliest empty cell in row-major order.
func ChooseMove(board entity.Board, mark entity.Cell, difficulty Difficulty) (entity.Move, error) {
	move, _, err := ChooseMoveWithStats(board, mark, difficulty)
	return move, err
}

// ChooseMoveWithStats is ChooseMove that also reports the search effort.
func ChooseMoveWithStats(board entity.Board, mark entity.Cell, difficulty Difficulty) (entity.Move, Stats, error) {
	if !mark.IsMark() {
		return entity.Move{}, Stats{}, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	candidates := board.EmptyCells()
	if len(candidates) == 0 {
		return entity.Move{}, Stats{}, apperror.ErrNoAvailableMoves
	}

	s := searcher{
		board:    &board,
		maxMark:  mark,
		minMark:  mark.Opponent(),
		maxDepth: difficulty.MaxDepth(),
	}

	bestMove, bestScore := candidates[0], lowerBound
	for _, move := range candidates {
		var score int
		_ = board.Try(move, mark, func() {
			// the candidate already used the maximizing ply
			score = s.search(false, 0, lowerBound, upperBound)
		})

		if score > bestScore {
			bestMove, bestScore = move, score
		}
	}

	return bestMove, s.stats, nil
}

package naivebayes

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// outranks reports whether candidate beats best. Any Positive prediction beats every Negative one.
func outranks(candidate, best Prediction) bool {
	if candidate.Label != best.Label {
		return candidate.Label == Positive
	}

	return candidate.Score > best.Score
}

// ChooseMove places mark on each empty cell of a scratch board and keeps the best prediction.
// Ties keep the earliest cell in row-major order.
func ChooseMove(model *Model, board entity.Board, mark entity.Cell) (entity.Move, error) {
	if !mark.IsMark() {
		return entity.Move{}, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	var (
		bestMove       entity.Move
		bestPrediction Prediction
		found          bool
	)

	for _, move := range board.EmptyCells() {
		var prediction Prediction
		_ = board.Try(move, mark, func() {
			prediction = model.Predict(board.Cells())
		})

		if !found || outranks(prediction, bestPrediction) {
			bestMove, bestPrediction, found = move, prediction, true
		}
	}

	if !found {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	return bestMove, nil
}

package console

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func (that *Server) printGame() {
	board := that.game.Board()
	that.printf("\n%s\n", board.String())
	that.println(status(that.game))
}

// printReplay shows every position of a finished game.
func (that *Server) printReplay() {
	var board entity.Board
	players := that.game.Players()

	for turn, move := range that.game.History() {
		player := players[turn%len(players)]
		_ = board.Place(move, player.Mark)
		that.printf("%s (%s) plays (%d, %d)\n%s\n", player.Index, player.Mark, move.Row, move.Column, board.String())
	}

	that.println(status(that.game))
}

func (that *Server) printMatrix(matrix naivebayes.ConfusionMatrix) {
	that.printf("Test samples:      %d\n", matrix.Samples)
	that.printf("True positive:     %.4f (%d)\n", matrix.TruePositive, matrix.Counts.TruePositive)
	that.printf("False positive:    %.4f (%d)\n", matrix.FalsePositive, matrix.Counts.FalsePositive)
	that.printf("True negative:     %.4f (%d)\n", matrix.TrueNegative, matrix.Counts.TrueNegative)
	that.printf("False negative:    %.4f (%d)\n", matrix.FalseNegative, matrix.Counts.FalseNegative)
	that.printf("Probability error: %.4f\n", matrix.ProbabilityError)
	that.printf("Accuracy:          %.4f\n", matrix.Accuracy)
}

func status(game *tictactoe.GameController) string {
	if game.IsDraw() {
		return "Draw!"
	}

	if winner, ok := game.Winner(); ok {
		record, _ := game.WinRecord()
		line := fmt.Sprintf("(%d,%d) - (%d,%d)", record.Start.Row, record.Start.Column, record.End.Row, record.End.Column)

		if game.Mode() == tictactoe.ModeSinglePlayer && winner.Kind.IsAutomated() {
			return "AI wins! Line " + line
		}

		return fmt.Sprintf("%s wins! Line %s", winner.Index, line)
	}

	player := game.CurrentPlayer()

	return fmt.Sprintf("%s (%s) to move", player.Index, player.Mark)
}

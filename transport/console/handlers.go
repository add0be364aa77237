package console

import (
	"context"
	"errors"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const helpText = `Commands:
  <row> <col>  place your mark, rows and columns count from 0
  restart      start a new game in the same mode
  stats        show the naive Bayes confusion matrix
  board        show the board
  help         show this help
  quit         leave the game`

func (that *Server) handleMove(ctx context.Context, fields []string) error {
	log := that.logger.With("method", "handleMove")

	move, ok := parseMove(fields)
	if !ok {
		that.println("Unknown command. Type help for the list of commands.")
		return nil
	}

	game, err := that.uGame.MakeTurn(ctx, that.gameID, &move)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		that.println("The game is over. Type restart to play again.")
		return nil
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrCellOccupied):
		that.printf("Invalid move (%d, %d): %v\n", move.Row, move.Column, err)
		return nil
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return err
	}

	that.game = game
	that.printGame()

	return nil
}

func parseMove(fields []string) (entity.Move, bool) {
	if len(fields) != 2 {
		return entity.Move{}, false
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Move{}, false
	}

	column, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Move{}, false
	}

	return entity.Move{Row: row, Column: column}, true
}

func (that *Server) handleRestart(ctx context.Context, _ []string) error {
	game, err := that.uGame.Restart(ctx, that.gameID)
	if err != nil {
		return err
	}

	that.game = game
	that.println("New game.")
	that.printGame()

	return nil
}

func (that *Server) handleStats(_ context.Context, _ []string) error {
	matrix, err := that.uGame.ConfusionMatrix()
	if errors.Is(err, apperror.ErrModelNotTrained) {
		that.println("The naive Bayes model is not trained in this mode.")
		return nil
	}
	if err != nil {
		return err
	}

	that.printMatrix(matrix)

	return nil
}

func (that *Server) handleBoard(_ context.Context, _ []string) error {
	that.printGame()
	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.println(helpText)
	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) error {
	that.println("Bye!")
	return errQuit
}

package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Mode uint8

const (
	// ModeLocal is two humans sharing one board.
	ModeLocal Mode = iota
	// ModeSinglePlayer is a human against an automated opponent.
	ModeSinglePlayer
	// ModeSelfPlay is an automated player against itself.
	ModeSelfPlay
)

func (that Mode) String() string {
	switch that {
	case ModeLocal:
		return "local"
	case ModeSinglePlayer:
		return "single-player"
	case ModeSelfPlay:
		return "self-play"
	default:
		return "unknown"
	}
}

type State uint8

const (
	AwaitingMove State = iota
	Evaluating
	GameOver
)

func (that State) String() string {
	switch that {
	case AwaitingMove:
		return "awaiting-move"
	case Evaluating:
		return "evaluating"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Bot picks a move for an automated seat.
type Bot interface {
	ChooseMove(board entity.Board, mark entity.Cell) (entity.Move, error)
}

// GameController owns one game session. It is not safe for concurrent use.
type GameController struct {
	log  *slog.Logger
	bots map[entity.PlayerKind]Bot

	mode     Mode
	opponent entity.PlayerKind
	state    State
	board    entity.Board
	players  [2]entity.Player
	current  entity.PlayerIndex
	win      entity.WinRecord
	hasWin   bool
	history  []entity.Move
}

// NewGameController returns a controller with a local game ready for player one.
func NewGameController(logger *slog.Logger, bots map[entity.PlayerKind]Bot) *GameController {
	controller := &GameController{
		log:  logger.With("component", "game_controller"),
		bots: bots,
	}
	controller.reset(ModeLocal, entity.Human)

	return controller
}

// StartGame clears the board and seats the players for mode. Automated openings are played immediately.
func (that *GameController) StartGame(mode Mode, opponent entity.PlayerKind) error {
	switch mode {
	case ModeLocal:
		opponent = entity.Human
	case ModeSinglePlayer, ModeSelfPlay:
		// the classifier only scores positions for crosses, so it cannot hold the circle seat
		if mode == ModeSelfPlay && opponent == entity.AutomatedNaiveBayes {
			return fmt.Errorf("%w: %s cannot play circles", apperror.ErrUnknownOpponent, opponent)
		}
		if !opponent.IsAutomated() {
			return fmt.Errorf("%w: %s", apperror.ErrUnknownOpponent, opponent)
		}
		if _, ok := that.bots[opponent]; !ok {
			return fmt.Errorf("%w: no bot for %s", apperror.ErrUnknownOpponent, opponent)
		}
	default:
		return fmt.Errorf("%w: %d", apperror.ErrUnknownMode, mode)
	}

	that.reset(mode, opponent)
	that.log.Debug("game started", "mode", mode, "opponent", opponent)

	return that.playAutomated()
}

// Reset starts a new game with the current mode and opponent.
func (that *GameController) Reset() error {
	return that.StartGame(that.mode, that.opponent)
}

// AdvanceTurn applies move for the human to play, then any automated replies.
// move is ignored when an automated player is to move.
func (that *GameController) AdvanceTurn(move *entity.Move) error {
	if that.state == GameOver {
		return apperror.ErrGameFinished
	}

	player := that.players[that.current]
	if player.Kind.IsAutomated() {
		return that.playAutomated()
	}

	if move == nil {
		return apperror.ErrMoveRequired
	}

	if err := that.apply(*move); err != nil {
		return err
	}

	return that.playAutomated()
}

func (that *GameController) playAutomated() error {
	for that.state == AwaitingMove && that.players[that.current].Kind.IsAutomated() {
		player := that.players[that.current]

		bot, ok := that.bots[player.Kind]
		if !ok {
			return fmt.Errorf("%w: no bot for %s", apperror.ErrUnknownOpponent, player.Kind)
		}

		move, err := bot.ChooseMove(that.board, player.Mark)
		if err != nil {
			return fmt.Errorf("%s failed to choose a move: %w", player.Index, err)
		}

		if err = that.apply(move); err != nil {
			return fmt.Errorf("%s chose an illegal move: %w", player.Index, err)
		}
	}

	return nil
}

// apply places the current player's mark and evaluates the board. On error nothing changes.
func (that *GameController) apply(move entity.Move) error {
	player := that.players[that.current]
	if err := that.board.Place(move, player.Mark); err != nil {
		return err
	}

	that.history = append(that.history, move)
	that.state = Evaluating
	that.log.Debug("move applied", "player", player.Index, "kind", player.Kind, "row", move.Row, "column", move.Column)

	if record, ok := that.board.CheckWin(); ok {
		that.win, that.hasWin = record, true
		that.state = GameOver
		that.log.Debug("game over", "winner", player.Index, "mark", record.Mark)

		return nil
	}

	if that.board.IsFull() {
		that.state = GameOver
		that.log.Debug("game over", "result", "draw")

		return nil
	}

	that.current = that.current.Other()
	that.state = AwaitingMove

	return nil
}

func (that *GameController) reset(mode Mode, opponent entity.PlayerKind) {
	first, second := entity.Human, entity.Human
	switch mode {
	case ModeSinglePlayer:
		second = opponent
	case ModeSelfPlay:
		first, second = opponent, opponent
	}

	that.mode, that.opponent = mode, opponent
	that.board.Reset(entity.Empty)
	that.players = [2]entity.Player{
		{Index: entity.PlayerOne, Kind: first, Mark: entity.MarkB},
		{Index: entity.PlayerTwo, Kind: second, Mark: entity.MarkA},
	}
	that.current = entity.PlayerOne
	that.state = AwaitingMove
	that.win, that.hasWin = entity.WinRecord{}, false
	that.history = nil
}

func (that *GameController) Mode() Mode {
	return that.mode
}

func (that *GameController) Opponent() entity.PlayerKind {
	return that.opponent
}

func (that *GameController) State() State {
	return that.state
}

// Board returns a copy of the board.
func (that *GameController) Board() entity.Board {
	return that.board
}

func (that *GameController) CurrentPlayer() entity.Player {
	return that.players[that.current]
}

func (that *GameController) Players() [2]entity.Player {
	return that.players
}

// Winner reports the player owning the completed line.
func (that *GameController) Winner() (entity.Player, bool) {
	if !that.hasWin {
		return entity.Player{}, false
	}

	for _, player := range that.players {
		if player.Mark == that.win.Mark {
			return player, true
		}
	}

	return entity.Player{}, false
}

func (that *GameController) WinRecord() (entity.WinRecord, bool) {
	return that.win, that.hasWin
}

func (that *GameController) IsDraw() bool {
	return that.state == GameOver && !that.hasWin
}

// History lists the moves played so far, oldest first.
func (that *GameController) History() []entity.Move {
	history := make([]entity.Move, len(that.history))
	copy(history, that.history)

	return history
}

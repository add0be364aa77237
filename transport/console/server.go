package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/naivebayes"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errQuit = errors.New("quit")

type uGame interface {
	StartGame(ctx context.Context, mode tictactoe.Mode, opponent entity.PlayerKind) (string, *tictactoe.GameController, error)
	MakeTurn(ctx context.Context, id string, move *entity.Move) (*tictactoe.GameController, error)
	Restart(ctx context.Context, id string) (*tictactoe.GameController, error)
	EndGame(id string) error
	ConfusionMatrix() (naivebayes.ConfusionMatrix, error)
}

// Server plays one game session over a line based terminal.
type Server struct {
	logger *slog.Logger
	uGame  uGame
	out    io.Writer

	gameID string
	game   *tictactoe.GameController

	handlers map[string]func(ctx context.Context, args []string) error
}

func New(logger *slog.Logger, uGame uGame, out io.Writer) *Server {
	server := &Server{
		logger: logger,
		uGame:  uGame,
		out:    out,

		handlers: make(map[string]func(context.Context, []string) error),
	}

	server.handlers["restart"] = server.handleRestart
	server.handlers["stats"] = server.handleStats
	server.handlers["board"] = server.handleBoard
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Start starts a game and reads commands from in until quit, end of input or ctx is done.
// Self-play games run to completion and return without reading input.
func (that *Server) Start(ctx context.Context, mode tictactoe.Mode, opponent entity.PlayerKind, in io.Reader) error {
	log := that.logger.With("method", "Start")

	id, game, err := that.uGame.StartGame(ctx, mode, opponent)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	that.gameID, that.game = id, game

	defer func() {
		if endErr := that.uGame.EndGame(that.gameID); endErr != nil {
			log.Error("failed to end game", "error", endErr)
		}
	}()

	log.Info("game session started", "id", id, "mode", mode, "opponent", opponent)

	if mode == tictactoe.ModeSelfPlay {
		that.printReplay()
		return nil
	}

	that.println("Type help for the list of commands.")
	that.printGame()

	lines, readErr := readLines(ctx, in)
	for {
		select {
		case <-ctx.Done():
			log.Info("input interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err = <-readErr:
				default:
				}
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			if err = that.handleLine(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}

				return err
			}
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never delays cancellation.
// The scan error, if any, is sent before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *Server) handleLine(ctx context.Context, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	if handler, ok := that.handlers[fields[0]]; ok {
		return handler(ctx, fields[1:])
	}

	return that.handleMove(ctx, fields)
}

func (that *Server) println(args ...any) {
	_, _ = fmt.Fprintln(that.out, args...)
}

func (that *Server) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

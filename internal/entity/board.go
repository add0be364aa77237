package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Board is the 3x3 grid. The zero value is an empty board.
// Cells change only through Place, Reset and Try.
type Board struct {
	grid [Rows][Columns]Cell
}

// BoardFromCells builds a board from a row-major snapshot.
func BoardFromCells(cells [Size]Cell) Board {
	var board Board
	for i, cell := range cells {
		board.grid[i/Columns][i%Columns] = cell
	}

	return board
}

// Reset sets every cell to fill.
func (that *Board) Reset(fill Cell) {
	for row := range that.grid {
		for col := range that.grid[row] {
			that.grid[row][col] = fill
		}
	}
}

// Place puts mark on an empty in-range cell. On error the board is unchanged.
func (that *Board) Place(move Move, mark Cell) error {
	if !mark.IsMark() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if !move.InRange() {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, move.Row, move.Column)
	}

	if that.grid[move.Row][move.Column] != Empty {
		return apperror.ErrCellOccupied
	}

	that.grid[move.Row][move.Column] = mark

	return nil
}

// Try places mark hypothetically, runs fn, and restores the cell on every exit path of fn.
func (that *Board) Try(move Move, mark Cell, fn func()) error {
	if err := that.Place(move, mark); err != nil {
		return err
	}
	defer func() {
		that.grid[move.Row][move.Column] = Empty
	}()

	fn()

	return nil
}

// Get returns the cell at move, Empty when out of range.
func (that *Board) Get(move Move) Cell {
	if !move.InRange() {
		return Empty
	}

	return that.grid[move.Row][move.Column]
}

func (that *Board) IsFull() bool {
	for row := range that.grid {
		for col := range that.grid[row] {
			if that.grid[row][col] == Empty {
				return false
			}
		}
	}

	return true
}

// EmptyCells lists the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, Size)
	for row := range that.grid {
		for col := range that.grid[row] {
			if that.grid[row][col] == Empty {
				moves = append(moves, Move{Row: row, Column: col})
			}
		}
	}

	return moves
}

// Cells flattens the board row-major.
func (that *Board) Cells() [Size]Cell {
	var cells [Size]Cell
	for row := range that.grid {
		for col := range that.grid[row] {
			cells[row*Columns+col] = that.grid[row][col]
		}
	}

	return cells
}

func (that *Board) String() string {
	var sb strings.Builder
	for row := range that.grid {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}
		for col := range that.grid[row] {
			if col > 0 {
				sb.WriteString("|")
			}
			sb.WriteString(" " + that.grid[row][col].String() + " ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

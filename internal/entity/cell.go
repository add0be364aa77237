package entity

const (
	Rows    = 3
	Columns = 3
	Size    = Rows * Columns
)

// Cell is the state of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	MarkA      // cross, "x" in the dataset
	MarkB      // circle, "o" in the dataset
)

func (that Cell) String() string {
	switch that {
	case MarkA:
		return "X"
	case MarkB:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other mark. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	default:
		return Empty
	}
}

func (that Cell) IsMark() bool {
	return that == MarkA || that == MarkB
}

// Move is a 0-indexed (row, column) coordinate.
type Move struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < Rows && that.Column >= 0 && that.Column < Columns
}

// Index returns the row-major index of the move.
func (that Move) Index() int {
	return that.Row*Columns + that.Column
}

func MoveFromIndex(index int) Move {
	return Move{Row: index / Columns, Column: index % Columns}
}

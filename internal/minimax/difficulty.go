package minimax

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Depth limits per difficulty. Easy only sees wins completed by the move under test.
const (
	EasyDepth   = 0
	MediumDepth = 1
	HardDepth   = entity.Rows*entity.Columns - 1
)

func (that Difficulty) MaxDepth() int {
	switch that {
	case Medium:
		return MediumDepth
	case Hard:
		return HardDepth
	default:
		return EasyDepth
	}
}

func (that Difficulty) String() string {
	switch that {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

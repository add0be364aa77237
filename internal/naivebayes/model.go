package naivebayes

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Probability table columns: the first three are conditioned on Positive, the last three on Negative.
const (
	colCrossPositive = iota
	colCirclePositive
	colBlankPositive
	colCrossNegative
	colCircleNegative
	colBlankNegative

	columns
)

// Model is a trained naive Bayes classifier over the nine cell states.
type Model struct {
	Probabilities [entity.Size][columns]float64 `json:"probabilities"`
	PriorPositive float64                       `json:"prior_positive"`
	PriorNegative float64                       `json:"prior_negative"`
	TrainingCount int                           `json:"training_count"`
}

type Prediction struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

func column(cell entity.Cell, label Label) int {
	offset := colCrossNegative
	if label == Positive {
		offset = colCrossPositive
	}

	switch cell {
	case entity.MarkA:
		return offset
	case entity.MarkB:
		return offset + 1
	default:
		return offset + 2
	}
}

// Learn counts cell states per class and normalizes them by the class size.
// A state never seen with a class keeps probability 0.
func Learn(training Dataset) Model {
	var (
		model              Model
		positive, negative float64
	)

	for _, row := range training {
		if row.Label == Positive {
			positive++
		} else {
			negative++
		}

		for i, cell := range row.Cells {
			model.Probabilities[i][column(cell, row.Label)]++
		}
	}

	for i := range model.Probabilities {
		for col := range model.Probabilities[i] {
			total := negative
			if col < colCrossNegative {
				total = positive
			}
			if total > 0 {
				model.Probabilities[i][col] /= total
			}
		}
	}

	model.TrainingCount = len(training)
	if model.TrainingCount > 0 {
		model.PriorPositive = positive / float64(model.TrainingCount)
		model.PriorNegative = negative / float64(model.TrainingCount)
	}

	return model
}

// Predict multiplies the priors by each cell's likelihood. Ties favour Positive.
func (that *Model) Predict(cells [entity.Size]entity.Cell) Prediction {
	positive, negative := that.PriorPositive, that.PriorNegative
	for i, cell := range cells {
		positive *= that.Probabilities[i][column(cell, Positive)]
		negative *= that.Probabilities[i][column(cell, Negative)]
	}

	if positive >= negative {
		return Prediction{Label: Positive, Score: positive}
	}

	return Prediction{Label: Negative, Score: negative}
}

package naivebayes

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrInvalidFraction = errors.New("training fraction must be in (0, 1]")

// Classifier owns a private copy of a dataset, its shuffled split and the model trained on it.
type Classifier struct {
	dataset Dataset
	rng     *rand.Rand

	trained bool
	split   int
	model   Model
	matrix  ConfusionMatrix
}

func NewClassifier(dataset Dataset, seed int64) *Classifier {
	return &Classifier{
		dataset: append(Dataset(nil), dataset...),
		rng:     rand.New(rand.NewSource(seed)), //nolint: gosec // shuffling, not security
	}
}

// SplitSizes returns the training count ceil(count*fraction) and the remaining test count.
func SplitSizes(count int, fraction float64) (int, int) {
	training := int(math.Ceil(float64(count) * fraction))
	training = min(training, count)

	return training, count - training
}

// Train shuffles the dataset, learns from the head and evaluates on the tail.
func (that *Classifier) Train(fraction float64) error {
	if len(that.dataset) == 0 {
		return ErrEmptyDataset
	}

	if fraction <= 0 || fraction > 1 || math.IsNaN(fraction) {
		return fmt.Errorf("%w: %v", ErrInvalidFraction, fraction)
	}

	that.rng.Shuffle(len(that.dataset), func(i, j int) {
		that.dataset[i], that.dataset[j] = that.dataset[j], that.dataset[i]
	})

	that.split, _ = SplitSizes(len(that.dataset), fraction)
	that.model = Learn(that.dataset[:that.split])
	that.matrix = Evaluate(&that.model, that.dataset[that.split:])
	that.trained = true

	return nil
}

func (that *Classifier) IsTrained() bool {
	return that.trained
}

func (that *Classifier) Model() Model {
	return that.model
}

func (that *Classifier) ConfusionMatrix() ConfusionMatrix {
	return that.matrix
}

func (that *Classifier) TrainingSet() Dataset {
	return append(Dataset(nil), that.dataset[:that.split]...)
}

func (that *Classifier) TestSet() Dataset {
	return append(Dataset(nil), that.dataset[that.split:]...)
}

func (that *Classifier) Predict(cells [entity.Size]entity.Cell) (Prediction, error) {
	if !that.trained {
		return Prediction{}, apperror.ErrModelNotTrained
	}

	return that.model.Predict(cells), nil
}

func (that *Classifier) ChooseMove(board entity.Board, mark entity.Cell) (entity.Move, error) {
	if !that.trained {
		return entity.Move{}, apperror.ErrModelNotTrained
	}

	return ChooseMove(&that.model, board, mark)
}

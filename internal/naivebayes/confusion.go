package naivebayes

// Counts are the raw tallies behind a ConfusionMatrix.
type Counts struct {
	TruePositive  int `json:"true_positive"`
	FalsePositive int `json:"false_positive"`
	TrueNegative  int `json:"true_negative"`
	FalseNegative int `json:"false_negative"`
}

// ConfusionMatrix holds rates normalized by the number of test samples.
type ConfusionMatrix struct {
	TruePositive     float64 `json:"true_positive"`
	FalsePositive    float64 `json:"false_positive"`
	TrueNegative     float64 `json:"true_negative"`
	FalseNegative    float64 `json:"false_negative"`
	ProbabilityError float64 `json:"probability_error"`
	Accuracy         float64 `json:"accuracy"`

	Counts  Counts `json:"counts"`
	Samples int    `json:"samples"`
}

// Evaluate predicts every row of testing and tallies the outcome.
func Evaluate(model *Model, testing Dataset) ConfusionMatrix {
	var matrix ConfusionMatrix

	for _, row := range testing {
		predicted := model.Predict(row.Cells).Label

		switch {
		case predicted == Positive && row.Label == Positive:
			matrix.Counts.TruePositive++
		case predicted == Positive:
			matrix.Counts.FalsePositive++
		case row.Label == Negative:
			matrix.Counts.TrueNegative++
		default:
			matrix.Counts.FalseNegative++
		}
	}

	matrix.Samples = len(testing)
	if matrix.Samples == 0 {
		return matrix
	}

	samples := float64(matrix.Samples)
	matrix.TruePositive = float64(matrix.Counts.TruePositive) / samples
	matrix.FalsePositive = float64(matrix.Counts.FalsePositive) / samples
	matrix.TrueNegative = float64(matrix.Counts.TrueNegative) / samples
	matrix.FalseNegative = float64(matrix.Counts.FalseNegative) / samples

	matrix.ProbabilityError = matrix.FalsePositive + matrix.FalseNegative

	correct := matrix.TruePositive + matrix.TrueNegative
	if total := correct + matrix.ProbabilityError; total > 0 {
		matrix.Accuracy = correct / total
	}

	return matrix
}

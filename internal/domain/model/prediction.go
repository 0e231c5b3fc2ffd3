package model

// ModelPrediction is a single sub-model's verdict within a combined
// predictive signal.
type ModelPrediction struct {
	ModelName   string
	Prediction  string // "approved", "rejected" or "manual_review"
	Probability float64
	Confidence  float64
}

// PredictionOutcome is the aggregate output of the external predictor:
// a label, whether the sub-models agree, and their average approval
// probability in [0,1].
type PredictionOutcome struct {
	Decision           string // "approved", "rejected" or "manual_review"
	Consensus          bool
	AverageProbability float64
	Models             []ModelPrediction
}

// Prediction labels produced by the external predictor.
const (
	PredictionApproved     = "approved"
	PredictionRejected     = "rejected"
	PredictionManualReview = "manual_review"
)

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
)

// HTTPInferenceClient calls a remote inference service over JSON/HTTP.
type HTTPInferenceClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPInferenceClient creates a client from the adapter configuration.
func NewHTTPInferenceClient(config PredictorConfig) *HTTPInferenceClient {
	return &HTTPInferenceClient{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		client: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}
}

type inferenceRequest struct {
	Age             int     `json:"age"`
	Salary          float64 `json:"salary"`
	CreditScore     int     `json:"credit_score"`
	LoanAmount      float64 `json:"loan_amount"`
	ExistingLoans   int     `json:"existing_loans"`
	MonthlyIncome   float64 `json:"monthly_income"`
	EmploymentYears float64 `json:"employment_years"`
}

type inferenceModelResult struct {
	ModelName   string  `json:"model_name"`
	Prediction  string  `json:"prediction"`
	Probability float64 `json:"probability"`
	Confidence  float64 `json:"confidence"`
}

type inferenceResponse struct {
	Decision           string                 `json:"decision"`
	Consensus          bool                   `json:"consensus"`
	AverageProbability float64                `json:"average_probability"`
	Models             []inferenceModelResult `json:"models"`
}

// FetchPrediction implements InferenceClient.
func (c *HTTPInferenceClient) FetchPrediction(ctx context.Context, profile model.ApplicationProfile) (model.PredictionOutcome, error) {
	body, err := json.Marshal(inferenceRequest{
		Age:             profile.Age,
		Salary:          profile.AnnualSalary.InexactFloat64(),
		CreditScore:     profile.CreditScore,
		LoanAmount:      profile.LoanAmount.InexactFloat64(),
		ExistingLoans:   profile.ExistingLoans,
		MonthlyIncome:   profile.MonthlyIncome.InexactFloat64(),
		EmploymentYears: profile.EmploymentYears,
	})
	if err != nil {
		return model.PredictionOutcome{}, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return model.PredictionOutcome{}, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return model.PredictionOutcome{}, fmt.Errorf("call inference service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.PredictionOutcome{}, fmt.Errorf("inference service returned %d: %s", resp.StatusCode, payload)
	}

	var parsed inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.PredictionOutcome{}, fmt.Errorf("decode inference response: %w", err)
	}

	models := make([]model.ModelPrediction, len(parsed.Models))
	for i, m := range parsed.Models {
		models[i] = model.ModelPrediction{
			ModelName:   m.ModelName,
			Prediction:  m.Prediction,
			Probability: m.Probability,
			Confidence:  m.Confidence,
		}
	}

	return model.PredictionOutcome{
		Decision:           parsed.Decision,
		Consensus:          parsed.Consensus,
		AverageProbability: parsed.AverageProbability,
		Models:             models,
	}, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	pkgpostgres "github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/pkg/postgres"
)

// PredictionRepo implements port.PredictionRepository.
type PredictionRepo struct {
	pool *pgxpool.Pool
}

// NewPredictionRepo creates a new repository backed by PostgreSQL.
func NewPredictionRepo(pool *pgxpool.Pool) *PredictionRepo {
	return &PredictionRepo{pool: pool}
}

// Save stores the sub-model predictions for an application atomically.
func (r *PredictionRepo) Save(ctx context.Context, applicationID string, predictions []model.ModelPrediction) error {
	if len(predictions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO model_predictions (
			application_id, model_name, prediction, probability, confidence
		) VALUES ($1,$2,$3,$4,$5)
	`
	for _, p := range predictions {
		batch.Queue(query, applicationID, p.ModelName, p.Prediction, p.Probability, p.Confidence)
	}

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range predictions {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("save model prediction: %w", err)
			}
		}
		return nil
	})
}

// FindByApplicationID retrieves the stored predictions for an application.
func (r *PredictionRepo) FindByApplicationID(ctx context.Context, applicationID string) ([]model.ModelPrediction, error) {
	query := `
		SELECT model_name, prediction, probability, confidence
		FROM model_predictions
		WHERE application_id = $1
		ORDER BY model_name
	`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query model predictions: %w", err)
	}
	defer rows.Close()

	var result []model.ModelPrediction
	for rows.Next() {
		var p model.ModelPrediction
		if err := rows.Scan(&p.ModelName, &p.Prediction, &p.Probability, &p.Confidence); err != nil {
			return nil, fmt.Errorf("scan model prediction: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, port.ErrNotFound
	}
	return result, nil
}

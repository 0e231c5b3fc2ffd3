package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	pkgpostgres "github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/pkg/postgres"
)

// LoanTermsRepo implements port.LoanTermsRepository.
type LoanTermsRepo struct {
	db pkgpostgres.Querier
}

// NewLoanTermsRepo creates a new repository backed by PostgreSQL.
func NewLoanTermsRepo(db pkgpostgres.Querier) *LoanTermsRepo {
	return &LoanTermsRepo{db: db}
}

// Save persists the terms offered on an application (one row per application).
func (r *LoanTermsRepo) Save(ctx context.Context, applicationID string, terms model.LoanTerms) error {
	query := `
		INSERT INTO loan_terms (
			application_id, approved_amount, interest_rate,
			tenure_months, monthly_payment, debt_to_income_ratio
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (application_id) DO UPDATE SET
			approved_amount      = EXCLUDED.approved_amount,
			interest_rate        = EXCLUDED.interest_rate,
			tenure_months        = EXCLUDED.tenure_months,
			monthly_payment      = EXCLUDED.monthly_payment,
			debt_to_income_ratio = EXCLUDED.debt_to_income_ratio
	`
	_, err := r.db.Exec(ctx, query,
		applicationID, terms.ApprovedAmount, terms.InterestRate,
		terms.TenureMonths, terms.MonthlyPayment, terms.DebtToIncomeRatio,
	)
	if err != nil {
		return fmt.Errorf("save loan terms: %w", err)
	}
	return nil
}

// FindByApplicationID retrieves the terms offered on an application.
func (r *LoanTermsRepo) FindByApplicationID(ctx context.Context, applicationID string) (model.LoanTerms, error) {
	query := `
		SELECT approved_amount, interest_rate, tenure_months,
		       monthly_payment, debt_to_income_ratio
		FROM loan_terms
		WHERE application_id = $1
	`
	var terms model.LoanTerms
	err := r.db.QueryRow(ctx, query, applicationID).Scan(
		&terms.ApprovedAmount, &terms.InterestRate, &terms.TenureMonths,
		&terms.MonthlyPayment, &terms.DebtToIncomeRatio,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanTerms{}, port.ErrNotFound
	}
	if err != nil {
		return model.LoanTerms{}, fmt.Errorf("scan loan terms: %w", err)
	}
	return terms, nil
}

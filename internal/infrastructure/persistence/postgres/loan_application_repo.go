package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/valueobject"
)

// LoanApplicationRepo implements port.LoanApplicationRepository.
type LoanApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewLoanApplicationRepo creates a new repository backed by PostgreSQL.
func NewLoanApplicationRepo(pool *pgxpool.Pool) *LoanApplicationRepo {
	return &LoanApplicationRepo{pool: pool}
}

// Save persists a loan application (upsert by ID with optimistic locking).
func (r *LoanApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (
			id, customer_id, age, annual_salary, credit_score,
			loan_amount, existing_loans, monthly_income, employment_years,
			preferred_tenure_years, status, risk_category, decision_reason,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (id) DO UPDATE SET
			status          = EXCLUDED.status,
			risk_category   = EXCLUDED.risk_category,
			decision_reason = EXCLUDED.decision_reason,
			version         = loan_applications.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE loan_applications.version = $14
	`
	profile := app.Profile()
	tag, err := r.pool.Exec(ctx, query,
		app.ID(), app.CustomerID(),
		profile.Age, profile.AnnualSalary, profile.CreditScore,
		profile.LoanAmount, profile.ExistingLoans, profile.MonthlyIncome,
		profile.EmploymentYears, profile.PreferredTenureYears,
		app.Status().String(), categoryColumn(app.RiskCategory()), app.DecisionReason(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on loan application")
	}
	return nil
}

// FindByID retrieves a single loan application.
func (r *LoanApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query := applicationSelect + ` WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanApplication{}, port.ErrNotFound
	}
	return app, err
}

// FindByCustomerID retrieves all applications a customer has filed, newest first.
func (r *LoanApplicationRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.LoanApplication, error) {
	query := applicationSelect + ` WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

const applicationSelect = `
	SELECT id, customer_id, age, annual_salary, credit_score,
	       loan_amount, existing_loans, monthly_income, employment_years,
	       preferred_tenure_years, status, risk_category, decision_reason,
	       version, created_at, updated_at
	FROM loan_applications`

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id, customerID       string
		age                  int
		annualSalary         decimal.Decimal
		creditScore          int
		loanAmount           decimal.Decimal
		existingLoans        int
		monthlyIncome        decimal.Decimal
		employmentYears      float64
		preferredTenureYears int
		statusStr            string
		categoryStr          *string
		decisionReason       string
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &customerID, &age, &annualSalary, &creditScore,
		&loanAmount, &existingLoans, &monthlyIncome, &employmentYears,
		&preferredTenureYears, &statusStr, &categoryStr, &decisionReason,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanApplication{}, err
		}
		return model.LoanApplication{}, fmt.Errorf("scan loan application: %w", err)
	}

	status, err := valueobject.NewDecisionStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}

	var category valueobject.RiskCategory
	if categoryStr != nil {
		category, err = valueobject.NewRiskCategory(*categoryStr)
		if err != nil {
			return model.LoanApplication{}, fmt.Errorf("parse risk category: %w", err)
		}
	}

	profile := model.ApplicationProfile{
		Age:                  age,
		AnnualSalary:         annualSalary,
		CreditScore:          creditScore,
		LoanAmount:           loanAmount,
		ExistingLoans:        existingLoans,
		MonthlyIncome:        monthlyIncome,
		EmploymentYears:      employmentYears,
		PreferredTenureYears: preferredTenureYears,
	}

	return model.ReconstructLoanApplication(
		id, customerID, profile, status, category, decisionReason,
		nil, version, createdAt, updatedAt,
	), nil
}

// categoryColumn maps a zero category to NULL.
func categoryColumn(category valueobject.RiskCategory) *string {
	if category.IsZero() {
		return nil
	}
	s := category.String()
	return &s
}

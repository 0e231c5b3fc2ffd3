package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/model"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	pkgpostgres "github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/pkg/postgres"
)

// CustomerRepo implements port.CustomerRepository.
type CustomerRepo struct {
	db pkgpostgres.Querier
}

// NewCustomerRepo creates a new repository backed by PostgreSQL.
func NewCustomerRepo(db pkgpostgres.Querier) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Save persists a customer (insert only; customers are immutable records).
func (r *CustomerRepo) Save(ctx context.Context, customer model.Customer) error {
	query := `
		INSERT INTO customers (id, name, age, salary, credit_score, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		customer.ID(), customer.Name(), customer.Age(),
		customer.Salary(), customer.CreditScore(), customer.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	return nil
}

// FindByID retrieves a single customer.
func (r *CustomerRepo) FindByID(ctx context.Context, id string) (model.Customer, error) {
	query := `
		SELECT id, name, age, salary, credit_score, created_at
		FROM customers
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

// FindByDetails locates a customer by the identity fields the intake form
// carries. The newest match wins when duplicates exist.
func (r *CustomerRepo) FindByDetails(ctx context.Context, name string, age, creditScore int) (model.Customer, error) {
	query := `
		SELECT id, name, age, salary, credit_score, created_at
		FROM customers
		WHERE name = $1 AND age = $2 AND credit_score = $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanOne(ctx, query, name, age, creditScore)
}

func (r *CustomerRepo) scanOne(ctx context.Context, query string, args ...any) (model.Customer, error) {
	var (
		id, name    string
		age         int
		salary      decimal.Decimal
		creditScore int
		createdAt   time.Time
	)
	err := r.db.QueryRow(ctx, query, args...).Scan(&id, &name, &age, &salary, &creditScore, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, port.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	return model.ReconstructCustomer(id, name, age, salary, creditScore, createdAt), nil
}

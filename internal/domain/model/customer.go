package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the applicant on whose behalf loan applications are filed.
type Customer struct {
	id          string
	name        string
	age         int
	salary      decimal.Decimal
	creditScore int
	createdAt   time.Time
}

// NewCustomer creates a customer record.
func NewCustomer(name string, age int, salary decimal.Decimal, creditScore int, now time.Time) (Customer, error) {
	if name == "" {
		return Customer{}, errors.New("customer name is required")
	}
	if age <= 0 {
		return Customer{}, errors.New("customer age must be positive")
	}
	if creditScore < 300 || creditScore > 850 {
		return Customer{}, errors.New("credit score must be in range 300-850")
	}
	return Customer{
		id:          uuid.New().String(),
		name:        name,
		age:         age,
		salary:      salary,
		creditScore: creditScore,
		createdAt:   now,
	}, nil
}

// ReconstructCustomer rebuilds a customer from persistence without validation
// side effects.
func ReconstructCustomer(id, name string, age int, salary decimal.Decimal, creditScore int, createdAt time.Time) Customer {
	return Customer{
		id:          id,
		name:        name,
		age:         age,
		salary:      salary,
		creditScore: creditScore,
		createdAt:   createdAt,
	}
}

func (c Customer) ID() string              { return c.id }
func (c Customer) Name() string            { return c.name }
func (c Customer) Age() int                { return c.age }
func (c Customer) Salary() decimal.Decimal { return c.salary }
func (c Customer) CreditScore() int        { return c.creditScore }
func (c Customer) CreatedAt() time.Time    { return c.createdAt }

package ports

import (
	"context"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

type CreatePaymentInput struct {
	EmployeeID string
	ProjectID  string
	Amount     float64
	Currency   domain.Currency
	Date       time.Time
}

type UpdatePaymentInput struct {
	Amount   *float64
	Currency *domain.Currency
	Status   *domain.PaymentStatus
	Date     *time.Time
}

type PaymentService interface {
	List(ctx context.Context, caller domain.Caller) ([]*domain.Payment, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Payment, error)
	Create(ctx context.Context, caller domain.Caller, input CreatePaymentInput) (*domain.Payment, error)
	Update(ctx context.Context, caller domain.Caller, id string, input UpdatePaymentInput) (*domain.Payment, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

type CreateRevenueInput struct {
	ClientID     string
	ProjectID    string
	Amount       float64
	Currency     domain.Currency
	DateReceived time.Time
}

type UpdateRevenueInput struct {
	Amount       *float64
	Currency     *domain.Currency
	Status       *domain.RevenueStatus
	DateReceived *time.Time
}

type RevenueService interface {
	List(ctx context.Context, caller domain.Caller) ([]*domain.Revenue, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Revenue, error)
	Create(ctx context.Context, caller domain.Caller, input CreateRevenueInput) (*domain.Revenue, error)
	Update(ctx context.Context, caller domain.Caller, id string, input UpdateRevenueInput) (*domain.Revenue, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

// refs validates the user and project a financial record points at.
type refs struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
}

func (r refs) userWithRole(ctx context.Context, field, id string, role domain.Role) error {
	if id == "" {
		return domain.InvalidInput(field + " is required")
	}
	u, err := r.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.InvalidInput(field + " must reference an existing " + string(role))
		}
		return err
	}
	if u.Role != role {
		return domain.InvalidInput(field + " must reference a user with the " + string(role) + " role")
	}
	return nil
}

func (r refs) project(ctx context.Context, id string) error {
	if id == "" {
		return domain.InvalidInput("projectId is required")
	}
	if _, err := r.projects.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.InvalidInput("projectId must reference an existing project")
		}
		return err
	}
	return nil
}

func checkAmount(amount float64) error {
	if amount <= 0 {
		return domain.InvalidInput("amount must be positive")
	}
	return nil
}

func dateOrToday(t time.Time) time.Time {
	if t.IsZero() {
		return now().Truncate(24 * time.Hour)
	}
	return t.UTC()
}

type paymentService struct {
	payments ports.PaymentRepository
	refs     refs
	guard    *authz.Guard
	logger   zerolog.Logger
}

// NewPaymentService returns a PaymentService implementation.
func NewPaymentService(
	payments ports.PaymentRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	guard *authz.Guard,
	logger zerolog.Logger,
) ports.PaymentService {
	return &paymentService{
		payments: payments,
		refs:     refs{users: users, projects: projects},
		guard:    guard,
		logger:   logger,
	}
}

// List returns all payments for admins, an employee's own payments, and
// nothing for clients.
func (s *paymentService) List(ctx context.Context, caller domain.Caller) ([]*domain.Payment, error) {
	if err := s.guard.Authorize(ctx, caller, authz.PaymentList, authz.Facts{}); err != nil {
		return nil, err
	}

	scope := authz.ListScope(caller, authz.ResourcePayment)
	switch scope.Kind {
	case authz.ScopeAll:
		return s.payments.List(ctx, ports.PaymentFilter{})
	case authz.ScopeEmployee:
		return s.payments.List(ctx, ports.PaymentFilter{EmployeeID: scope.SubjectID})
	default:
		return []*domain.Payment{}, nil
	}
}

func (s *paymentService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Payment, error) {
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.PaymentRead, id, s.resolve(id))
	if err != nil {
		return nil, err
	}
	return facts.Payment, nil
}

func (s *paymentService) Create(ctx context.Context, caller domain.Caller, input ports.CreatePaymentInput) (*domain.Payment, error) {
	if err := s.guard.Authorize(ctx, caller, authz.PaymentCreate, authz.Facts{}); err != nil {
		return nil, err
	}
	if err := s.refs.userWithRole(ctx, "employeeId", input.EmployeeID, domain.RoleEmployee); err != nil {
		return nil, err
	}
	if err := s.refs.project(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if err := checkAmount(input.Amount); err != nil {
		return nil, err
	}
	currency := input.Currency
	if currency == "" {
		currency = domain.CurrencyUSD
	}
	if !currency.Valid() {
		return nil, domain.ErrInvalidCurrency
	}

	p := &domain.Payment{
		ID:         newID(),
		EmployeeID: input.EmployeeID,
		ProjectID:  input.ProjectID,
		Amount:     input.Amount,
		Currency:   currency,
		Status:     domain.PaymentUnpaid,
		Date:       dateOrToday(input.Date),
		CreatedAt:  now(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create payment")
		return nil, err
	}

	s.logger.Info().Str("payment_id", p.ID).Str("employee_id", p.EmployeeID).Msg("payment created")
	return p, nil
}

func (s *paymentService) Update(ctx context.Context, caller domain.Caller, id string, input ports.UpdatePaymentInput) (*domain.Payment, error) {
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.PaymentUpdate, id, s.resolve(id))
	if err != nil {
		return nil, err
	}
	if input.Amount == nil && input.Currency == nil && input.Status == nil && input.Date == nil {
		return nil, domain.ErrNoUpdates
	}

	p := facts.Payment
	if input.Amount != nil {
		if err := checkAmount(*input.Amount); err != nil {
			return nil, err
		}
		p.Amount = *input.Amount
	}
	if input.Currency != nil {
		if !input.Currency.Valid() {
			return nil, domain.ErrInvalidCurrency
		}
		p.Currency = *input.Currency
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		p.Status = *input.Status
	}
	if input.Date != nil {
		p.Date = dateOrToday(*input.Date)
	}

	if err := s.payments.Update(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("payment_id", id).Msg("failed to update payment")
		return nil, err
	}
	return p, nil
}

func (s *paymentService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.PaymentDelete, id, s.resolve(id)); err != nil {
		return err
	}
	return s.payments.Delete(ctx, id)
}

func (s *paymentService) resolve(id string) authz.ResolveFunc {
	return func(ctx context.Context) (authz.Facts, error) {
		p, err := s.payments.FindByID(ctx, id)
		if err != nil {
			return authz.Facts{}, err
		}
		return authz.Facts{Payment: p}, nil
	}
}

type revenueService struct {
	revenues ports.RevenueRepository
	refs     refs
	guard    *authz.Guard
	logger   zerolog.Logger
}

// NewRevenueService returns a RevenueService implementation. Revenues are an
// admin-only resource.
func NewRevenueService(
	revenues ports.RevenueRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	guard *authz.Guard,
	logger zerolog.Logger,
) ports.RevenueService {
	return &revenueService{
		revenues: revenues,
		refs:     refs{users: users, projects: projects},
		guard:    guard,
		logger:   logger,
	}
}

func (s *revenueService) List(ctx context.Context, caller domain.Caller) ([]*domain.Revenue, error) {
	if err := s.guard.Authorize(ctx, caller, authz.RevenueList, authz.Facts{}); err != nil {
		return nil, err
	}
	return s.revenues.List(ctx)
}

func (s *revenueService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Revenue, error) {
	if err := s.guard.Authorize(ctx, caller, authz.RevenueRead, authz.Facts{}); err != nil {
		return nil, err
	}
	return s.revenues.FindByID(ctx, id)
}

func (s *revenueService) Create(ctx context.Context, caller domain.Caller, input ports.CreateRevenueInput) (*domain.Revenue, error) {
	if err := s.guard.Authorize(ctx, caller, authz.RevenueCreate, authz.Facts{}); err != nil {
		return nil, err
	}
	if err := s.refs.userWithRole(ctx, "clientId", input.ClientID, domain.RoleClient); err != nil {
		return nil, err
	}
	if err := s.refs.project(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if err := checkAmount(input.Amount); err != nil {
		return nil, err
	}
	currency := input.Currency
	if currency == "" {
		currency = domain.CurrencyUSD
	}
	if !currency.Valid() {
		return nil, domain.ErrInvalidCurrency
	}

	r := &domain.Revenue{
		ID:           newID(),
		ClientID:     input.ClientID,
		ProjectID:    input.ProjectID,
		Amount:       input.Amount,
		Currency:     currency,
		Status:       domain.RevenuePending,
		DateReceived: dateOrToday(input.DateReceived),
		CreatedAt:    now(),
	}
	if err := s.revenues.Create(ctx, r); err != nil {
		s.logger.Error().Err(err).Msg("failed to create revenue")
		return nil, err
	}

	s.logger.Info().Str("revenue_id", r.ID).Str("client_id", r.ClientID).Msg("revenue created")
	return r, nil
}

func (s *revenueService) Update(ctx context.Context, caller domain.Caller, id string, input ports.UpdateRevenueInput) (*domain.Revenue, error) {
	if err := s.guard.Authorize(ctx, caller, authz.RevenueUpdate, authz.Facts{}); err != nil {
		return nil, err
	}
	if input.Amount == nil && input.Currency == nil && input.Status == nil && input.DateReceived == nil {
		return nil, domain.ErrNoUpdates
	}

	r, err := s.revenues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Amount != nil {
		if err := checkAmount(*input.Amount); err != nil {
			return nil, err
		}
		r.Amount = *input.Amount
	}
	if input.Currency != nil {
		if !input.Currency.Valid() {
			return nil, domain.ErrInvalidCurrency
		}
		r.Currency = *input.Currency
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		r.Status = *input.Status
	}
	if input.DateReceived != nil {
		r.DateReceived = dateOrToday(*input.DateReceived)
	}

	if err := s.revenues.Update(ctx, r); err != nil {
		s.logger.Error().Err(err).Str("revenue_id", id).Msg("failed to update revenue")
		return nil, err
	}
	return r, nil
}

func (s *revenueService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if err := s.guard.Authorize(ctx, caller, authz.RevenueDelete, authz.Facts{}); err != nil {
		return err
	}
	return s.revenues.Delete(ctx, id)
}

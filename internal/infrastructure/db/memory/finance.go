package memory

import (
	"context"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

// PaymentRepository implements ports.PaymentRepository.
type PaymentRepository struct{ s *Store }

func (r *PaymentRepository) Create(_ context.Context, p *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *p
	r.s.payments[p.ID] = &clone
	return nil
}

func (r *PaymentRepository) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *PaymentRepository) List(_ context.Context, f ports.PaymentFilter) ([]*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Payment{}
	for _, p := range r.s.payments {
		if f.EmployeeID != "" && p.EmployeeID != f.EmployeeID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	newestFirst(out, func(p *domain.Payment) (time.Time, string) { return p.CreatedAt, p.ID })
	return out, nil
}

func (r *PaymentRepository) Update(_ context.Context, p *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.payments[p.ID]; !ok {
		return domain.ErrPaymentNotFound
	}
	clone := *p
	r.s.payments[p.ID] = &clone
	return nil
}

func (r *PaymentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(r.s.payments, id)
	return nil
}

// RevenueRepository implements ports.RevenueRepository.
type RevenueRepository struct{ s *Store }

func (r *RevenueRepository) Create(_ context.Context, rev *domain.Revenue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *rev
	r.s.revenues[rev.ID] = &clone
	return nil
}

func (r *RevenueRepository) FindByID(_ context.Context, id string) (*domain.Revenue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rev, ok := r.s.revenues[id]
	if !ok {
		return nil, domain.ErrRevenueNotFound
	}
	clone := *rev
	return &clone, nil
}

func (r *RevenueRepository) List(_ context.Context) ([]*domain.Revenue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Revenue, 0, len(r.s.revenues))
	for _, rev := range r.s.revenues {
		clone := *rev
		out = append(out, &clone)
	}
	newestFirst(out, func(r *domain.Revenue) (time.Time, string) { return r.CreatedAt, r.ID })
	return out, nil
}

func (r *RevenueRepository) Update(_ context.Context, rev *domain.Revenue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.revenues[rev.ID]; !ok {
		return domain.ErrRevenueNotFound
	}
	clone := *rev
	r.s.revenues[rev.ID] = &clone
	return nil
}

func (r *RevenueRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.revenues[id]; !ok {
		return domain.ErrRevenueNotFound
	}
	delete(r.s.revenues, id)
	return nil
}

// AuditRepository implements ports.AuditRepository.
type AuditRepository struct{ s *Store }

func (r *AuditRepository) Insert(_ context.Context, ev *domain.AuditEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.audit = append(r.s.audit, *ev)
	return nil
}

// Events returns a copy of the recorded audit trail in insertion order.
func (r *AuditRepository) Events() []domain.AuditEvent {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append([]domain.AuditEvent(nil), r.s.audit...)
}

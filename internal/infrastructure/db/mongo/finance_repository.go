package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

const (
	collectionPayments = "payments"
	collectionRevenues = "revenues"
	collectionAudit    = "audit_events"
)

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return insertOne(ctx, r.col, p)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	return findOne[domain.Payment](ctx, r.col, idFilter(id), domain.ErrPaymentNotFound)
}

func (r *PaymentRepository) List(ctx context.Context, f ports.PaymentFilter) ([]*domain.Payment, error) {
	filter := bson.M{}
	if f.EmployeeID != "" {
		filter["employee_id"] = f.EmployeeID
	}
	return findAll[domain.Payment](ctx, r.col, filter, newestFirst())
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	return replaceByID(ctx, r.col, p.ID, p, domain.ErrPaymentNotFound)
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrPaymentNotFound)
}

type RevenueRepository struct {
	col *mongo.Collection
}

func NewRevenueRepository(db *mongo.Database) *RevenueRepository {
	return &RevenueRepository{col: db.Collection(collectionRevenues)}
}

func (r *RevenueRepository) Create(ctx context.Context, rev *domain.Revenue) error {
	return insertOne(ctx, r.col, rev)
}

func (r *RevenueRepository) FindByID(ctx context.Context, id string) (*domain.Revenue, error) {
	return findOne[domain.Revenue](ctx, r.col, idFilter(id), domain.ErrRevenueNotFound)
}

func (r *RevenueRepository) List(ctx context.Context) ([]*domain.Revenue, error) {
	return findAll[domain.Revenue](ctx, r.col, bson.M{}, newestFirst())
}

func (r *RevenueRepository) Update(ctx context.Context, rev *domain.Revenue) error {
	return replaceByID(ctx, r.col, rev.ID, rev, domain.ErrRevenueNotFound)
}

func (r *RevenueRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrRevenueNotFound)
}

// AuditRepository appends authorization events to the audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

func (r *AuditRepository) Insert(ctx context.Context, ev *domain.AuditEvent) error {
	return insertOne(ctx, r.col, ev)
}

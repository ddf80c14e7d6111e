package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Create inserts a user. The unique email index turns a second signup for
// the same address into domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	doc := *u
	doc.Email = domain.NormalizeEmail(u.Email)
	if err := insertOne(ctx, r.col, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, idFilter(id), domain.ErrUserNotFound)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"email": domain.NormalizeEmail(email)}, domain.ErrUserNotFound)
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return findAll[domain.User](ctx, r.col, bson.M{}, newestFirst())
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	doc := *u
	doc.Email = domain.NormalizeEmail(u.Email)
	if err := replaceByID(ctx, r.col, u.ID, &doc, domain.ErrUserNotFound); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

const (
	collectionTasks    = "tasks"
	collectionComments = "comments"
)

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return insertOne(ctx, r.col, t)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	return findOne[domain.Task](ctx, r.col, idFilter(id), domain.ErrTaskNotFound)
}

// ListByProject returns the board order: order ascending, newest first on ties.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})
	return findAll[domain.Task](ctx, r.col, bson.M{"project_id": projectID}, opts)
}

func (r *TaskRepository) MaxOrder(ctx context.Context, projectID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var top struct {
		Order int `bson:"order"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "order", Value: -1}}).
		SetProjection(bson.M{"order": 1})
	err := r.col.FindOne(ctx, bson.M{"project_id": projectID}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return top.Order, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	return replaceByID(ctx, r.col, t.ID, t, domain.ErrTaskNotFound)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrTaskNotFound)
}

func (r *TaskRepository) IDsByProjects(ctx context.Context, projectIDs []string) ([]string, error) {
	if len(projectIDs) == 0 {
		return []string{}, nil
	}
	ids, err := distinctStrings(ctx, r.col, "_id", bson.M{"project_id": in(projectIDs)})
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *TaskRepository) DeleteByProjects(ctx context.Context, projectIDs []string) error {
	if len(projectIDs) == 0 {
		return nil
	}
	return deleteMany(ctx, r.col, bson.M{"project_id": in(projectIDs)})
}

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return insertOne(ctx, r.col, c)
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return findAll[domain.Comment](ctx, r.col, bson.M{"task_id": taskID}, opts)
}

func (r *CommentRepository) DeleteByTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return deleteMany(ctx, r.col, bson.M{"task_id": in(taskIDs)})
}

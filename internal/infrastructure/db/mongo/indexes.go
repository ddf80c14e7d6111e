package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

var (
	_ ports.UserRepository      = (*UserRepository)(nil)
	_ ports.WorkspaceRepository = (*WorkspaceRepository)(nil)
	_ ports.ProjectRepository   = (*ProjectRepository)(nil)
	_ ports.TaskRepository      = (*TaskRepository)(nil)
	_ ports.CommentRepository   = (*CommentRepository)(nil)
	_ ports.PaymentRepository   = (*PaymentRepository)(nil)
	_ ports.RevenueRepository   = (*RevenueRepository)(nil)
	_ ports.AuditRepository     = (*AuditRepository)(nil)
)

func asc(field string) bson.D { return bson.D{{Key: field, Value: 1}} }

// indexPlan lists the indexes each collection needs.
var indexPlan = map[string][]mongo.IndexModel{
	collectionUsers: {
		{Keys: asc("email"), Options: options.Index().SetUnique(true)},
	},
	collectionWorkspaces: {
		{Keys: asc("client_id")},
	},
	collectionProjects: {
		{Keys: asc("workspace_id")},
		{Keys: asc("assigned_employee_ids")},
	},
	collectionTasks: {
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "order", Value: 1}}},
	},
	collectionComments: {
		{Keys: asc("task_id")},
	},
	collectionPayments: {
		{Keys: asc("employee_id")},
	},
	collectionAudit: {
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
	},
}

// EnsureIndexes creates the indexes of every collection. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexBuildTimeout)
	defer cancel()

	for name, models := range indexPlan {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes on %s: %w", name, err)
		}
	}
	return nil
}

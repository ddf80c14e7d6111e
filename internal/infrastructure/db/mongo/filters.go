package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

func idFilter(id string) bson.M { return bson.M{"_id": id} }

// in matches any of ids. An empty slice matches nothing.
func in(ids []string) bson.M {
	if ids == nil {
		ids = []string{}
	}
	return bson.M{"$in": ids}
}

// newestFirst mirrors the in-memory ordering: created_at descending, id
// ascending on ties.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
}

func workspaceFilter(f ports.WorkspaceFilter) bson.M {
	filter := bson.M{}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.IDs != nil {
		filter["_id"] = in(f.IDs)
	}
	return filter
}

// projectFilter matches EmployeeID against the assigned_employee_ids array.
func projectFilter(f ports.ProjectFilter) bson.M {
	filter := bson.M{}
	switch {
	case f.WorkspaceID != "" && f.WorkspaceIDs != nil:
		filter["$and"] = bson.A{
			bson.M{"workspace_id": f.WorkspaceID},
			bson.M{"workspace_id": in(f.WorkspaceIDs)},
		}
	case f.WorkspaceID != "":
		filter["workspace_id"] = f.WorkspaceID
	case f.WorkspaceIDs != nil:
		filter["workspace_id"] = in(f.WorkspaceIDs)
	}
	if f.EmployeeID != "" {
		filter["assigned_employee_ids"] = f.EmployeeID
	}
	return filter
}

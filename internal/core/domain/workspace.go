package domain

import "time"

// Workspace is a client-scoped container of projects. Exactly one client owns it.
type Workspace struct {
	ID        string    `json:"id"        bson:"_id"`
	Name      string    `json:"name"      bson:"name"`
	ClientID  string    `json:"clientId"  bson:"client_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Project belongs to exactly one workspace and is staffed by a set of employees.
type Project struct {
	ID                  string    `json:"id"                  bson:"_id"`
	WorkspaceID         string    `json:"workspaceId"         bson:"workspace_id"`
	Name                string    `json:"name"                bson:"name"`
	Description         string    `json:"description"         bson:"description"`
	AssignedEmployeeIDs []string  `json:"assignedEmployeeIds" bson:"assigned_employee_ids"`
	CreatedAt           time.Time `json:"createdAt"           bson:"created_at"`
}

// HasEmployee reports whether employeeID is in the project's assignment set.
func (p *Project) HasEmployee(employeeID string) bool {
	if p == nil || employeeID == "" {
		return false
	}
	for _, id := range p.AssignedEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

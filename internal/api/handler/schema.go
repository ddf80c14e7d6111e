package handler

import "github.com/rusafhasan/agencymanagement/internal/core/domain"

// --- Auth ---

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updateProfileRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	CompanyName    *string `json:"companyName"`
	ProfilePicture *string `json:"profilePicture"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type usersResponse struct {
	Users []*domain.User `json:"users"`
}

// --- Users ---

type updateUserRequest struct {
	Role     *string `json:"role"`
	Disabled *bool   `json:"disabled"`
}

// --- Workspaces ---

type createWorkspaceRequest struct {
	Name     string `json:"name"     validate:"required"`
	ClientID string `json:"clientId" validate:"required"`
}

type renameWorkspaceRequest struct {
	Name string `json:"name" validate:"required"`
}

type workspaceResponse struct {
	Workspace *domain.Workspace `json:"workspace"`
}

type workspacesResponse struct {
	Workspaces []*domain.Workspace `json:"workspaces"`
}

// --- Projects ---

type createProjectRequest struct {
	WorkspaceID string `json:"workspaceId" validate:"required"`
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name                *string   `json:"name"`
	Description         *string   `json:"description"`
	AssignedEmployeeIDs *[]string `json:"assignedEmployeeIds"`
}

type projectResponse struct {
	Project *domain.Project `json:"project"`
}

type projectsResponse struct {
	Projects []*domain.Project `json:"projects"`
}

// --- Tasks & comments ---

type createTaskRequest struct {
	ProjectID   string `json:"projectId"   validate:"required"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
	AssignedTo  nullable[string] `json:"assignedTo"`
	DueDate     nullable[string] `json:"dueDate"`
	Order       *int             `json:"order"`
}

type taskResponse struct {
	Task *domain.Task `json:"task"`
}

type tasksResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type commentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

type commentsResponse struct {
	Comments []*domain.Comment `json:"comments"`
}

// --- Payments & revenues ---

type createPaymentRequest struct {
	EmployeeID string  `json:"employeeId" validate:"required"`
	ProjectID  string  `json:"projectId"  validate:"required"`
	Amount     float64 `json:"amount"     validate:"gt=0"`
	Currency   string  `json:"currency"`
	Date       string  `json:"date"`
}

type updatePaymentRequest struct {
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
	Status   *string  `json:"status"`
	Date     *string  `json:"date"`
}

type paymentResponse struct {
	Payment *domain.Payment `json:"payment"`
}

type paymentsResponse struct {
	Payments []*domain.Payment `json:"payments"`
}

type createRevenueRequest struct {
	ClientID     string  `json:"clientId"     validate:"required"`
	ProjectID    string  `json:"projectId"    validate:"required"`
	Amount       float64 `json:"amount"       validate:"gt=0"`
	Currency     string  `json:"currency"`
	DateReceived string  `json:"dateReceived"`
}

type updateRevenueRequest struct {
	Amount       *float64 `json:"amount"`
	Currency     *string  `json:"currency"`
	Status       *string  `json:"status"`
	DateReceived *string  `json:"dateReceived"`
}

type revenueResponse struct {
	Revenue *domain.Revenue `json:"revenue"`
}

type revenuesResponse struct {
	Revenues []*domain.Revenue `json:"revenues"`
}

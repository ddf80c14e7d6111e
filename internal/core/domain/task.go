package domain

import "time"

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

const (
	TaskNotStarted  TaskStatus = "not-started"
	TaskInProgress  TaskStatus = "in-progress"
	TaskNeedsReview TaskStatus = "needs-review"
	TaskCompleted   TaskStatus = "completed"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskNeedsReview, TaskCompleted:
		return true
	}
	return false
}

// Task belongs to exactly one project. Order gives a stable display position
// within the project.
type Task struct {
	ID          string     `json:"id"          bson:"_id"`
	ProjectID   string     `json:"projectId"   bson:"project_id"`
	Title       string     `json:"title"       bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      TaskStatus `json:"status"      bson:"status"`
	AssignedTo  *string    `json:"assignedTo"  bson:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"dueDate"     bson:"due_date,omitempty"`
	Order       int        `json:"order"       bson:"order"`
	CreatedAt   time.Time  `json:"createdAt"   bson:"created_at"`
}

// Comment is a note left on a task by any identity with access to it.
type Comment struct {
	ID         string    `json:"id"         bson:"_id"`
	TaskID     string    `json:"taskId"     bson:"task_id"`
	AuthorID   string    `json:"authorId"   bson:"author_id"`
	AuthorName string    `json:"authorName" bson:"author_name"`
	Content    string    `json:"content"    bson:"content"`
	CreatedAt  time.Time `json:"createdAt"  bson:"created_at"`
}

package domain

import "time"

// TodoStatus represents the completion state of a todo.
type TodoStatus string

const (
	StatusNotStarted TodoStatus = "Not Started"
	StatusInProgress TodoStatus = "In Progress"
	StatusDone       TodoStatus = "Done"
)

// IsValid checks if the status is one of the allowed values.
func (s TodoStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// TodoPriority represents the priority level of a todo.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "Low"
	PriorityMedium TodoPriority = "Medium"
	PriorityHigh   TodoPriority = "High"
	PriorityUrgent TodoPriority = "Urgent"
)

// IsValid checks if the priority is one of the allowed values.
func (p TodoPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// TodoCategory represents the work category of a todo.
type TodoCategory string

const (
	CategoryBugFixing  TodoCategory = "Bug Fixing"
	CategoryDeveloping TodoCategory = "Developing"
	CategoryTesting    TodoCategory = "Testing"
	CategoryDeployment TodoCategory = "Deployment"
)

// IsValid checks if the category is one of the allowed values.
func (c TodoCategory) IsValid() bool {
	switch c {
	case CategoryBugFixing, CategoryDeveloping, CategoryTesting, CategoryDeployment:
		return true
	default:
		return false
	}
}

// Todo represents a unit of work.
type Todo struct {
	ID           string
	Title        string
	Description  string
	Priority     TodoPriority
	Status       TodoStatus
	Category     TodoCategory
	DueDate      *time.Time
	CreatedBy    string
	AssignedTo   string
	LastEditedBy string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCreatedBy checks if the todo was created by the given user.
func (t *Todo) IsCreatedBy(userID string) bool {
	return t.CreatedBy == userID
}

// IsAssignedTo checks if the todo is assigned to the given user.
func (t *Todo) IsAssignedTo(userID string) bool {
	return t.AssignedTo == userID
}

// TodoState is a stringified snapshot of the tracked fields of a todo,
// captured before and after a mutation for audit diffing.
type TodoState struct {
	Status      string
	AssignedTo  string
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     string
}

// Snapshot captures the current tracked-field state of the todo.
func (t *Todo) Snapshot() TodoState {
	var dueDate string
	if t.DueDate != nil {
		dueDate = t.DueDate.UTC().Format(time.RFC3339)
	}
	return TodoState{
		Status:      string(t.Status),
		AssignedTo:  t.AssignedTo,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		DueDate:     dueDate,
	}
}

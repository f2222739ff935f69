package dto

import "time"

// CreateTodoRequest represents the request body for POST /todos.
type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
}

// UpdateTodoRequest represents the request body for PUT /todos/:id. All
// fields are optional; absent keys are left untouched (patch semantics).
type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	Category    *string    `json:"category"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *string    `json:"assignedTo"`
}

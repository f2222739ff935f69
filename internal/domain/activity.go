package domain

import "time"

// Action is the semantic label classifying a mutation in the audit trail.
type Action string

const (
	ActionTodoCreated      Action = "TODO_CREATED"
	ActionStatusChanged    Action = "STATUS_CHANGED"
	ActionTodoAssigned     Action = "TODO_ASSIGNED"
	ActionTodoUpdated      Action = "TODO_UPDATED"
	ActionTodoDeleted      Action = "TODO_DELETED"
	ActionMarkAllCompleted Action = "MARK_ALL_COMPLETED"
)

// Changes holds the before/after field values of a mutation, restricted to
// the fields that actually changed.
type Changes struct {
	Before map[string]string `json:"before"`
	After  map[string]string `json:"after"`
}

// ActivityEntry is an immutable audit record. Entries are appended once and
// never updated or deleted; TodoID is kept even after the todo itself is gone.
type ActivityEntry struct {
	ID        string
	Actor     string
	ActorRole Role // role snapshot at time of action
	Action    Action
	TodoID    *string // nil for batch actions
	TodoOwner *string // assignee of the affected todo at time of action
	Changes   *Changes
	CreatedAt time.Time
}

// IsBatch returns true if the entry represents a batch action with no
// single affected todo.
func (e *ActivityEntry) IsBatch() bool {
	return e.TodoID == nil
}

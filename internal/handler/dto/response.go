package dto

import (
	"time"

	"github.com/todoexcellence/todoex/internal/repository"
)

// UserRef is an identity reference resolved to a display name.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TodoResponse represents a todo with resolved user references.
type TodoResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	Category     string     `json:"category"`
	DueDate      *time.Time `json:"dueDate"`
	CreatedBy    UserRef    `json:"createdBy"`
	AssignedTo   UserRef    `json:"assignedTo"`
	LastEditedBy UserRef    `json:"lastEditedBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TodosListResponse represents the response for GET /todos.
type TodosListResponse struct {
	Todos []TodoResponse `json:"todos"`
	Total int            `json:"total"`
}

// ChangesInfo mirrors the before/after diff of an audit entry.
type ChangesInfo struct {
	Before map[string]string `json:"before"`
	After  map[string]string `json:"after"`
}

// ActivityEntryResponse represents one audit entry.
type ActivityEntryResponse struct {
	ID        string       `json:"id"`
	Actor     string       `json:"actor"`
	ActorName string       `json:"actorName"`
	ActorRole string       `json:"actorRole"`
	Action    string       `json:"action"`
	TodoID    *string      `json:"todoId"`
	TodoOwner *string      `json:"todoOwner"`
	Changes   *ChangesInfo `json:"changes"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ActivityListResponse represents the response for GET /activity.
type ActivityListResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
	Total   int                     `json:"total"`
}

// UsersListResponse represents the response for GET /users.
type UsersListResponse struct {
	Users []UserRef `json:"users"`
}

// ToTodoResponse converts a joined todo row to TodoResponse.
func ToTodoResponse(t *repository.TodoWithNames) TodoResponse {
	return TodoResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		Category:     string(t.Category),
		DueDate:      t.DueDate,
		CreatedBy:    UserRef{ID: t.CreatedBy, Name: t.CreatedByName},
		AssignedTo:   UserRef{ID: t.AssignedTo, Name: t.AssignedToName},
		LastEditedBy: UserRef{ID: t.LastEditedBy, Name: t.LastEditedByName},
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToActivityEntryResponse converts a joined activity row to its response form.
func ToActivityEntryResponse(e *repository.ActivityEntryWithActor) ActivityEntryResponse {
	var changes *ChangesInfo
	if e.Changes != nil {
		changes = &ChangesInfo{
			Before: e.Changes.Before,
			After:  e.Changes.After,
		}
	}

	return ActivityEntryResponse{
		ID:        e.ID,
		Actor:     e.Actor,
		ActorName: e.ActorName,
		ActorRole: string(e.ActorRole),
		Action:    string(e.Action),
		TodoID:    e.TodoID,
		TodoOwner: e.TodoOwner,
		Changes:   changes,
		CreatedAt: e.CreatedAt,
	}
}

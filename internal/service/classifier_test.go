package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todoexcellence/todoex/internal/domain"
	"github.com/todoexcellence/todoex/internal/service"
)

func TestClassify_StatusChange(t *testing.T) {
	before := domain.TodoState{Status: "Not Started", Title: "A"}
	after := domain.TodoState{Status: "Done", Title: "A"}

	action, changes, ok := service.Classify(before, after)

	require.True(t, ok)
	assert.Equal(t, domain.ActionStatusChanged, action)
	assert.Equal(t, map[string]string{"status": "Not Started"}, changes.Before)
	assert.Equal(t, map[string]string{"status": "Done"}, changes.After)
}

func TestClassify_StatusOutranksOtherEdits(t *testing.T) {
	before := domain.TodoState{Status: "Not Started", Title: "Old title", Priority: "Low"}
	after := domain.TodoState{Status: "In Progress", Title: "New title", Priority: "High"}

	action, changes, ok := service.Classify(before, after)

	require.True(t, ok)
	assert.Equal(t, domain.ActionStatusChanged, action)
	// Only the status delta is recorded, co-occurring edits are dropped
	assert.Equal(t, map[string]string{"status": "Not Started"}, changes.Before)
	assert.Equal(t, map[string]string{"status": "In Progress"}, changes.After)
}

func TestClassify_Reassignment(t *testing.T) {
	before := domain.TodoState{Status: "Done", AssignedTo: "user-1"}
	after := domain.TodoState{Status: "Done", AssignedTo: "user-2"}

	action, changes, ok := service.Classify(before, after)

	require.True(t, ok)
	assert.Equal(t, domain.ActionTodoAssigned, action)
	assert.Equal(t, map[string]string{"assignedTo": "user-1"}, changes.Before)
	assert.Equal(t, map[string]string{"assignedTo": "user-2"}, changes.After)
}

func TestClassify_ReassignmentRequiresBothSides(t *testing.T) {
	// An assignment appearing from nowhere is not a reassignment event
	before := domain.TodoState{Status: "Done", AssignedTo: ""}
	after := domain.TodoState{Status: "Done", AssignedTo: "user-2"}

	_, _, ok := service.Classify(before, after)

	assert.False(t, ok)
}

func TestClassify_TrackedFieldEdits(t *testing.T) {
	before := domain.TodoState{
		Status:      "Done",
		AssignedTo:  "user-1",
		Title:       "Old",
		Description: "Same",
		Priority:    "Low",
		Category:    "Testing",
		DueDate:     "2026-01-01T00:00:00Z",
	}
	after := domain.TodoState{
		Status:      "Done",
		AssignedTo:  "user-1",
		Title:       "New",
		Description: "Same",
		Priority:    "Urgent",
		Category:    "Testing",
		DueDate:     "2026-02-01T00:00:00Z",
	}

	action, changes, ok := service.Classify(before, after)

	require.True(t, ok)
	assert.Equal(t, domain.ActionTodoUpdated, action)
	assert.Equal(t, map[string]string{
		"title":    "Old",
		"priority": "Low",
		"dueDate":  "2026-01-01T00:00:00Z",
	}, changes.Before)
	assert.Equal(t, map[string]string{
		"title":    "New",
		"priority": "Urgent",
		"dueDate":  "2026-02-01T00:00:00Z",
	}, changes.After)
}

func TestClassify_NoChanges(t *testing.T) {
	state := domain.TodoState{
		Status:     "In Progress",
		AssignedTo: "user-1",
		Title:      "Same",
		Priority:   "Medium",
		Category:   "Developing",
	}

	_, _, ok := service.Classify(state, state)

	assert.False(t, ok)
}

package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/todoexcellence/todoex/internal/domain"
	"github.com/todoexcellence/todoex/internal/service"
)

var allFields = []service.Field{
	service.FieldTitle,
	service.FieldDescription,
	service.FieldPriority,
	service.FieldStatus,
	service.FieldCategory,
	service.FieldDueDate,
	service.FieldAssignedTo,
}

func TestCanEditField_Admin(t *testing.T) {
	admin := domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}

	for _, field := range allFields {
		assert.True(t, service.CanEditField(admin, field), "admin should edit %s", field)
	}
}

func TestCanEditField_User(t *testing.T) {
	user := domain.Identity{UserID: "user-1", Role: domain.RoleUser}

	for _, field := range allFields {
		want := field == service.FieldStatus
		assert.Equal(t, want, service.CanEditField(user, field), "user editing %s", field)
	}
}

func TestPermittedFields_Admin(t *testing.T) {
	admin := domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}
	todo := &domain.Todo{CreatedBy: "someone-else"}

	permitted := service.PermittedFields(admin, todo)

	assert.Len(t, permitted, len(allFields))
	for _, field := range allFields {
		assert.True(t, permitted[field], "admin should be permitted %s", field)
	}
}

func TestPermittedFields_UserCreator(t *testing.T) {
	user := domain.Identity{UserID: "user-1", Role: domain.RoleUser}
	todo := &domain.Todo{CreatedBy: "user-1"}

	permitted := service.PermittedFields(user, todo)

	assert.True(t, permitted[service.FieldStatus])
	assert.True(t, permitted[service.FieldPriority])
	assert.True(t, permitted[service.FieldDueDate])
	assert.False(t, permitted[service.FieldTitle])
	assert.False(t, permitted[service.FieldDescription])
	assert.False(t, permitted[service.FieldCategory])
	assert.False(t, permitted[service.FieldAssignedTo])
}

func TestPermittedFields_UserNonCreator(t *testing.T) {
	user := domain.Identity{UserID: "user-1", Role: domain.RoleUser}
	todo := &domain.Todo{CreatedBy: "user-2"}

	permitted := service.PermittedFields(user, todo)

	assert.True(t, permitted[service.FieldStatus])
	assert.Len(t, permitted, 1)
}

func TestIsReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		mode   string
		source string
		want   bool
	}{
		{"view mode", service.ModeView, "", true},
		{"edit mode", service.ModeEdit, "", false},
		{"edit mode from activity log", service.ModeEdit, service.SourceActivityLog, true},
		{"view mode from activity log", service.ModeView, service.SourceActivityLog, true},
		{"empty mode", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsReadOnly(tt.mode, tt.source))
		})
	}
}

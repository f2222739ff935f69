package service

import "github.com/todoexcellence/todoex/internal/domain"

// Field names a mutation request may carry. They match the JSON keys of the
// update request body.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPriority    Field = "priority"
	FieldStatus      Field = "status"
	FieldCategory    Field = "category"
	FieldDueDate     Field = "dueDate"
	FieldAssignedTo  Field = "assignedTo"
)

// allFields is the full set of recognized mutable fields.
var allFields = []Field{
	FieldTitle, FieldDescription, FieldPriority, FieldStatus,
	FieldCategory, FieldDueDate, FieldAssignedTo,
}

// fieldsByRole is the declarative authorization table: role -> editable fields.
// Admins may edit everything; plain users only the status.
var fieldsByRole = map[domain.Role][]Field{
	domain.RoleAdmin: allFields,
	domain.RoleUser:  {FieldStatus},
}

// creatorFields are additionally editable by a non-admin who created the todo.
var creatorFields = []Field{FieldStatus, FieldPriority, FieldDueDate}

func fieldSet(fields []Field) map[Field]bool {
	set := make(map[Field]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// CanEditField reports whether the identity may edit the given field,
// independent of any particular todo.
func CanEditField(identity domain.Identity, field Field) bool {
	return fieldSet(fieldsByRole[identity.Role])[field]
}

// PermittedFields resolves the exact field set the identity may touch on the
// given todo. Being the creator widens the plain-user set to status, priority
// and due date.
func PermittedFields(identity domain.Identity, todo *domain.Todo) map[Field]bool {
	if identity.IsAdmin() {
		return fieldSet(allFields)
	}
	if todo.IsCreatedBy(identity.UserID) {
		return fieldSet(creatorFields)
	}
	return fieldSet(fieldsByRole[domain.RoleUser])
}

// Interaction modes and sources for read-only checks.
const (
	ModeView          = "view"
	ModeEdit          = "edit"
	SourceActivityLog = "activity_log"
)

// IsReadOnly reports whether an interaction must not allow edits. Views
// opened from the activity log are read-only regardless of mode, so a
// historical record can never be mutated by accident.
func IsReadOnly(mode, source string) bool {
	if source == SourceActivityLog {
		return true
	}
	return mode == ModeView
}

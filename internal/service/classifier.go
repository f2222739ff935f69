package service

import "github.com/todoexcellence/todoex/internal/domain"

// Classify derives the semantic action and change record for a mutation from
// its before/after snapshots. Precedence is exclusive, first match wins:
// a status transition outranks everything, then reassignment, then any other
// tracked-field edit. Returns false when nothing changed; such a mutation
// produces no audit entry.
func Classify(before, after domain.TodoState) (domain.Action, domain.Changes, bool) {
	changes := domain.Changes{
		Before: map[string]string{},
		After:  map[string]string{},
	}

	if before.Status != after.Status {
		changes.Before[string(FieldStatus)] = before.Status
		changes.After[string(FieldStatus)] = after.Status
		return domain.ActionStatusChanged, changes, true
	}

	if before.AssignedTo != "" && after.AssignedTo != "" && before.AssignedTo != after.AssignedTo {
		changes.Before[string(FieldAssignedTo)] = before.AssignedTo
		changes.After[string(FieldAssignedTo)] = after.AssignedTo
		return domain.ActionTodoAssigned, changes, true
	}

	tracked := []struct {
		field  Field
		before string
		after  string
	}{
		{FieldTitle, before.Title, after.Title},
		{FieldDescription, before.Description, after.Description},
		{FieldPriority, before.Priority, after.Priority},
		{FieldCategory, before.Category, after.Category},
		{FieldDueDate, before.DueDate, after.DueDate},
	}

	for _, t := range tracked {
		if t.before != t.after {
			changes.Before[string(t.field)] = t.before
			changes.After[string(t.field)] = t.after
		}
	}

	if len(changes.Before) > 0 {
		return domain.ActionTodoUpdated, changes, true
	}

	return "", domain.Changes{}, false
}

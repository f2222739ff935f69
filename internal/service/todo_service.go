package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/todoexcellence/todoex/internal/domain"
	"github.com/todoexcellence/todoex/internal/repository"
)

// TodoService coordinates todo mutations, field-level authorization and the
// activity audit trail.
type TodoService struct {
	todoRepo     *repository.TodoRepository
	activityRepo *repository.ActivityRepository
	userRepo     *repository.UserRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(
	todoRepo *repository.TodoRepository,
	activityRepo *repository.ActivityRepository,
	userRepo *repository.UserRepository,
) *TodoService {
	return &TodoService{
		todoRepo:     todoRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

// logActivity appends an audit entry. Append failures are logged and
// swallowed: the audit trail is best-effort and must never block or roll
// back the task mutation it describes.
func (s *TodoService) logActivity(
	ctx context.Context,
	identity domain.Identity,
	action domain.Action,
	todoID *string,
	todoOwner *string,
	changes *domain.Changes,
) {
	entry := &domain.ActivityEntry{
		Actor:     identity.UserID,
		ActorRole: identity.Role,
		Action:    action,
		TodoID:    todoID,
		TodoOwner: todoOwner,
		Changes:   changes,
	}
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		slog.Error("activity log append failed",
			"action", action,
			"actor", identity.UserID,
			"error", err,
		)
	}
}

// CreateTodoParams holds parameters for creating a todo.
type CreateTodoParams struct {
	Title       string
	Description string
	Priority    string
	Status      string
	Category    string
	DueDate     *time.Time
	AssignedTo  *string
}

// Create creates a todo. Title and category are required; priority and
// status default when absent. The assignee defaults to the creator; only an
// admin may assign someone else at creation.
func (s *TodoService) Create(ctx context.Context, identity domain.Identity, params CreateTodoParams) (*domain.Todo, error) {
	if params.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	if params.Category == "" {
		return nil, domain.ErrCategoryRequired
	}

	priority := domain.PriorityMedium
	if params.Priority != "" {
		priority = domain.TodoPriority(params.Priority)
		if !priority.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, params.Priority)
		}
	}

	status := domain.StatusNotStarted
	if params.Status != "" {
		status = domain.TodoStatus(params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, params.Status)
		}
	}

	category := domain.TodoCategory(params.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, params.Category)
	}

	assignee := identity.UserID
	if identity.IsAdmin() && params.AssignedTo != nil {
		assignee = *params.AssignedTo
	}

	todo := &domain.Todo{
		Title:        params.Title,
		Description:  params.Description,
		Priority:     priority,
		Status:       status,
		Category:     category,
		DueDate:      params.DueDate,
		CreatedBy:    identity.UserID,
		AssignedTo:   assignee,
		LastEditedBy: identity.UserID,
	}

	todo, err := s.todoRepo.Create(ctx, todo)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, identity, domain.ActionTodoCreated, &todo.ID, &todo.AssignedTo, nil)

	slog.Info("todo created",
		"todo_id", todo.ID,
		"creator", identity.UserID,
		"assignee", todo.AssignedTo,
	)

	return todo, nil
}

// TodoPatch is a partial update: only non-nil fields are applied.
type TodoPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	Category    *string
	DueDate     *time.Time
	AssignedTo  *string
}

// Fields returns the names of the fields present in the patch.
func (p TodoPatch) Fields() []Field {
	var fields []Field
	if p.Title != nil {
		fields = append(fields, FieldTitle)
	}
	if p.Description != nil {
		fields = append(fields, FieldDescription)
	}
	if p.Priority != nil {
		fields = append(fields, FieldPriority)
	}
	if p.Status != nil {
		fields = append(fields, FieldStatus)
	}
	if p.Category != nil {
		fields = append(fields, FieldCategory)
	}
	if p.DueDate != nil {
		fields = append(fields, FieldDueDate)
	}
	if p.AssignedTo != nil {
		fields = append(fields, FieldAssignedTo)
	}
	return fields
}

// validate checks the enumerated fields of the patch against their closed
// value sets.
func (p TodoPatch) validate() error {
	if p.Status != nil && !domain.TodoStatus(*p.Status).IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *p.Status)
	}
	if p.Priority != nil && !domain.TodoPriority(*p.Priority).IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *p.Priority)
	}
	if p.Category != nil && !domain.TodoCategory(*p.Category).IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, *p.Category)
	}
	return nil
}

// apply copies the present patch fields onto the todo.
func (p TodoPatch) apply(todo *domain.Todo) {
	if p.Title != nil {
		todo.Title = *p.Title
	}
	if p.Description != nil {
		todo.Description = *p.Description
	}
	if p.Priority != nil {
		todo.Priority = domain.TodoPriority(*p.Priority)
	}
	if p.Status != nil {
		todo.Status = domain.TodoStatus(*p.Status)
	}
	if p.Category != nil {
		todo.Category = domain.TodoCategory(*p.Category)
	}
	if p.DueDate != nil {
		todo.DueDate = p.DueDate
	}
	if p.AssignedTo != nil {
		todo.AssignedTo = *p.AssignedTo
	}
}

// Update applies a patch to a todo under the field authorization policy.
// The whole patch is rejected if any present field falls outside the
// identity's permitted set; there is no partial application. On success the
// mutation is classified and, if anything changed, one audit entry is
// appended.
func (s *TodoService) Update(ctx context.Context, identity domain.Identity, todoID string, patch TodoPatch) (*domain.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}

	before := todo.Snapshot()

	permitted := PermittedFields(identity, todo)
	for _, field := range patch.Fields() {
		if !permitted[field] {
			return nil, fmt.Errorf("%w: field %q", domain.ErrForbiddenField, field)
		}
	}

	if err := patch.validate(); err != nil {
		return nil, err
	}

	patch.apply(todo)
	todo.LastEditedBy = identity.UserID

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}

	after := todo.Snapshot()

	if action, changes, ok := Classify(before, after); ok {
		s.logActivity(ctx, identity, action, &todo.ID, &todo.AssignedTo, &changes)

		slog.Info("todo updated",
			"todo_id", todo.ID,
			"actor", identity.UserID,
			"action", action,
		)
	}

	return todo, nil
}

// Delete removes a todo. Only an admin or the todo's creator may delete it.
// The owner is captured before removal and the final audit entry keeps the
// todo id even though it no longer resolves.
func (s *TodoService) Delete(ctx context.Context, identity domain.Identity, todoID string) error {
	todo, err := s.todoRepo.GetByID(ctx, todoID)
	if err != nil {
		return err
	}

	if !identity.IsAdmin() && !todo.IsCreatedBy(identity.UserID) {
		return fmt.Errorf("%w: only the creator or an admin may delete todo %s", domain.ErrPermissionDenied, todoID)
	}

	owner := todo.AssignedTo

	if err := s.todoRepo.Delete(ctx, todoID); err != nil {
		return err
	}

	s.logActivity(ctx, identity, domain.ActionTodoDeleted, &todoID, &owner, nil)

	slog.Info("todo deleted",
		"todo_id", todoID,
		"actor", identity.UserID,
	)

	return nil
}

// MarkAllCompleted marks every unfinished todo as Done in one bulk update.
// Non-admin callers only complete their own todos. The whole batch is logged
// as a single entry with no todo reference, a deliberate trade-off favoring
// a lightweight audit trail over per-item granularity.
func (s *TodoService) MarkAllCompleted(ctx context.Context, identity domain.Identity) (int64, error) {
	var assignedTo *string
	var todoOwner *string
	if !identity.IsAdmin() {
		assignedTo = &identity.UserID
		todoOwner = &identity.UserID
	}

	count, err := s.todoRepo.MarkAllCompleted(ctx, assignedTo, identity.UserID)
	if err != nil {
		return 0, err
	}

	s.logActivity(ctx, identity, domain.ActionMarkAllCompleted, nil, todoOwner, &domain.Changes{
		After: map[string]string{string(FieldStatus): string(domain.StatusDone)},
	})

	slog.Info("all todos marked completed",
		"actor", identity.UserID,
		"affected", count,
	)

	return count, nil
}

// ListActivity returns the audit entries visible to the identity, newest
// first. Plain users only see entries for todos they own.
func (s *TodoService) ListActivity(ctx context.Context, identity domain.Identity) ([]*repository.ActivityEntryWithActor, error) {
	return s.activityRepo.ListFor(ctx, identity)
}

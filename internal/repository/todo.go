package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/todoexcellence/todoex/internal/domain"
)

// todoColumns is the shared list of columns for todo queries.
var todoColumns = []string{
	"id", "title", "description", "priority", "status", "category", "due_date",
	"created_by", "assigned_to", "last_edited_by", "created_at", "updated_at",
}

// TodoRepository handles database operations for todos.
type TodoRepository struct {
	pool *pgxpool.Pool
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

// scanTodo scans a single row into a Todo struct.
func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var todo domain.Todo
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Priority,
		&todo.Status,
		&todo.Category,
		&todo.DueDate,
		&todo.CreatedBy,
		&todo.AssignedTo,
		&todo.LastEditedBy,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &todo, nil
}

// GetByID retrieves a todo by ID.
func (r *TodoRepository) GetByID(ctx context.Context, todoID string) (*domain.Todo, error) {
	query, args, err := psql.
		Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": todoID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for todo: %w", err)
	}

	return scanTodo(r.pool.QueryRow(ctx, query, args...))
}

// TodoWithNames is a todo joined with the display names of its user references.
type TodoWithNames struct {
	domain.Todo
	CreatedByName    string
	AssignedToName   string
	LastEditedByName string
}

// todoWithNamesColumns prefixes the shared columns with the todos alias and
// appends the joined user names.
func todoWithNamesColumns() []string {
	cols := make([]string, 0, len(todoColumns)+3)
	for _, c := range todoColumns {
		cols = append(cols, "t."+c)
	}
	return append(cols, "cu.name", "au.name", "eu.name")
}

// scanTodoWithNames scans a joined row into a TodoWithNames struct.
func scanTodoWithNames(row pgx.Row) (*TodoWithNames, error) {
	var result TodoWithNames
	err := row.Scan(
		&result.ID,
		&result.Title,
		&result.Description,
		&result.Priority,
		&result.Status,
		&result.Category,
		&result.DueDate,
		&result.CreatedBy,
		&result.AssignedTo,
		&result.LastEditedBy,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.CreatedByName,
		&result.AssignedToName,
		&result.LastEditedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo with names: %w", err)
	}
	return &result, nil
}

// joinedTodoQuery builds the base select over todos joined with user names.
func joinedTodoQuery() sq.SelectBuilder {
	return psql.
		Select(todoWithNamesColumns()...).
		From("todos t").
		Join("users cu ON cu.id = t.created_by").
		Join("users au ON au.id = t.assigned_to").
		Join("users eu ON eu.id = t.last_edited_by")
}

// GetByIDWithNames retrieves a todo by ID with user display names resolved.
func (r *TodoRepository) GetByIDWithNames(ctx context.Context, todoID string) (*TodoWithNames, error) {
	query, args, err := joinedTodoQuery().
		Where(sq.Eq{"t.id": todoID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDWithNames query for todo: %w", err)
	}

	return scanTodoWithNames(r.pool.QueryRow(ctx, query, args...))
}

// TodoListFilters holds the supported filters for todo listing.
type TodoListFilters struct {
	AssignedTo *string // filter by assignee
	Status     *string // filter by status
	Priority   *string // filter by priority
}

// List retrieves todos with filters, newest first, with user names resolved.
func (r *TodoRepository) List(ctx context.Context, filters TodoListFilters) ([]*TodoWithNames, error) {
	qb := joinedTodoQuery()

	if filters.AssignedTo != nil {
		qb = qb.Where(sq.Eq{"t.assigned_to": *filters.AssignedTo})
	}
	if filters.Status != nil {
		qb = qb.Where(sq.Eq{"t.status": *filters.Status})
	}
	if filters.Priority != nil {
		qb = qb.Where(sq.Eq{"t.priority": *filters.Priority})
	}

	query, args, err := qb.OrderBy("t.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var todos []*TodoWithNames
	for rows.Next() {
		todo, err := scanTodoWithNames(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return todos, nil
}

// Create inserts a new todo. Returns the todo with ID, CreatedAt, and
// UpdatedAt populated.
func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query, args, err := psql.
		Insert("todos").
		Columns(
			"title", "description", "priority", "status", "category", "due_date",
			"created_by", "assigned_to", "last_edited_by",
		).
		Values(
			todo.Title,
			todo.Description,
			todo.Priority,
			todo.Status,
			todo.Category,
			todo.DueDate,
			todo.CreatedBy,
			todo.AssignedTo,
			todo.LastEditedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for todo: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	return todo, nil
}

// Update persists the mutable fields of a todo. Last write wins; there is no
// version check on the row.
func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	query, args, err := psql.
		Update("todos").
		Set("title", todo.Title).
		Set("description", todo.Description).
		Set("priority", todo.Priority).
		Set("status", todo.Status).
		Set("category", todo.Category).
		Set("due_date", todo.DueDate).
		Set("assigned_to", todo.AssignedTo).
		Set("last_edited_by", todo.LastEditedBy).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": todo.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for todo %s: %w", todo.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

// Delete removes a todo by ID.
func (r *TodoRepository) Delete(ctx context.Context, todoID string) error {
	query, args, err := psql.
		Delete("todos").
		Where(sq.Eq{"id": todoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for todo %s: %w", todoID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

// MarkAllCompleted sets every todo with a status other than Done to Done in a
// single multi-row update. When assignedTo is non-nil the update is limited to
// that assignee's todos. Returns the number of affected rows.
func (r *TodoRepository) MarkAllCompleted(ctx context.Context, assignedTo *string, editorID string) (int64, error) {
	qb := psql.
		Update("todos").
		Set("status", domain.StatusDone).
		Set("last_edited_by", editorID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.NotEq{"status": domain.StatusDone})

	if assignedTo != nil {
		qb = qb.Where(sq.Eq{"assigned_to": *assignedTo})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build MarkAllCompleted query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark all completed: %w", err)
	}

	return tag.RowsAffected(), nil
}

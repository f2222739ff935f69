package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/todoexcellence/todoex/internal/domain"
)

// ActivityRepository handles database operations for the append-only
// activity log. Entries are inserted once and never modified.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Append inserts a new activity entry and populates its ID and CreatedAt.
func (r *ActivityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) error {
	var changesJSON []byte
	if entry.Changes != nil {
		var err error
		changesJSON, err = json.Marshal(entry.Changes)
		if err != nil {
			return fmt.Errorf("marshal changes: %w", err)
		}
	}

	query, args, err := psql.
		Insert("activity_logs").
		Columns("actor", "actor_role", "action", "todo_id", "todo_owner", "changes").
		Values(entry.Actor, entry.ActorRole, entry.Action, entry.TodoID, entry.TodoOwner, changesJSON).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Append query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append activity entry: %w", err)
	}

	return nil
}

// ActivityEntryWithActor is an activity entry joined with the actor's
// display name.
type ActivityEntryWithActor struct {
	domain.ActivityEntry
	ActorName string
}

// ListFor retrieves activity entries visible to the given identity, newest
// first. Non-admin identities only see entries for todos they own.
func (r *ActivityRepository) ListFor(ctx context.Context, identity domain.Identity) ([]*ActivityEntryWithActor, error) {
	qb := psql.
		Select(
			"a.id", "a.actor", "a.actor_role", "a.action", "a.todo_id",
			"a.todo_owner", "a.changes", "a.created_at", "u.name",
		).
		From("activity_logs a").
		Join("users u ON u.id = a.actor")

	if !identity.IsAdmin() {
		qb = qb.Where(sq.Eq{"a.todo_owner": identity.UserID})
	}

	query, args, err := qb.OrderBy("a.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListFor query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity entries: %w", err)
	}
	defer rows.Close()

	var entries []*ActivityEntryWithActor
	for rows.Next() {
		var entry ActivityEntryWithActor
		var changesJSON []byte
		err := rows.Scan(
			&entry.ID,
			&entry.Actor,
			&entry.ActorRole,
			&entry.Action,
			&entry.TodoID,
			&entry.TodoOwner,
			&changesJSON,
			&entry.CreatedAt,
			&entry.ActorName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		if len(changesJSON) > 0 {
			entry.Changes = &domain.Changes{}
			if err := json.Unmarshal(changesJSON, entry.Changes); err != nil {
				return nil, fmt.Errorf("parse changes: %w", err)
			}
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}

// CountByTodoID returns the number of entries referencing a todo. Used by
// tests to assert audit expectations.
func (r *ActivityRepository) CountByTodoID(ctx context.Context, todoID string) (int, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("activity_logs").
		Where(sq.Eq{"todo_id": todoID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build CountByTodoID query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count activity entries: %w", err)
	}

	return count, nil
}

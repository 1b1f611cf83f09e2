package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calewis/slate/internal/db"
	"github.com/calewis/slate/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, note, done, completed_at,
		placement_kind, day, window_kind, window_start, order_key,
		created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo over SQLite.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo. Pass a *sql.DB, or a
// transaction from UnitOfWork for tx-scoped use.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	pk, day, wk, ws := placementArgs(t.Placement)
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Note,
		boolToInt(t.Done),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		pk, day, wk, ws,
		t.Order,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context, p domain.Placement) ([]*domain.Task, error) {
	where, args := placementWhere(p)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where + ` ORDER BY order_key`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListPartition(ctx context.Context, p domain.Placement) ([]domain.Item, error) {
	tasks, err := r.List(ctx, p)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, len(tasks))
	for i, t := range tasks {
		items[i] = t
	}
	return items, nil
}

func (r *SQLiteTaskRepo) MaxOrderKey(ctx context.Context, p domain.Placement) (int, error) {
	return maxOrderKey(ctx, r.db, "tasks", p)
}

func (r *SQLiteTaskRepo) UpdateOrderKey(ctx context.Context, id string, key int) error {
	return updateOrderKey(ctx, r.db, "tasks", id, key)
}

func (r *SQLiteTaskRepo) UpdatePlacement(ctx context.Context, id string, p domain.Placement, key int) error {
	return updatePlacement(ctx, r.db, "tasks", id, p, key)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	pk, day, wk, ws := placementArgs(t.Placement)
	query := `UPDATE tasks SET title = ?, note = ?, done = ?, completed_at = ?,
		placement_kind = ?, day = ?, window_kind = ?, window_start = ?,
		order_key = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Note,
		boolToInt(t.Done),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		pk, day, wk, ws,
		t.Order,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res, t.ID)
}

func (r *SQLiteTaskRepo) SetDone(ctx context.Context, id string, done bool, completedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET done = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		boolToInt(done),
		nullableTimeToString(completedAt, time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating task completion: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(res, id)
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var done int
	var completedAt, day, windowKind, windowStart sql.NullString
	var placementKind, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.Title, &t.Note, &done, &completedAt,
		&placementKind, &day, &windowKind, &windowStart, &t.Order,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	fillTask(&t, done, completedAt, placementKind, day, windowKind, windowStart, createdAt, updatedAt)
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var done int
		var completedAt, day, windowKind, windowStart sql.NullString
		var placementKind, createdAt, updatedAt string
		err := rows.Scan(&t.ID, &t.Title, &t.Note, &done, &completedAt,
			&placementKind, &day, &windowKind, &windowStart, &t.Order,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		fillTask(&t, done, completedAt, placementKind, day, windowKind, windowStart, createdAt, updatedAt)
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func fillTask(t *domain.Task, done int, completedAt sql.NullString, placementKind string, day, windowKind, windowStart sql.NullString, createdAt, updatedAt string) {
	t.Done = intToBool(done)
	t.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	t.Placement = scanPlacement(placementKind, day, windowKind, windowStart)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
}

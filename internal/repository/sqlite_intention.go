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

const intentionColumns = `id, title, done,
		placement_kind, day, window_kind, window_start, order_key,
		created_at, updated_at`

// SQLiteIntentionRepo implements IntentionRepo over SQLite.
type SQLiteIntentionRepo struct {
	db db.DBTX
}

func NewSQLiteIntentionRepo(db db.DBTX) *SQLiteIntentionRepo {
	return &SQLiteIntentionRepo{db: db}
}

func (r *SQLiteIntentionRepo) Create(ctx context.Context, i *domain.Intention) error {
	pk, day, wk, ws := placementArgs(i.Placement)
	query := `INSERT INTO intentions (` + intentionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.Title,
		boolToInt(i.Done),
		pk, day, wk, ws,
		i.Order,
		i.CreatedAt.Format(time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting intention: %w", err)
	}
	return nil
}

func (r *SQLiteIntentionRepo) GetByID(ctx context.Context, id string) (*domain.Intention, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+intentionColumns+` FROM intentions WHERE id = ?`, id)
	i, err := scanIntention(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("intention %s: %w", id, domain.ErrNotFound)
	}
	return i, err
}

func (r *SQLiteIntentionRepo) List(ctx context.Context, p domain.Placement) ([]*domain.Intention, error) {
	where, args := placementWhere(p)
	query := `SELECT ` + intentionColumns + ` FROM intentions WHERE ` + where + ` ORDER BY order_key`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing intentions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Intention
	for rows.Next() {
		var i domain.Intention
		var done int
		var day, windowKind, windowStart sql.NullString
		var placementKind, createdAt, updatedAt string
		err := rows.Scan(&i.ID, &i.Title, &done,
			&placementKind, &day, &windowKind, &windowStart, &i.Order,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning intention: %w", err)
		}
		fillIntention(&i, done, placementKind, day, windowKind, windowStart, createdAt, updatedAt)
		out = append(out, &i)
	}
	return out, rows.Err()
}

func (r *SQLiteIntentionRepo) ListPartition(ctx context.Context, p domain.Placement) ([]domain.Item, error) {
	ints, err := r.List(ctx, p)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, len(ints))
	for i, it := range ints {
		items[i] = it
	}
	return items, nil
}

func (r *SQLiteIntentionRepo) MaxOrderKey(ctx context.Context, p domain.Placement) (int, error) {
	return maxOrderKey(ctx, r.db, "intentions", p)
}

func (r *SQLiteIntentionRepo) UpdateOrderKey(ctx context.Context, id string, key int) error {
	return updateOrderKey(ctx, r.db, "intentions", id, key)
}

func (r *SQLiteIntentionRepo) UpdatePlacement(ctx context.Context, id string, p domain.Placement, key int) error {
	return updatePlacement(ctx, r.db, "intentions", id, p, key)
}

func (r *SQLiteIntentionRepo) Update(ctx context.Context, i *domain.Intention) error {
	pk, day, wk, ws := placementArgs(i.Placement)
	query := `UPDATE intentions SET title = ?, done = ?, placement_kind = ?, day = ?,
		window_kind = ?, window_start = ?, order_key = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		i.Title,
		boolToInt(i.Done),
		pk, day, wk, ws,
		i.Order,
		i.UpdatedAt.Format(time.RFC3339),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating intention: %w", err)
	}
	return requireRow(res, i.ID)
}

func (r *SQLiteIntentionRepo) SetDone(ctx context.Context, id string, done bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE intentions SET done = ?, updated_at = ? WHERE id = ?`,
		boolToInt(done), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating intention completion: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteIntentionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM intentions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting intention: %w", err)
	}
	return requireRow(res, id)
}

func scanIntention(row *sql.Row) (*domain.Intention, error) {
	var i domain.Intention
	var done int
	var day, windowKind, windowStart sql.NullString
	var placementKind, createdAt, updatedAt string
	err := row.Scan(&i.ID, &i.Title, &done,
		&placementKind, &day, &windowKind, &windowStart, &i.Order,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	fillIntention(&i, done, placementKind, day, windowKind, windowStart, createdAt, updatedAt)
	return &i, nil
}

func fillIntention(i *domain.Intention, done int, placementKind string, day, windowKind, windowStart sql.NullString, createdAt, updatedAt string) {
	i.Done = intToBool(done)
	i.Placement = scanPlacement(placementKind, day, windowKind, windowStart)
	i.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	i.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
}

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

// planColumns is the canonical SELECT column list for plans.
const planColumns = `id, title, location, end_day, start_time, end_time,
		placement_kind, day, window_kind, window_start, order_key,
		created_at, updated_at`

// SQLitePlanRepo implements PlanRepo over SQLite.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	pk, day, wk, ws := placementArgs(p.Placement)
	query := `INSERT INTO plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Location,
		nullableTimeToString(p.EndDay, dateLayout),
		nullableMinToClock(p.StartMin),
		nullableMinToClock(p.EndMin),
		pk, day, wk, ws,
		p.Order,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *SQLitePlanRepo) List(ctx context.Context, p domain.Placement) ([]*domain.Plan, error) {
	where, args := placementWhere(p)
	query := `SELECT ` + planColumns + ` FROM plans WHERE ` + where + ` ORDER BY order_key`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()
	return scanPlans(rows)
}

func (r *SQLitePlanRepo) ListSpanningRange(ctx context.Context, from, to time.Time) ([]*domain.Plan, error) {
	// A plan intersects [from, to] when it starts before the range ends and
	// ends (end_day, or its single day) on or after the range start.
	query := `SELECT ` + planColumns + ` FROM plans
		WHERE placement_kind = 'day'
		  AND day <= ?
		  AND COALESCE(end_day, day) >= ?
		ORDER BY day, order_key`
	rows, err := r.db.QueryContext(ctx, query, to.Format(dateLayout), from.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing plans in range: %w", err)
	}
	defer rows.Close()
	return scanPlans(rows)
}

func (r *SQLitePlanRepo) ListPartition(ctx context.Context, p domain.Placement) ([]domain.Item, error) {
	plans, err := r.List(ctx, p)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, len(plans))
	for i, pl := range plans {
		items[i] = pl
	}
	return items, nil
}

func (r *SQLitePlanRepo) MaxOrderKey(ctx context.Context, p domain.Placement) (int, error) {
	return maxOrderKey(ctx, r.db, "plans", p)
}

func (r *SQLitePlanRepo) UpdateOrderKey(ctx context.Context, id string, key int) error {
	return updateOrderKey(ctx, r.db, "plans", id, key)
}

func (r *SQLitePlanRepo) UpdatePlacement(ctx context.Context, id string, p domain.Placement, key int) error {
	return updatePlacement(ctx, r.db, "plans", id, p, key)
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	pk, day, wk, ws := placementArgs(p.Placement)
	query := `UPDATE plans SET title = ?, location = ?, end_day = ?, start_time = ?,
		end_time = ?, placement_kind = ?, day = ?, window_kind = ?, window_start = ?,
		order_key = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.Location,
		nullableTimeToString(p.EndDay, dateLayout),
		nullableMinToClock(p.StartMin),
		nullableMinToClock(p.EndMin),
		pk, day, wk, ws,
		p.Order,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return requireRow(res, p.ID)
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return requireRow(res, id)
}

func scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var endDay, startTime, endTime, day, windowKind, windowStart sql.NullString
	var placementKind, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Title, &p.Location, &endDay, &startTime, &endTime,
		&placementKind, &day, &windowKind, &windowStart, &p.Order,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	fillPlan(&p, endDay, startTime, endTime, placementKind, day, windowKind, windowStart, createdAt, updatedAt)
	return &p, nil
}

func scanPlans(rows *sql.Rows) ([]*domain.Plan, error) {
	var plans []*domain.Plan
	for rows.Next() {
		var p domain.Plan
		var endDay, startTime, endTime, day, windowKind, windowStart sql.NullString
		var placementKind, createdAt, updatedAt string
		err := rows.Scan(&p.ID, &p.Title, &p.Location, &endDay, &startTime, &endTime,
			&placementKind, &day, &windowKind, &windowStart, &p.Order,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		fillPlan(&p, endDay, startTime, endTime, placementKind, day, windowKind, windowStart, createdAt, updatedAt)
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}

func fillPlan(p *domain.Plan, endDay, startTime, endTime sql.NullString, placementKind string, day, windowKind, windowStart sql.NullString, createdAt, updatedAt string) {
	p.EndDay = parseNullableTime(endDay, dateLayout)
	p.StartMin = parseNullableClock(startTime)
	p.EndMin = parseNullableClock(endTime)
	p.Placement = scanPlacement(placementKind, day, windowKind, windowStart)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
}

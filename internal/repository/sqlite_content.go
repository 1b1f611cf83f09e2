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

const contentItemColumns = `id, title, medium, link, done,
		placement_kind, day, window_kind, window_start, order_key, day_sort_key,
		created_at, updated_at`

const contentSessionColumns = `id, content_item_id, title, note, completed_at,
		placement_kind, day, window_kind, window_start, order_key, day_sort_key,
		created_at, updated_at`

// SQLiteContentItemRepo implements ContentItemRepo over SQLite.
type SQLiteContentItemRepo struct {
	db db.DBTX
}

func NewSQLiteContentItemRepo(db db.DBTX) *SQLiteContentItemRepo {
	return &SQLiteContentItemRepo{db: db}
}

func (r *SQLiteContentItemRepo) Create(ctx context.Context, c *domain.ContentItem) error {
	pk, day, wk, ws := placementArgs(c.Placement)
	query := `INSERT INTO content_items (` + contentItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Title,
		string(c.Medium),
		c.Link,
		boolToInt(c.Done),
		pk, day, wk, ws,
		c.Order,
		c.DaySort,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting content item: %w", err)
	}
	return nil
}

func (r *SQLiteContentItemRepo) GetByID(ctx context.Context, id string) (*domain.ContentItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contentItemColumns+` FROM content_items WHERE id = ?`, id)
	c, err := scanContentItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("content item %s: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (r *SQLiteContentItemRepo) List(ctx context.Context, p domain.Placement) ([]*domain.ContentItem, error) {
	where, args := placementWhere(p)
	query := `SELECT ` + contentItemColumns + ` FROM content_items WHERE ` + where + ` ORDER BY order_key`
	return r.queryItems(ctx, query, args...)
}

func (r *SQLiteContentItemRepo) ListByDaySorted(ctx context.Context, day time.Time) ([]*domain.ContentItem, error) {
	query := `SELECT ` + contentItemColumns + ` FROM content_items
		WHERE placement_kind = 'day' AND day = ? ORDER BY day_sort_key`
	return r.queryItems(ctx, query, day.Format(dateLayout))
}

func (r *SQLiteContentItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*domain.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing content items: %w", err)
	}
	defer rows.Close()

	var out []*domain.ContentItem
	for rows.Next() {
		var c domain.ContentItem
		var medium string
		var done int
		var day, windowKind, windowStart sql.NullString
		var placementKind, createdAt, updatedAt string
		err := rows.Scan(&c.ID, &c.Title, &medium, &c.Link, &done,
			&placementKind, &day, &windowKind, &windowStart, &c.Order, &c.DaySort,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning content item: %w", err)
		}
		c.Medium = domain.Medium(medium)
		c.Done = intToBool(done)
		c.Placement = scanPlacement(placementKind, day, windowKind, windowStart)
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *SQLiteContentItemRepo) ListPartition(ctx context.Context, p domain.Placement) ([]domain.Item, error) {
	items, err := r.List(ctx, p)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(items))
	for i, c := range items {
		out[i] = c
	}
	return out, nil
}

func (r *SQLiteContentItemRepo) MaxOrderKey(ctx context.Context, p domain.Placement) (int, error) {
	return maxOrderKey(ctx, r.db, "content_items", p)
}

func (r *SQLiteContentItemRepo) UpdateOrderKey(ctx context.Context, id string, key int) error {
	return updateOrderKey(ctx, r.db, "content_items", id, key)
}

func (r *SQLiteContentItemRepo) UpdatePlacement(ctx context.Context, id string, p domain.Placement, key int) error {
	return updatePlacement(ctx, r.db, "content_items", id, p, key)
}

func (r *SQLiteContentItemRepo) MaxDaySortKey(ctx context.Context, day time.Time) (int, error) {
	return maxDaySortKey(ctx, r.db, "content_items", day)
}

func (r *SQLiteContentItemRepo) UpdateDaySortKey(ctx context.Context, id string, key int) error {
	return updateDaySortKey(ctx, r.db, "content_items", id, key)
}

func (r *SQLiteContentItemRepo) Update(ctx context.Context, c *domain.ContentItem) error {
	pk, day, wk, ws := placementArgs(c.Placement)
	query := `UPDATE content_items SET title = ?, medium = ?, link = ?, done = ?,
		placement_kind = ?, day = ?, window_kind = ?, window_start = ?,
		order_key = ?, day_sort_key = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Title,
		string(c.Medium),
		c.Link,
		boolToInt(c.Done),
		pk, day, wk, ws,
		c.Order,
		c.DaySort,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating content item: %w", err)
	}
	return requireRow(res, c.ID)
}

func (r *SQLiteContentItemRepo) SetDone(ctx context.Context, id string, done bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE content_items SET done = ?, updated_at = ? WHERE id = ?`,
		boolToInt(done), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating content item completion: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteContentItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting content item: %w", err)
	}
	return requireRow(res, id)
}

func scanContentItem(row *sql.Row) (*domain.ContentItem, error) {
	var c domain.ContentItem
	var medium string
	var done int
	var day, windowKind, windowStart sql.NullString
	var placementKind, createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.Title, &medium, &c.Link, &done,
		&placementKind, &day, &windowKind, &windowStart, &c.Order, &c.DaySort,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.Medium = domain.Medium(medium)
	c.Done = intToBool(done)
	c.Placement = scanPlacement(placementKind, day, windowKind, windowStart)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}

// SQLiteContentSessionRepo implements ContentSessionRepo over SQLite.
type SQLiteContentSessionRepo struct {
	db db.DBTX
}

func NewSQLiteContentSessionRepo(db db.DBTX) *SQLiteContentSessionRepo {
	return &SQLiteContentSessionRepo{db: db}
}

func (r *SQLiteContentSessionRepo) Create(ctx context.Context, s *domain.ContentSession) error {
	pk, day, wk, ws := placementArgs(s.Placement)
	query := `INSERT INTO content_sessions (` + contentSessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ContentItemID,
		s.Title,
		s.Note,
		nullableTimeToString(s.CompletedAt, time.RFC3339),
		pk, day, wk, ws,
		s.Order,
		s.DaySort,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting content session: %w", err)
	}
	return nil
}

func (r *SQLiteContentSessionRepo) GetByID(ctx context.Context, id string) (*domain.ContentSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contentSessionColumns+` FROM content_sessions WHERE id = ?`, id)
	s, err := scanContentSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("content session %s: %w", id, domain.ErrNotFound)
	}
	return s, err
}

func (r *SQLiteContentSessionRepo) ListByItem(ctx context.Context, contentItemID string) ([]*domain.ContentSession, error) {
	query := `SELECT ` + contentSessionColumns + ` FROM content_sessions
		WHERE content_item_id = ? ORDER BY day, day_sort_key`
	return r.querySessions(ctx, query, contentItemID)
}

func (r *SQLiteContentSessionRepo) ListByDaySorted(ctx context.Context, day time.Time) ([]*domain.ContentSession, error) {
	query := `SELECT ` + contentSessionColumns + ` FROM content_sessions
		WHERE placement_kind = 'day' AND day = ? ORDER BY day_sort_key`
	return r.querySessions(ctx, query, day.Format(dateLayout))
}

func (r *SQLiteContentSessionRepo) querySessions(ctx context.Context, query string, args ...any) ([]*domain.ContentSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing content sessions: %w", err)
	}
	defer rows.Close()

	var out []*domain.ContentSession
	for rows.Next() {
		var s domain.ContentSession
		var completedAt, day, windowKind, windowStart sql.NullString
		var placementKind, createdAt, updatedAt string
		err := rows.Scan(&s.ID, &s.ContentItemID, &s.Title, &s.Note, &completedAt,
			&placementKind, &day, &windowKind, &windowStart, &s.Order, &s.DaySort,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning content session: %w", err)
		}
		s.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
		s.Placement = scanPlacement(placementKind, day, windowKind, windowStart)
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SQLiteContentSessionRepo) ListPartition(ctx context.Context, p domain.Placement) ([]domain.Item, error) {
	where, args := placementWhere(p)
	query := `SELECT ` + contentSessionColumns + ` FROM content_sessions WHERE ` + where + ` ORDER BY order_key`
	sessions, err := r.querySessions(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(sessions))
	for i, s := range sessions {
		out[i] = s
	}
	return out, nil
}

func (r *SQLiteContentSessionRepo) MaxOrderKey(ctx context.Context, p domain.Placement) (int, error) {
	return maxOrderKey(ctx, r.db, "content_sessions", p)
}

func (r *SQLiteContentSessionRepo) UpdateOrderKey(ctx context.Context, id string, key int) error {
	return updateOrderKey(ctx, r.db, "content_sessions", id, key)
}

func (r *SQLiteContentSessionRepo) UpdatePlacement(ctx context.Context, id string, p domain.Placement, key int) error {
	return updatePlacement(ctx, r.db, "content_sessions", id, p, key)
}

func (r *SQLiteContentSessionRepo) MaxDaySortKey(ctx context.Context, day time.Time) (int, error) {
	return maxDaySortKey(ctx, r.db, "content_sessions", day)
}

func (r *SQLiteContentSessionRepo) UpdateDaySortKey(ctx context.Context, id string, key int) error {
	return updateDaySortKey(ctx, r.db, "content_sessions", id, key)
}

func (r *SQLiteContentSessionRepo) Update(ctx context.Context, s *domain.ContentSession) error {
	pk, day, wk, ws := placementArgs(s.Placement)
	query := `UPDATE content_sessions SET title = ?, note = ?, completed_at = ?,
		placement_kind = ?, day = ?, window_kind = ?, window_start = ?,
		order_key = ?, day_sort_key = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Title,
		s.Note,
		nullableTimeToString(s.CompletedAt, time.RFC3339),
		pk, day, wk, ws,
		s.Order,
		s.DaySort,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating content session: %w", err)
	}
	return requireRow(res, s.ID)
}

func (r *SQLiteContentSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting content session: %w", err)
	}
	return requireRow(res, id)
}

func scanContentSession(row *sql.Row) (*domain.ContentSession, error) {
	var s domain.ContentSession
	var completedAt, day, windowKind, windowStart sql.NullString
	var placementKind, createdAt, updatedAt string
	err := row.Scan(&s.ID, &s.ContentItemID, &s.Title, &s.Note, &completedAt,
		&placementKind, &day, &windowKind, &windowStart, &s.Order, &s.DaySort,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	s.Placement = scanPlacement(placementKind, day, windowKind, windowStart)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &s, nil
}

// maxDaySortKey returns the highest day-sort key on the given day, -1 when empty.
func maxDaySortKey(ctx context.Context, dbtx db.DBTX, table string, day time.Time) (int, error) {
	query := `SELECT COALESCE(MAX(day_sort_key), -1) FROM ` + table + `
		WHERE placement_kind = 'day' AND day = ?`
	var max int
	if err := dbtx.QueryRowContext(ctx, query, day.Format(dateLayout)).Scan(&max); err != nil {
		return 0, fmt.Errorf("reading max day sort key from %s: %w", table, err)
	}
	return max, nil
}

func updateDaySortKey(ctx context.Context, dbtx db.DBTX, table, id string, key int) error {
	query := `UPDATE ` + table + ` SET day_sort_key = ?, updated_at = ? WHERE id = ?`
	res, err := dbtx.ExecContext(ctx, query, key, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating day sort key in %s: %w", table, err)
	}
	return requireRow(res, id)
}

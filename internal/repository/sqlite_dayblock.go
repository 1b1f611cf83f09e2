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

const dayBlockColumns = `id, date, title, starts_at, ends_at, created_at, updated_at`

// SQLiteDayBlockRepo implements DayBlockRepo over SQLite. Times cross the
// storage boundary as zero-padded "HH:MM:00" strings.
type SQLiteDayBlockRepo struct {
	db db.DBTX
}

func NewSQLiteDayBlockRepo(db db.DBTX) *SQLiteDayBlockRepo {
	return &SQLiteDayBlockRepo{db: db}
}

func (r *SQLiteDayBlockRepo) Create(ctx context.Context, b *DayBlock) error {
	query := `INSERT INTO day_blocks (` + dayBlockColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Date.Format(dateLayout),
		b.Title,
		domain.FormatClock(b.StartMin),
		domain.FormatClock(b.EndMin),
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting day block: %w", err)
	}
	return nil
}

func (r *SQLiteDayBlockRepo) GetByID(ctx context.Context, id string) (*DayBlock, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dayBlockColumns+` FROM day_blocks WHERE id = ?`, id)
	b, err := scanDayBlock(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("day block %s: %w", id, domain.ErrNotFound)
	}
	return b, err
}

func (r *SQLiteDayBlockRepo) ListByDate(ctx context.Context, date time.Time) ([]*DayBlock, error) {
	query := `SELECT ` + dayBlockColumns + ` FROM day_blocks WHERE date = ? ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing day blocks: %w", err)
	}
	defer rows.Close()

	var out []*DayBlock
	for rows.Next() {
		b, err := scanDayBlock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning day block: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteDayBlockRepo) UpdateTimes(ctx context.Context, id string, startMin, endMin int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE day_blocks SET starts_at = ?, ends_at = ?, updated_at = ? WHERE id = ?`,
		domain.FormatClock(startMin),
		domain.FormatClock(endMin),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating day block times: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteDayBlockRepo) UpdateTitle(ctx context.Context, id string, title string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE day_blocks SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating day block title: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteDayBlockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM day_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting day block: %w", err)
	}
	return requireRow(res, id)
}

func scanDayBlock(scan func(dest ...any) error) (*DayBlock, error) {
	var b DayBlock
	var date, startsAt, endsAt, createdAt, updatedAt string
	if err := scan(&b.ID, &date, &b.Title, &startsAt, &endsAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing day block date: %w", err)
	}
	b.Date = d
	if b.StartMin, err = domain.ParseClock(startsAt); err != nil {
		return nil, err
	}
	if b.EndMin, err = domain.ParseClock(endsAt); err != nil {
		return nil, err
	}
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

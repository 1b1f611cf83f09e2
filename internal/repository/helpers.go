package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/calewis/slate/internal/db"
	"github.com/calewis/slate/internal/domain"
)

const dateLayout = domain.DateLayout

// placementArgs flattens a Placement into the four shared placement columns
// (placement_kind, day, window_kind, window_start).
func placementArgs(p domain.Placement) (string, any, any, any) {
	switch p.Kind {
	case domain.PlacementDay:
		return "day", p.Day.Format(dateLayout), nil, nil
	case domain.PlacementWindow:
		return "window", nil, string(p.WindowKind), p.WindowStart.Format(dateLayout)
	default:
		return "none", nil, nil, nil
	}
}

// placementWhere returns the WHERE fragment selecting one partition.
func placementWhere(p domain.Placement) (string, []any) {
	switch p.Kind {
	case domain.PlacementDay:
		return "placement_kind = 'day' AND day = ?", []any{p.Day.Format(dateLayout)}
	case domain.PlacementWindow:
		return "placement_kind = 'window' AND window_kind = ? AND window_start = ?",
			[]any{string(p.WindowKind), p.WindowStart.Format(dateLayout)}
	default:
		return "placement_kind = 'none'", nil
	}
}

// scanPlacement rebuilds a Placement from the four shared columns.
func scanPlacement(kind string, day, windowKind, windowStart sql.NullString) domain.Placement {
	switch kind {
	case "day":
		if d := parseNullableTime(day, dateLayout); d != nil {
			return domain.OnDay(*d)
		}
	case "window":
		if s := parseNullableTime(windowStart, dateLayout); s != nil && windowKind.Valid {
			return domain.InWindow(domain.WindowKind(windowKind.String), *s)
		}
	}
	return domain.Unplaced()
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s.String, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableMinToClock converts optional minutes-from-midnight to an "HH:MM:00"
// string or SQL NULL.
func nullableMinToClock(min *int) any {
	if min == nil {
		return nil
	}
	return domain.FormatClock(*min)
}

// parseNullableClock converts a stored "HH:MM:00" string back to minutes.
func parseNullableClock(s sql.NullString) *int {
	if !s.Valid || s.String == "" {
		return nil
	}
	min, err := domain.ParseClock(s.String)
	if err != nil {
		return nil
	}
	return &min
}

// maxOrderKey returns the highest order key in the table's partition, or -1
// when the partition is empty. Inserts land at max+1.
func maxOrderKey(ctx context.Context, dbtx db.DBTX, table string, p domain.Placement) (int, error) {
	where, args := placementWhere(p)
	query := `SELECT COALESCE(MAX(order_key), -1) FROM ` + table + ` WHERE ` + where
	var max int
	if err := dbtx.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("reading max order key from %s: %w", table, err)
	}
	return max, nil
}

// updateOrderKey persists a single item's order key.
func updateOrderKey(ctx context.Context, dbtx db.DBTX, table, id string, key int) error {
	query := `UPDATE ` + table + ` SET order_key = ?, updated_at = ? WHERE id = ?`
	res, err := dbtx.ExecContext(ctx, query, key, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating order key in %s: %w", table, err)
	}
	return requireRow(res, id)
}

// updatePlacement persists a placement change plus the landing order key.
func updatePlacement(ctx context.Context, dbtx db.DBTX, table, id string, p domain.Placement, key int) error {
	pk, day, wk, ws := placementArgs(p)
	query := `UPDATE ` + table + ` SET placement_kind = ?, day = ?, window_kind = ?,
		window_start = ?, order_key = ?, updated_at = ? WHERE id = ?`
	res, err := dbtx.ExecContext(ctx, query, pk, day, wk, ws, key,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating placement in %s: %w", table, err)
	}
	return requireRow(res, id)
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

package service

import (
	"context"
	"time"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/layout"
	"github.com/calewis/slate/internal/ordering"
	"github.com/calewis/slate/internal/repository"
)

// ItemService covers capture and lifecycle for every item kind behind the
// shared partition port.
type ItemService interface {
	// QuickAdd parses a capture line (free text plus #tags) and creates the
	// item at the end of its partition's order.
	QuickAdd(ctx context.Context, input string, today time.Time) (domain.Item, error)

	// AddContent creates a content backlog entry.
	AddContent(ctx context.Context, title string, medium domain.Medium, link string) (*domain.ContentItem, error)

	// LogContentSession records one sitting on a content item, placed on the
	// given day at the end of the day's mixed content order.
	LogContentSession(ctx context.Context, contentItemID string, day time.Time, title, note string) (*domain.ContentSession, error)

	// List returns one partition's items in order-key order.
	List(ctx context.Context, kind domain.ItemKind, p domain.Placement) ([]domain.Item, error)

	// Reorder applies a drop within a partition. On a write failure the
	// returned slice is the store's authoritative state, re-fetched.
	Reorder(ctx context.Context, kind domain.ItemKind, p domain.Placement, draggedID, targetID string, pos ordering.Position) ([]domain.Item, error)

	// Move re-places an item, appending it to the destination partition.
	Move(ctx context.Context, kind domain.ItemKind, id string, dest domain.Placement) error

	Rename(ctx context.Context, kind domain.ItemKind, id string, title string) error
	Complete(ctx context.Context, kind domain.ItemKind, id string, done bool) error
	Delete(ctx context.Context, kind domain.ItemKind, id string) error
}

// DayCell is one board day: the per-kind ordered lists plus the mixed content
// list (items and sessions interleaved by day-sort key).
type DayCell struct {
	Date       time.Time
	Tasks      []*domain.Task
	Plans      []*domain.Plan
	Intentions []*domain.Intention
	Content    []domain.Item
}

// WindowCell is one parking window on the board.
type WindowCell struct {
	Kind       domain.WindowKind
	Start      time.Time
	Next       bool
	Tasks      []*domain.Task
	Plans      []*domain.Plan
	Intentions []*domain.Intention
}

// Board is the assembled planning surface: a week of days, the four rolling
// parking windows, the unplaced backlog, and the packed multi-day span lanes
// for the week row.
type Board struct {
	Today   time.Time
	Windows domain.PlanningWindows
	Days    []DayCell
	Parking []WindowCell

	UnplacedTasks      []*domain.Task
	UnplacedPlans      []*domain.Plan
	UnplacedIntentions []*domain.Intention
	Backlog            []*domain.ContentItem

	Spans []layout.Segment
	Lanes int
}

type BoardService interface {
	Build(ctx context.Context, today time.Time) (*Board, error)

	// WeekSpans packs the week's multi-day plans into lanes for one week row
	// starting at weekStart.
	WeekSpans(ctx context.Context, weekStart time.Time) ([]layout.Segment, error)
}

// ScheduleService manages the day schedule's time blocks. All mutations are
// collision-validated against the two half-day columns.
type ScheduleService interface {
	Blocks(ctx context.Context, date time.Time) ([]*repository.DayBlock, error)
	CreateBlock(ctx context.Context, date time.Time, title string, startMin, endMin int) (*repository.DayBlock, error)
	ResizeBlock(ctx context.Context, id string, endMin int) error
	RenameBlock(ctx context.Context, id string, title string) error
	DeleteBlock(ctx context.Context, id string) error
}

package repository

import (
	"context"
	"time"

	"github.com/calewis/slate/internal/domain"
)

// PartitionStore is the kind-agnostic surface the ordering engine writes
// through. Each item repository implements it for its own table.
type PartitionStore interface {
	// ListPartition returns the partition's items ordered by order key.
	ListPartition(ctx context.Context, p domain.Placement) ([]domain.Item, error)

	// MaxOrderKey returns the highest order key in the partition, -1 when empty.
	MaxOrderKey(ctx context.Context, p domain.Placement) (int, error)

	// UpdateOrderKey persists one item's order key.
	UpdateOrderKey(ctx context.Context, id string, key int) error

	// UpdatePlacement persists a placement change and the landing order key.
	UpdatePlacement(ctx context.Context, id string, p domain.Placement, key int) error
}

type TaskRepo interface {
	PartitionStore
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, p domain.Placement) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetDone(ctx context.Context, id string, done bool, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type PlanRepo interface {
	PartitionStore
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context, p domain.Placement) ([]*domain.Plan, error)
	// ListSpanningRange returns day-placed plans whose [day, end_day] span
	// intersects the inclusive date range. Feeds the week-row lane packer.
	ListSpanningRange(ctx context.Context, from, to time.Time) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

type IntentionRepo interface {
	PartitionStore
	Create(ctx context.Context, i *domain.Intention) error
	GetByID(ctx context.Context, id string) (*domain.Intention, error)
	List(ctx context.Context, p domain.Placement) ([]*domain.Intention, error)
	Update(ctx context.Context, i *domain.Intention) error
	SetDone(ctx context.Context, id string, done bool) error
	Delete(ctx context.Context, id string) error
}

// DaySortStore is the secondary ordering surface for the day-local mixed
// content list.
type DaySortStore interface {
	MaxDaySortKey(ctx context.Context, day time.Time) (int, error)
	UpdateDaySortKey(ctx context.Context, id string, key int) error
}

type ContentItemRepo interface {
	PartitionStore
	DaySortStore
	Create(ctx context.Context, c *domain.ContentItem) error
	GetByID(ctx context.Context, id string) (*domain.ContentItem, error)
	List(ctx context.Context, p domain.Placement) ([]*domain.ContentItem, error)
	// ListByDaySorted returns day-placed items ordered by day-sort key.
	ListByDaySorted(ctx context.Context, day time.Time) ([]*domain.ContentItem, error)
	Update(ctx context.Context, c *domain.ContentItem) error
	SetDone(ctx context.Context, id string, done bool) error
	// Delete removes the item; its sessions cascade.
	Delete(ctx context.Context, id string) error
}

type ContentSessionRepo interface {
	PartitionStore
	DaySortStore
	Create(ctx context.Context, s *domain.ContentSession) error
	GetByID(ctx context.Context, id string) (*domain.ContentSession, error)
	ListByItem(ctx context.Context, contentItemID string) ([]*domain.ContentSession, error)
	ListByDaySorted(ctx context.Context, day time.Time) ([]*domain.ContentSession, error)
	Update(ctx context.Context, s *domain.ContentSession) error
	Delete(ctx context.Context, id string) error
}

// DayBlock is a scheduled time-of-day block on one calendar date. Times are
// stored as zero-padded 24-hour "HH:MM:00" strings; StartMin/EndMin are the
// parsed minutes from midnight.
type DayBlock struct {
	ID        string
	Date      time.Time
	Title     string
	StartMin  int
	EndMin    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DayBlockRepo interface {
	Create(ctx context.Context, b *DayBlock) error
	GetByID(ctx context.Context, id string) (*DayBlock, error)
	ListByDate(ctx context.Context, date time.Time) ([]*DayBlock, error)
	UpdateTimes(ctx context.Context, id string, startMin, endMin int) error
	UpdateTitle(ctx context.Context, id string, title string) error
	Delete(ctx context.Context, id string) error
}

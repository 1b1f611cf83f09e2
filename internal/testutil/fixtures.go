package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/calewis/slate/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithTaskPlacement(p domain.Placement) TaskOption {
	return func(t *domain.Task) {
		t.Placement = p
	}
}

func WithTaskOrder(key int) TaskOption {
	return func(t *domain.Task) {
		t.Order = key
	}
}

func WithTaskNote(note string) TaskOption {
	return func(t *domain.Task) {
		t.Note = note
	}
}

func WithTaskDone() TaskOption {
	return func(t *domain.Task) {
		t.MarkDone(true, time.Now().UTC())
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ItemCore: domain.ItemCore{
			ID:        uuid.New().String(),
			Title:     title,
			Placement: domain.Unplaced(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanPlacement(p domain.Placement) PlanOption {
	return func(pl *domain.Plan) {
		pl.Placement = p
	}
}

func WithPlanOrder(key int) PlanOption {
	return func(pl *domain.Plan) {
		pl.Order = key
	}
}

func WithEndDay(d time.Time) PlanOption {
	return func(pl *domain.Plan) {
		pl.EndDay = &d
	}
}

func WithPlanTimes(startMin, endMin int) PlanOption {
	return func(pl *domain.Plan) {
		pl.StartMin = &startMin
		pl.EndMin = &endMin
	}
}

func WithLocation(loc string) PlanOption {
	return func(pl *domain.Plan) {
		pl.Location = loc
	}
}

func NewTestPlan(title string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ItemCore: domain.ItemCore{
			ID:        uuid.New().String(),
			Title:     title,
			Placement: domain.Unplaced(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Intention options
type IntentionOption func(*domain.Intention)

func WithIntentionPlacement(p domain.Placement) IntentionOption {
	return func(i *domain.Intention) {
		i.Placement = p
	}
}

func WithIntentionOrder(key int) IntentionOption {
	return func(i *domain.Intention) {
		i.Order = key
	}
}

func NewTestIntention(title string, opts ...IntentionOption) *domain.Intention {
	now := time.Now().UTC()
	i := &domain.Intention{
		ItemCore: domain.ItemCore{
			ID:        uuid.New().String(),
			Title:     title,
			Placement: domain.Unplaced(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ContentItem options
type ContentItemOption func(*domain.ContentItem)

func WithMedium(m domain.Medium) ContentItemOption {
	return func(c *domain.ContentItem) {
		c.Medium = m
	}
}

func WithLink(link string) ContentItemOption {
	return func(c *domain.ContentItem) {
		c.Link = link
	}
}

func WithContentPlacement(p domain.Placement) ContentItemOption {
	return func(c *domain.ContentItem) {
		c.Placement = p
	}
}

func WithContentOrder(key int) ContentItemOption {
	return func(c *domain.ContentItem) {
		c.Order = key
	}
}

func WithDaySort(key int) ContentItemOption {
	return func(c *domain.ContentItem) {
		c.DaySort = key
	}
}

func NewTestContentItem(title string, opts ...ContentItemOption) *domain.ContentItem {
	now := time.Now().UTC()
	c := &domain.ContentItem{
		ItemCore: domain.ItemCore{
			ID:        uuid.New().String(),
			Title:     title,
			Placement: domain.Unplaced(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Medium: domain.MediumArticle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentSession options
type ContentSessionOption func(*domain.ContentSession)

func WithSessionPlacement(p domain.Placement) ContentSessionOption {
	return func(s *domain.ContentSession) {
		s.Placement = p
	}
}

func WithSessionDaySort(key int) ContentSessionOption {
	return func(s *domain.ContentSession) {
		s.DaySort = key
	}
}

func WithSessionNote(note string) ContentSessionOption {
	return func(s *domain.ContentSession) {
		s.Note = note
	}
}

func NewTestContentSession(contentItemID, title string, opts ...ContentSessionOption) *domain.ContentSession {
	now := time.Now().UTC()
	s := &domain.ContentSession{
		ItemCore: domain.ItemCore{
			ID:        uuid.New().String(),
			Title:     title,
			Placement: domain.Unplaced(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ContentItemID: contentItemID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Day returns midnight local time for the given calendar date. Tests use it
// to build placements without caring about time-of-day noise.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calewis/slate/internal/db"
	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/ordering"
	"github.com/calewis/slate/internal/quickadd"
	"github.com/calewis/slate/internal/repository"
)

type itemService struct {
	stores   Stores
	uow      db.UnitOfWork
	engine   *ordering.Engine
	observer UseCaseObserver
}

func NewItemService(stores Stores, uow db.UnitOfWork, observers ...UseCaseObserver) ItemService {
	return &itemService{
		stores:   stores,
		uow:      uow,
		engine:   ordering.NewEngine(storeWriter{stores: stores}),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *itemService) QuickAdd(ctx context.Context, input string, today time.Time) (domain.Item, error) {
	start := time.Now()
	item, err := s.quickAdd(ctx, input, today)
	s.observe(ctx, "item.quick_add", start, err, map[string]any{"input_len": len(input)})
	return item, err
}

func (s *itemService) quickAdd(ctx context.Context, input string, today time.Time) (domain.Item, error) {
	res, err := quickadd.Parse(input, today)
	if err != nil {
		return nil, err
	}

	kind := domain.KindTask
	if res.HasKind {
		kind = res.Kind
	}
	placement := domain.Unplaced()
	if res.HasPlacement {
		placement = res.Placement
	}

	now := time.Now().UTC()
	core := domain.ItemCore{
		ID:        uuid.New().String(),
		Title:     res.Title,
		Placement: placement,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var created domain.Item
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stores := NewStores(tx)
		store, err := stores.Partition(kind)
		if err != nil {
			return err
		}
		max, err := store.MaxOrderKey(ctx, placement)
		if err != nil {
			return err
		}
		core.Order = max + 1

		switch kind {
		case domain.KindTask:
			t := &domain.Task{ItemCore: core}
			created = t
			return stores.Tasks.Create(ctx, t)
		case domain.KindPlan:
			p := &domain.Plan{ItemCore: core}
			created = p
			return stores.Plans.Create(ctx, p)
		case domain.KindIntention:
			i := &domain.Intention{ItemCore: core}
			created = i
			return stores.Intentions.Create(ctx, i)
		default:
			return fmt.Errorf("%w: cannot quick-add kind %q", domain.ErrValidation, kind)
		}
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *itemService) AddContent(ctx context.Context, title string, medium domain.Medium, link string) (*domain.ContentItem, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: content title is empty", domain.ErrValidation)
	}
	now := time.Now().UTC()
	item := &domain.ContentItem{
		ItemCore: domain.ItemCore{
			ID:        uuid.New().String(),
			Title:     title,
			Placement: domain.Unplaced(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Medium: medium,
		Link:   link,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stores := NewStores(tx)
		max, err := stores.ContentItems.MaxOrderKey(ctx, domain.Unplaced())
		if err != nil {
			return err
		}
		item.Order = max + 1
		return stores.ContentItems.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) LogContentSession(ctx context.Context, contentItemID string, day time.Time, title, note string) (*domain.ContentSession, error) {
	day = domain.DateOnly(day)
	now := time.Now().UTC()
	sess := &domain.ContentSession{
		ItemCore: domain.ItemCore{
			ID:        uuid.New().String(),
			Title:     title,
			Placement: domain.OnDay(day),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ContentItemID: contentItemID,
		Note:          note,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stores := NewStores(tx)
		if _, err := stores.ContentItems.GetByID(ctx, contentItemID); err != nil {
			return err
		}
		max, err := stores.ContentSessions.MaxOrderKey(ctx, sess.Placement)
		if err != nil {
			return err
		}
		sess.Order = max + 1

		// The mixed day list interleaves items and sessions, so the landing
		// day-sort key must clear both tables' counters.
		sort, err := maxMixedDaySort(ctx, stores, day)
		if err != nil {
			return err
		}
		sess.DaySort = sort + 1
		return stores.ContentSessions.Create(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func maxMixedDaySort(ctx context.Context, stores Stores, day time.Time) (int, error) {
	itemMax, err := stores.ContentItems.MaxDaySortKey(ctx, day)
	if err != nil {
		return 0, err
	}
	sessMax, err := stores.ContentSessions.MaxDaySortKey(ctx, day)
	if err != nil {
		return 0, err
	}
	if sessMax > itemMax {
		return sessMax, nil
	}
	return itemMax, nil
}

func (s *itemService) List(ctx context.Context, kind domain.ItemKind, p domain.Placement) ([]domain.Item, error) {
	store, err := s.stores.Partition(kind)
	if err != nil {
		return nil, err
	}
	return store.ListPartition(ctx, p)
}

func (s *itemService) Reorder(ctx context.Context, kind domain.ItemKind, p domain.Placement, draggedID, targetID string, pos ordering.Position) ([]domain.Item, error) {
	start := time.Now()
	store, err := s.stores.Partition(kind)
	if err != nil {
		return nil, err
	}
	partition, err := store.ListPartition(ctx, p)
	if err != nil {
		return nil, err
	}

	next, err := s.engine.Reorder(ctx, partition, draggedID, targetID, pos)
	s.observe(ctx, "item.reorder", start, err, map[string]any{"kind": string(kind), "size": len(partition)})
	if errors.Is(err, domain.ErrStaleMembership) {
		// Nothing was written; the stale reference dissolves without
		// surfacing to the user. The observer still saw it above.
		return next, nil
	}
	if err != nil {
		// Partial write: the in-memory order no longer matches the store.
		// Re-fetch and hand back the authoritative state.
		if fresh, ferr := store.ListPartition(ctx, p); ferr == nil {
			return fresh, err
		}
		return next, err
	}
	return next, nil
}

func (s *itemService) Move(ctx context.Context, kind domain.ItemKind, id string, dest domain.Placement) error {
	start := time.Now()
	item, err := s.getItem(ctx, kind, id)
	if err != nil {
		return err
	}

	// Content landing on a day also joins that day's mixed list, so it
	// claims the next day-sort key. The maximum is read before the
	// placement write so the item's own stale key cannot inflate it.
	daySort := -1
	sortStore := s.daySortStore(kind)
	if sortStore != nil && dest.Kind == domain.PlacementDay && !item.ItemPlacement().Equal(dest) {
		max, err := maxMixedDaySort(ctx, s.stores, dest.Day)
		if err != nil {
			return err
		}
		daySort = max + 1
	}

	err = s.engine.Move(ctx, item, dest)
	if err == nil && daySort >= 0 {
		err = sortStore.UpdateDaySortKey(ctx, id, daySort)
	}
	s.observe(ctx, "item.move", start, err, map[string]any{"kind": string(kind)})
	return err
}

// daySortStore returns the secondary-order surface for kinds that appear in
// the mixed day list, nil for the rest.
func (s *itemService) daySortStore(kind domain.ItemKind) repository.DaySortStore {
	switch kind {
	case domain.KindContentItem:
		return s.stores.ContentItems
	case domain.KindContentSession:
		return s.stores.ContentSessions
	default:
		return nil
	}
}

func (s *itemService) getItem(ctx context.Context, kind domain.ItemKind, id string) (domain.Item, error) {
	switch kind {
	case domain.KindTask:
		return s.stores.Tasks.GetByID(ctx, id)
	case domain.KindPlan:
		return s.stores.Plans.GetByID(ctx, id)
	case domain.KindIntention:
		return s.stores.Intentions.GetByID(ctx, id)
	case domain.KindContentItem:
		return s.stores.ContentItems.GetByID(ctx, id)
	case domain.KindContentSession:
		return s.stores.ContentSessions.GetByID(ctx, id)
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, kind)
	}
}

func (s *itemService) Rename(ctx context.Context, kind domain.ItemKind, id string, title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is empty", domain.ErrValidation)
	}
	now := time.Now().UTC()
	switch kind {
	case domain.KindTask:
		t, err := s.stores.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.Title = title
		t.UpdatedAt = now
		return s.stores.Tasks.Update(ctx, t)
	case domain.KindPlan:
		p, err := s.stores.Plans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Title = title
		p.UpdatedAt = now
		return s.stores.Plans.Update(ctx, p)
	case domain.KindIntention:
		i, err := s.stores.Intentions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		i.Title = title
		i.UpdatedAt = now
		return s.stores.Intentions.Update(ctx, i)
	case domain.KindContentItem:
		c, err := s.stores.ContentItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		c.Title = title
		c.UpdatedAt = now
		return s.stores.ContentItems.Update(ctx, c)
	case domain.KindContentSession:
		sess, err := s.stores.ContentSessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		sess.Title = title
		sess.UpdatedAt = now
		return s.stores.ContentSessions.Update(ctx, sess)
	default:
		return fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, kind)
	}
}

func (s *itemService) Complete(ctx context.Context, kind domain.ItemKind, id string, done bool) error {
	now := time.Now().UTC()
	switch kind {
	case domain.KindTask:
		var completedAt *time.Time
		if done {
			completedAt = &now
		}
		return s.stores.Tasks.SetDone(ctx, id, done, completedAt)
	case domain.KindIntention:
		return s.stores.Intentions.SetDone(ctx, id, done)
	case domain.KindContentItem:
		return s.stores.ContentItems.SetDone(ctx, id, done)
	case domain.KindContentSession:
		sess, err := s.stores.ContentSessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if done {
			sess.CompletedAt = &now
		} else {
			sess.CompletedAt = nil
		}
		sess.UpdatedAt = now
		return s.stores.ContentSessions.Update(ctx, sess)
	default:
		return fmt.Errorf("%w: kind %q cannot be completed", domain.ErrValidation, kind)
	}
}

func (s *itemService) Delete(ctx context.Context, kind domain.ItemKind, id string) error {
	switch kind {
	case domain.KindTask:
		return s.stores.Tasks.Delete(ctx, id)
	case domain.KindPlan:
		return s.stores.Plans.Delete(ctx, id)
	case domain.KindIntention:
		return s.stores.Intentions.Delete(ctx, id)
	case domain.KindContentItem:
		return s.stores.ContentItems.Delete(ctx, id)
	case domain.KindContentSession:
		return s.stores.ContentSessions.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, kind)
	}
}

func (s *itemService) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}

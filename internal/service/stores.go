package service

import (
	"context"
	"fmt"

	"github.com/calewis/slate/internal/db"
	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/repository"
)

// Stores bundles the per-kind repositories. NewStores builds them over any
// DBTX so the same bundle works against the database or inside a transaction.
type Stores struct {
	Tasks           repository.TaskRepo
	Plans           repository.PlanRepo
	Intentions      repository.IntentionRepo
	ContentItems    repository.ContentItemRepo
	ContentSessions repository.ContentSessionRepo
	DayBlocks       repository.DayBlockRepo
}

func NewStores(dbtx db.DBTX) Stores {
	return Stores{
		Tasks:           repository.NewSQLiteTaskRepo(dbtx),
		Plans:           repository.NewSQLitePlanRepo(dbtx),
		Intentions:      repository.NewSQLiteIntentionRepo(dbtx),
		ContentItems:    repository.NewSQLiteContentItemRepo(dbtx),
		ContentSessions: repository.NewSQLiteContentSessionRepo(dbtx),
		DayBlocks:       repository.NewSQLiteDayBlockRepo(dbtx),
	}
}

// Partition returns the kind's partition store.
func (s Stores) Partition(kind domain.ItemKind) (repository.PartitionStore, error) {
	switch kind {
	case domain.KindTask:
		return s.Tasks, nil
	case domain.KindPlan:
		return s.Plans, nil
	case domain.KindIntention:
		return s.Intentions, nil
	case domain.KindContentItem:
		return s.ContentItems, nil
	case domain.KindContentSession:
		return s.ContentSessions, nil
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, kind)
	}
}

// storeWriter adapts the store bundle to the ordering engine's write port.
type storeWriter struct {
	stores Stores
}

func (w storeWriter) WriteOrderKey(ctx context.Context, item domain.Item, key int) error {
	store, err := w.stores.Partition(item.Kind())
	if err != nil {
		return err
	}
	return store.UpdateOrderKey(ctx, item.ItemID(), key)
}

func (w storeWriter) WritePlacement(ctx context.Context, item domain.Item, p domain.Placement, key int) error {
	store, err := w.stores.Partition(item.Kind())
	if err != nil {
		return err
	}
	return store.UpdatePlacement(ctx, item.ItemID(), p, key)
}

func (w storeWriter) MaxOrderKey(ctx context.Context, kind domain.ItemKind, p domain.Placement) (int, error) {
	store, err := w.stores.Partition(kind)
	if err != nil {
		return 0, err
	}
	return store.MaxOrderKey(ctx, p)
}

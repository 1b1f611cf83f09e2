// Package ordering maintains dense zero-based order keys within a partition
// (the items sharing one placement and one collection) and rewrites them when
// an item is dragged to a new position.
package ordering

import (
	"context"
	"fmt"

	"github.com/calewis/slate/internal/domain"
)

// Position says where the dragged item lands relative to the drop target.
type Position string

const (
	Above Position = "above"
	Below Position = "below"
)

// Writer is the persistence port the engine issues writes through. Writes are
// per item and sequential; the store applies last-write-wins.
type Writer interface {
	// WriteOrderKey persists a single item's order key.
	WriteOrderKey(ctx context.Context, item domain.Item, key int) error

	// WritePlacement persists a placement change together with the item's
	// landing order key in the destination partition.
	WritePlacement(ctx context.Context, item domain.Item, p domain.Placement, key int) error

	// MaxOrderKey returns the highest order key currently present in the
	// partition for the given kind and placement, or -1 when empty.
	MaxOrderKey(ctx context.Context, kind domain.ItemKind, p domain.Placement) (int, error)
}

// Engine rewrites partition order keys. It mutates the in-memory items
// optimistically before any write is issued; on a write failure the caller is
// expected to discard the optimistic order and re-fetch authoritative state.
type Engine struct {
	writer Writer
}

func NewEngine(w Writer) *Engine {
	return &Engine{writer: w}
}

// Reorder moves the dragged item immediately above or below the target within
// the given partition slice, then rewrites every entry's order key to its new
// index. The full-partition rewrite keeps keys dense and collision-free; a
// write is skipped when an item's key is already correct, so reordering an
// item onto its current position issues no writes at all.
//
// If either id is absent from the partition nothing is written and the
// partition comes back unchanged with ErrStaleMembership; surfaces treat it
// as a no-op rather than showing it to the user. On a write failure the
// returned slice is the new in-memory order but must be treated as
// unreliable; callers reconcile by re-fetching.
func (e *Engine) Reorder(ctx context.Context, partition []domain.Item, draggedID, targetID string, pos Position) ([]domain.Item, error) {
	if draggedID == targetID {
		return partition, nil
	}
	from := indexOf(partition, draggedID)
	if from < 0 {
		return partition, fmt.Errorf("dragged %s: %w", draggedID, domain.ErrStaleMembership)
	}
	if indexOf(partition, targetID) < 0 {
		return partition, fmt.Errorf("target %s: %w", targetID, domain.ErrStaleMembership)
	}

	dragged := partition[from]
	rest := make([]domain.Item, 0, len(partition))
	rest = append(rest, partition[:from]...)
	rest = append(rest, partition[from+1:]...)

	at := indexOf(rest, targetID)
	if pos == Below {
		at++
	}

	next := make([]domain.Item, 0, len(partition))
	next = append(next, rest[:at]...)
	next = append(next, dragged)
	next = append(next, rest[at:]...)

	for i, item := range next {
		if item.OrderKey() == i {
			continue
		}
		item.SetOrderKey(i)
		if err := e.writer.WriteOrderKey(ctx, item, i); err != nil {
			return next, fmt.Errorf("rewriting order key for %s: %w", item.ItemID(), err)
		}
	}
	return next, nil
}

// Move changes only an item's placement; the item is appended to the end of
// the destination partition's order (current maximum plus one). No keys in
// either partition are rewritten.
func (e *Engine) Move(ctx context.Context, item domain.Item, dest domain.Placement) error {
	if item.ItemPlacement().Equal(dest) {
		return nil
	}
	max, err := e.writer.MaxOrderKey(ctx, item.Kind(), dest)
	if err != nil {
		return fmt.Errorf("finding destination order: %w", err)
	}
	key := max + 1
	item.SetItemPlacement(dest)
	item.SetOrderKey(key)
	if err := e.writer.WritePlacement(ctx, item, dest, key); err != nil {
		return fmt.Errorf("moving %s: %w", item.ItemID(), err)
	}
	return nil
}

func indexOf(items []domain.Item, id string) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/layout"
	"github.com/calewis/slate/internal/repository"
)

type scheduleService struct {
	stores   Stores
	columns  [2]layout.Column
	observer UseCaseObserver
}

// NewScheduleService validates block mutations against the given half-day
// columns. Pass layout.DefaultColumns for the standard 07:00-23:00 day.
func NewScheduleService(stores Stores, columns [2]layout.Column, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		stores:   stores,
		columns:  columns,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Blocks(ctx context.Context, date time.Time) ([]*repository.DayBlock, error) {
	return s.stores.DayBlocks.ListByDate(ctx, domain.DateOnly(date))
}

func (s *scheduleService) CreateBlock(ctx context.Context, date time.Time, title string, startMin, endMin int) (*repository.DayBlock, error) {
	start := time.Now()
	block, err := s.createBlock(ctx, date, title, startMin, endMin)
	s.observe(ctx, "schedule.create_block", start, err)
	return block, err
}

func (s *scheduleService) createBlock(ctx context.Context, date time.Time, title string, startMin, endMin int) (*repository.DayBlock, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: block title is empty", domain.ErrValidation)
	}
	date = domain.DateOnly(date)

	candidate := layout.Block{Title: title, StartMin: startMin, EndMin: endMin}
	if err := s.validate(ctx, date, candidate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	block := &repository.DayBlock{
		ID:        uuid.New().String(),
		Date:      date,
		Title:     title,
		StartMin:  startMin,
		EndMin:    endMin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stores.DayBlocks.Create(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *scheduleService) ResizeBlock(ctx context.Context, id string, endMin int) error {
	start := time.Now()
	err := s.resizeBlock(ctx, id, endMin)
	s.observe(ctx, "schedule.resize_block", start, err)
	return err
}

func (s *scheduleService) resizeBlock(ctx context.Context, id string, endMin int) error {
	block, err := s.stores.DayBlocks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	resized := layout.Block{ID: block.ID, Title: block.Title, StartMin: block.StartMin, EndMin: endMin}
	if err := s.validate(ctx, block.Date, resized); err != nil {
		return err
	}
	return s.stores.DayBlocks.UpdateTimes(ctx, id, block.StartMin, endMin)
}

func (s *scheduleService) RenameBlock(ctx context.Context, id string, title string) error {
	if title == "" {
		return fmt.Errorf("%w: block title is empty", domain.ErrValidation)
	}
	return s.stores.DayBlocks.UpdateTitle(ctx, id, title)
}

func (s *scheduleService) DeleteBlock(ctx context.Context, id string) error {
	return s.stores.DayBlocks.Delete(ctx, id)
}

// validate runs column and collision checks for a block against the date's
// persisted siblings. The block must fall entirely inside one column.
func (s *scheduleService) validate(ctx context.Context, date time.Time, b layout.Block) error {
	col, err := s.columnFor(b)
	if err != nil {
		return err
	}
	existing, err := s.stores.DayBlocks.ListByDate(ctx, date)
	if err != nil {
		return err
	}
	siblings := make([]layout.Block, 0, len(existing))
	for _, e := range existing {
		if col.Contains(e.StartMin) {
			siblings = append(siblings, layout.Block{ID: e.ID, Title: e.Title, StartMin: e.StartMin, EndMin: e.EndMin})
		}
	}
	return col.Validate(siblings, b)
}

func (s *scheduleService) columnFor(b layout.Block) (layout.Column, error) {
	for _, col := range s.columns {
		if col.Contains(b.StartMin) {
			return col, nil
		}
	}
	return layout.Column{}, fmt.Errorf("%w: block outside schedule columns", domain.ErrValidation)
}

func (s *scheduleService) observe(ctx context.Context, name string, start time.Time, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		StartedAt: start,
	})
}

package service

import (
	"context"
	"sort"
	"time"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/layout"
)

type boardService struct {
	stores   Stores
	observer UseCaseObserver
}

func NewBoardService(stores Stores, observers ...UseCaseObserver) BoardService {
	return &boardService{stores: stores, observer: useCaseObserverOrNoop(observers)}
}

func (s *boardService) Build(ctx context.Context, today time.Time) (*Board, error) {
	start := time.Now()
	board, err := s.build(ctx, today)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "board.build",
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		StartedAt: start,
	})
	return board, err
}

func (s *boardService) build(ctx context.Context, today time.Time) (*Board, error) {
	today = domain.DateOnly(today)
	board := &Board{
		Today:   today,
		Windows: domain.ComputePlanningWindows(today),
	}

	for offset := 0; offset < 7; offset++ {
		cell, err := s.dayCell(ctx, today.AddDate(0, 0, offset))
		if err != nil {
			return nil, err
		}
		board.Days = append(board.Days, cell)
	}

	for _, slot := range []struct {
		kind domain.WindowKind
		next bool
	}{
		{domain.WindowWorkweek, false},
		{domain.WindowWorkweek, true},
		{domain.WindowWeekend, false},
		{domain.WindowWeekend, true},
	} {
		cell, err := s.windowCell(ctx, slot.kind, board.Windows.WindowStart(slot.kind, slot.next), slot.next)
		if err != nil {
			return nil, err
		}
		board.Parking = append(board.Parking, cell)
	}

	var err error
	unplaced := domain.Unplaced()
	if board.UnplacedTasks, err = s.stores.Tasks.List(ctx, unplaced); err != nil {
		return nil, err
	}
	if board.UnplacedPlans, err = s.stores.Plans.List(ctx, unplaced); err != nil {
		return nil, err
	}
	if board.UnplacedIntentions, err = s.stores.Intentions.List(ctx, unplaced); err != nil {
		return nil, err
	}
	if board.Backlog, err = s.stores.ContentItems.List(ctx, unplaced); err != nil {
		return nil, err
	}

	if board.Spans, err = s.WeekSpans(ctx, board.Windows.ThisWeekStart); err != nil {
		return nil, err
	}
	board.Lanes = layout.LaneCount(board.Spans)
	return board, nil
}

func (s *boardService) dayCell(ctx context.Context, date time.Time) (DayCell, error) {
	cell := DayCell{Date: date}
	p := domain.OnDay(date)

	var err error
	if cell.Tasks, err = s.stores.Tasks.List(ctx, p); err != nil {
		return cell, err
	}
	if cell.Plans, err = s.stores.Plans.List(ctx, p); err != nil {
		return cell, err
	}
	if cell.Intentions, err = s.stores.Intentions.List(ctx, p); err != nil {
		return cell, err
	}
	if cell.Content, err = s.dayContent(ctx, date); err != nil {
		return cell, err
	}
	return cell, nil
}

// dayContent merges day-placed content items and sessions into the single
// mixed list the day cell renders, ordered by day-sort key.
func (s *boardService) dayContent(ctx context.Context, date time.Time) ([]domain.Item, error) {
	items, err := s.stores.ContentItems.ListByDaySorted(ctx, date)
	if err != nil {
		return nil, err
	}
	sessions, err := s.stores.ContentSessions.ListByDaySorted(ctx, date)
	if err != nil {
		return nil, err
	}

	mixed := make([]domain.DaySortable, 0, len(items)+len(sessions))
	for _, c := range items {
		mixed = append(mixed, c)
	}
	for _, sess := range sessions {
		mixed = append(mixed, sess)
	}
	sort.SliceStable(mixed, func(i, j int) bool {
		return mixed[i].DaySortKey() < mixed[j].DaySortKey()
	})

	out := make([]domain.Item, len(mixed))
	for i, m := range mixed {
		out[i] = m
	}
	return out, nil
}

func (s *boardService) windowCell(ctx context.Context, kind domain.WindowKind, windowStart time.Time, next bool) (WindowCell, error) {
	cell := WindowCell{Kind: kind, Start: windowStart, Next: next}
	p := domain.InWindow(kind, windowStart)

	var err error
	if cell.Tasks, err = s.stores.Tasks.List(ctx, p); err != nil {
		return cell, err
	}
	if cell.Plans, err = s.stores.Plans.List(ctx, p); err != nil {
		return cell, err
	}
	if cell.Intentions, err = s.stores.Intentions.List(ctx, p); err != nil {
		return cell, err
	}
	return cell, nil
}

func (s *boardService) WeekSpans(ctx context.Context, weekStart time.Time) ([]layout.Segment, error) {
	weekStart = domain.DateOnly(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	plans, err := s.stores.Plans.ListSpanningRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	var spans []layout.Span
	for _, p := range plans {
		if !p.IsMultiDay() {
			continue
		}
		spans = append(spans, layout.Span{
			ID:    p.ID,
			Title: p.Title,
			Start: p.StartDay(),
			End:   p.LastDay(),
		})
	}
	return layout.PackWeek(spans, weekStart), nil
}

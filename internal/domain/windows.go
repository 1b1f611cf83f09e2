package domain

import "time"

// PlanningWindows holds the four rolling parking window anchors derived from
// today's date. Workweek windows anchor on Monday, weekend windows on Saturday.
type PlanningWindows struct {
	ThisWeekStart    time.Time
	NextWeekStart    time.Time
	ThisWeekendStart time.Time
	NextWeekendStart time.Time
}

// ComputePlanningWindows derives the window anchors from today. It is pure:
// callers thread today in explicitly (re-derived at least once per calendar
// day boundary) rather than reading the clock here.
//
// "This week" means the current Monday-anchored work week, except on Saturday
// and Sunday, when it rolls forward to the upcoming week: during a weekend the
// work week just ending is no longer plannable.
func ComputePlanningWindows(today time.Time) PlanningWindows {
	today = DateOnly(today)

	var thisWeek time.Time
	switch today.Weekday() {
	case time.Saturday:
		thisWeek = today.AddDate(0, 0, 2)
	case time.Sunday:
		thisWeek = today.AddDate(0, 0, 1)
	default:
		thisWeek = today.AddDate(0, 0, -(int(today.Weekday()) - 1))
	}

	var thisWeekend time.Time
	switch today.Weekday() {
	case time.Saturday:
		thisWeekend = today
	case time.Sunday:
		thisWeekend = today.AddDate(0, 0, -1)
	default:
		// Next Saturday strictly after today.
		thisWeekend = today.AddDate(0, 0, int(time.Saturday)-int(today.Weekday()))
	}

	return PlanningWindows{
		ThisWeekStart:    thisWeek,
		NextWeekStart:    thisWeek.AddDate(0, 0, 7),
		ThisWeekendStart: thisWeekend,
		NextWeekendStart: thisWeekend.AddDate(0, 0, 7),
	}
}

// WindowStart returns the anchor date for the given window kind and slot.
// next selects the "next" variant of the window.
func (w PlanningWindows) WindowStart(kind WindowKind, next bool) time.Time {
	switch {
	case kind == WindowWorkweek && !next:
		return w.ThisWeekStart
	case kind == WindowWorkweek && next:
		return w.NextWeekStart
	case kind == WindowWeekend && !next:
		return w.ThisWeekendStart
	default:
		return w.NextWeekendStart
	}
}

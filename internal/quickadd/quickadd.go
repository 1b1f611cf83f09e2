// Package quickadd parses free-form capture text with inline #tag shorthand
// into a title, an item kind, and a placement.
package quickadd

import (
	"fmt"
	"strings"
	"time"

	"github.com/calewis/slate/internal/domain"
)

// Result is the outcome of parsing one quick-add line. Kind and Placement are
// only meaningful when the matching Has flag is set; unset categories keep
// whatever default the caller uses.
type Result struct {
	Title string

	Kind    domain.ItemKind
	HasKind bool

	Placement    domain.Placement
	HasPlacement bool
}

var kindTags = map[string]domain.ItemKind{
	"task":      domain.KindTask,
	"plan":      domain.KindPlan,
	"intention": domain.KindIntention,
}

var weekdayTags = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parse splits input on spaces and classifies #-prefixed tokens. Recognized
// categories are item kind, absolute day, window shortcut, and "no date";
// within a category the later token wins. Unrecognized tags stay in the title
// verbatim. An empty resulting title is a validation error.
func Parse(input string, today time.Time) (Result, error) {
	today = domain.DateOnly(today)
	windows := domain.ComputePlanningWindows(today)

	var res Result
	var titleWords []string

	for _, token := range strings.Fields(input) {
		if !strings.HasPrefix(token, "#") || len(token) == 1 {
			titleWords = append(titleWords, token)
			continue
		}
		tag := strings.ToLower(token[1:])

		if kind, ok := kindTags[tag]; ok {
			res.Kind = kind
			res.HasKind = true
			continue
		}
		if p, ok := placementForTag(tag, today, windows); ok {
			res.Placement = p
			res.HasPlacement = true
			continue
		}
		// Unrecognized tag: keep it in the title untouched.
		titleWords = append(titleWords, token)
	}

	res.Title = strings.Join(titleWords, " ")
	if res.Title == "" {
		return Result{}, fmt.Errorf("%w: title is empty", domain.ErrValidation)
	}
	return res, nil
}

// PlacementFor resolves a bare placement tag ("today", "friday", "next-week")
// the same way Parse resolves it with the # prefix.
func PlacementFor(tag string, today time.Time) (domain.Placement, bool) {
	today = domain.DateOnly(today)
	return placementForTag(strings.ToLower(tag), today, domain.ComputePlanningWindows(today))
}

func placementForTag(tag string, today time.Time, w domain.PlanningWindows) (domain.Placement, bool) {
	switch tag {
	case "today":
		return domain.OnDay(today), true
	case "tomorrow":
		return domain.OnDay(today.AddDate(0, 0, 1)), true
	case "this-week":
		return domain.InWindow(domain.WindowWorkweek, w.ThisWeekStart), true
	case "next-week":
		return domain.InWindow(domain.WindowWorkweek, w.NextWeekStart), true
	case "this-weekend":
		return domain.InWindow(domain.WindowWeekend, w.ThisWeekendStart), true
	case "next-weekend":
		return domain.InWindow(domain.WindowWeekend, w.NextWeekendStart), true
	case "no-date", "none":
		return domain.Unplaced(), true
	}
	if wd, ok := weekdayTags[tag]; ok {
		return domain.OnDay(nextWeekday(today, wd)), true
	}
	return domain.Placement{}, false
}

// nextWeekday returns the next occurrence of wd strictly after today.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

package formatter

import (
	"fmt"
	"time"

	"github.com/calewis/slate/internal/domain"
)

// DayLabel renders a calendar day relative to today: "Today", "Tomorrow", the
// weekday name within the coming week, or the short date beyond that.
func DayLabel(day, today time.Time) string {
	day = domain.DateOnly(day)
	today = domain.DateOnly(today)
	switch diff := int(day.Sub(today).Hours() / 24); {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff > 1 && diff < 7:
		return day.Weekday().String()
	default:
		return day.Format("Mon Jan 2")
	}
}

// Clock renders minutes from midnight as a 24-hour "15:04" string.
func Clock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ClockRange renders a start-end minute pair.
func ClockRange(startMin, endMin int) string {
	return Clock(startMin) + "-" + Clock(endMin)
}

// PlacementLabel renders a placement for display: "no date", the day's short
// date, or the window heading.
func PlacementLabel(p domain.Placement) string {
	switch p.Kind {
	case domain.PlacementDay:
		return p.Day.Format("Mon Jan 2")
	case domain.PlacementWindow:
		noun := "week"
		if p.WindowKind == domain.WindowWeekend {
			noun = "weekend"
		}
		return noun + " of " + p.WindowStart.Format("Jan 2")
	default:
		return "no date"
	}
}

// WindowLabel renders a parking window heading.
func WindowLabel(kind domain.WindowKind, next bool) string {
	which := "This"
	if next {
		which = "Next"
	}
	switch kind {
	case domain.WindowWeekend:
		return which + " weekend"
	default:
		return which + " week"
	}
}

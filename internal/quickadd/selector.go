package quickadd

import (
	"time"

	"github.com/calewis/slate/internal/domain"
)

// SelectorOption is one entry in the placement selector: a human label plus
// the canonical placement value it stands for.
type SelectorOption struct {
	Label string
	Value string // canonical placement string
}

// SelectorGroup is a labeled group of selector options.
type SelectorGroup struct {
	Name    string
	Options []SelectorOption
}

// SelectorGroups builds the two placement selector groups for today: "days"
// lists the next seven calendar days (Today, Tomorrow, then weekday names),
// "parking" lists the four rolling windows plus an explicit unplaced option.
func SelectorGroups(today time.Time) []SelectorGroup {
	today = domain.DateOnly(today)
	w := domain.ComputePlanningWindows(today)

	days := SelectorGroup{Name: "days"}
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i)
		label := d.Weekday().String()
		switch i {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		}
		days.Options = append(days.Options, SelectorOption{
			Label: label,
			Value: domain.OnDay(d).Encode(),
		})
	}

	parking := SelectorGroup{
		Name: "parking",
		Options: []SelectorOption{
			{Label: "This week", Value: domain.InWindow(domain.WindowWorkweek, w.ThisWeekStart).Encode()},
			{Label: "This weekend", Value: domain.InWindow(domain.WindowWeekend, w.ThisWeekendStart).Encode()},
			{Label: "Next week", Value: domain.InWindow(domain.WindowWorkweek, w.NextWeekStart).Encode()},
			{Label: "Next weekend", Value: domain.InWindow(domain.WindowWeekend, w.NextWeekendStart).Encode()},
			{Label: "No date", Value: domain.Unplaced().Encode()},
		},
	}

	return []SelectorGroup{days, parking}
}

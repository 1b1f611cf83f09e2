package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage and wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOnly strips the clock from t, keeping the calendar date in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Placement says where in time an item currently lives: a specific day, a
// rolling parking window, or nowhere at all. Exactly one variant applies.
type Placement struct {
	Kind        PlacementKind
	Day         time.Time  // valid when Kind == PlacementDay
	WindowKind  WindowKind // valid when Kind == PlacementWindow
	WindowStart time.Time  // valid when Kind == PlacementWindow
}

// Unplaced returns the empty placement.
func Unplaced() Placement {
	return Placement{Kind: PlacementNone}
}

// OnDay returns a placement pinning an item to one calendar day.
func OnDay(day time.Time) Placement {
	return Placement{Kind: PlacementDay, Day: DateOnly(day)}
}

// InWindow returns a placement parking an item in a rolling window.
func InWindow(kind WindowKind, start time.Time) Placement {
	return Placement{Kind: PlacementWindow, WindowKind: kind, WindowStart: DateOnly(start)}
}

// IsZero reports whether p is the unplaced variant (or uninitialized).
func (p Placement) IsZero() bool {
	return p.Kind == "" || p.Kind == PlacementNone
}

// Equal compares two placements by variant and calendar date.
func (p Placement) Equal(o Placement) bool {
	if p.Kind != o.Kind {
		return p.IsZero() && o.IsZero()
	}
	switch p.Kind {
	case PlacementDay:
		return SameDay(p.Day, o.Day)
	case PlacementWindow:
		return p.WindowKind == o.WindowKind && SameDay(p.WindowStart, o.WindowStart)
	default:
		return true
	}
}

// Encode renders the canonical string form:
//
//	none                     unplaced
//	D|2024-01-10             on a day
//	P|workweek|2024-01-08    in a window
func (p Placement) Encode() string {
	switch p.Kind {
	case PlacementDay:
		return "D|" + p.Day.Format(DateLayout)
	case PlacementWindow:
		return fmt.Sprintf("P|%s|%s", p.WindowKind, p.WindowStart.Format(DateLayout))
	default:
		return "none"
	}
}

// Key returns a stable partition key for the placement. Items sharing one
// collection and one Key belong to the same ordering partition.
func (p Placement) Key() string {
	return p.Encode()
}

// DecodePlacement parses a canonical placement string produced by Encode.
// Malformed input returns an error wrapping ErrBadPlacement.
func DecodePlacement(s string) (Placement, error) {
	if s == "" || s == "none" {
		return Unplaced(), nil
	}
	parts := strings.Split(s, "|")
	switch parts[0] {
	case "D":
		if len(parts) != 2 {
			return Placement{}, fmt.Errorf("%w: %q", ErrBadPlacement, s)
		}
		day, err := time.Parse(DateLayout, parts[1])
		if err != nil {
			return Placement{}, fmt.Errorf("%w: bad date in %q: %v", ErrBadPlacement, s, err)
		}
		return OnDay(day), nil
	case "P":
		if len(parts) != 3 {
			return Placement{}, fmt.Errorf("%w: %q", ErrBadPlacement, s)
		}
		kind := WindowKind(parts[1])
		if kind != WindowWorkweek && kind != WindowWeekend {
			return Placement{}, fmt.Errorf("%w: unknown window kind in %q", ErrBadPlacement, s)
		}
		start, err := time.Parse(DateLayout, parts[2])
		if err != nil {
			return Placement{}, fmt.Errorf("%w: bad date in %q: %v", ErrBadPlacement, s, err)
		}
		return InWindow(kind, start), nil
	default:
		return Placement{}, fmt.Errorf("%w: %q", ErrBadPlacement, s)
	}
}

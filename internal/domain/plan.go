package domain

import "time"

// Plan is a time-bound entry: an appointment, trip, or anything with a date
// span. A plan placed on a day may also span further days (EndDay) and may
// carry clock times within its starting day.
type Plan struct {
	ItemCore
	EndDay   *time.Time // inclusive last day, nil for single-day plans
	StartMin *int       // minutes from midnight, nil when no clock time
	EndMin   *int
	Location string
}

func (p *Plan) Kind() ItemKind { return KindPlan }

// StartDay returns the plan's first day, valid only for day-placed plans.
func (p *Plan) StartDay() time.Time {
	return p.Placement.Day
}

// LastDay returns the plan's inclusive final day.
func (p *Plan) LastDay() time.Time {
	if p.EndDay != nil {
		return *p.EndDay
	}
	return p.Placement.Day
}

// IsMultiDay reports whether the plan spans more than one calendar day.
func (p *Plan) IsMultiDay() bool {
	return p.Placement.Kind == PlacementDay && p.EndDay != nil && !SameDay(*p.EndDay, p.Placement.Day)
}

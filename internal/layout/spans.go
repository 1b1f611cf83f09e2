// Package layout holds the visual geometry algorithms: lane packing for
// multi-day spans and time-to-pixel mapping for day-schedule blocks.
package layout

import (
	"math"
	"sort"
	"time"

	"github.com/calewis/slate/internal/domain"
)

// Span is a multi-day entry as the packer sees it: an id, a title for
// deterministic tie-breaking, and an inclusive date range.
type Span struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

// Segment is a span clipped to one displayed week row, with its column range
// and assigned lane. Lane 0 renders closest to the day numbers; higher lanes
// stack below it.
type Segment struct {
	Span           Span
	StartCol       int // 0 = the row's first day
	EndCol         int // inclusive
	ContinuesLeft  bool
	ContinuesRight bool
	Lane           int
}

// PackWeek clips every span overlapping the 7-day row starting at weekStart,
// sorts the clipped segments deterministically, and greedily assigns lanes so
// overlapping segments never share one.
func PackWeek(spans []Span, weekStart time.Time) []Segment {
	weekStart = domain.DateOnly(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	var segs []Segment
	for _, s := range spans {
		start := domain.DateOnly(s.Start)
		end := domain.DateOnly(s.End)
		if end.Before(weekStart) || start.After(weekEnd) {
			continue
		}
		seg := Segment{Span: s}
		clippedStart := start
		if start.Before(weekStart) {
			clippedStart = weekStart
			seg.ContinuesLeft = true
		}
		clippedEnd := end
		if end.After(weekEnd) {
			clippedEnd = weekEnd
			seg.ContinuesRight = true
		}
		seg.StartCol = dayDiff(weekStart, clippedStart)
		seg.EndCol = dayDiff(weekStart, clippedEnd)
		segs = append(segs, seg)
	}

	sort.Slice(segs, func(i, j int) bool {
		if segs[i].StartCol != segs[j].StartCol {
			return segs[i].StartCol < segs[j].StartCol
		}
		if segs[i].EndCol != segs[j].EndCol {
			return segs[i].EndCol < segs[j].EndCol
		}
		return segs[i].Span.Title < segs[j].Span.Title
	})

	// Greedy first-fit: a lane is reusable once its last segment ended
	// strictly before this segment starts.
	var laneEnds []int
	for i := range segs {
		placed := false
		for lane, end := range laneEnds {
			if end < segs[i].StartCol {
				segs[i].Lane = lane
				laneEnds[lane] = segs[i].EndCol
				placed = true
				break
			}
		}
		if !placed {
			segs[i].Lane = len(laneEnds)
			laneEnds = append(laneEnds, segs[i].EndCol)
		}
	}
	return segs
}

// LaneCount returns the number of lanes used by the given segments.
func LaneCount(segs []Segment) int {
	max := 0
	for _, s := range segs {
		if s.Lane+1 > max {
			max = s.Lane + 1
		}
	}
	return max
}

// dayDiff counts calendar days from a to b, both date-only. Rounding absorbs
// the 23/25 hour days around DST transitions.
func dayDiff(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

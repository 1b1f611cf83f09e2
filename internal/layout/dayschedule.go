package layout

import (
	"fmt"
	"sort"

	"github.com/calewis/slate/internal/domain"
)

// GridMinutes is the snap grid for block creation and resizing.
const GridMinutes = 15

// Block is a scheduled time-of-day block within one column, in minutes from
// midnight. End is exclusive.
type Block struct {
	ID       string
	Title    string
	StartMin int
	EndMin   int
}

// Column is one fixed-length half-day column mapping clock time to vertical
// pixels. In the TUI a "pixel" is a terminal row.
type Column struct {
	StartMin    int // first minute of the column, from midnight
	EndMin      int // exclusive
	PixelHeight int
}

// DefaultColumns splits the planning day into two 8-hour halves.
func DefaultColumns(pixelHeight int) [2]Column {
	return [2]Column{
		{StartMin: 7 * 60, EndMin: 15 * 60, PixelHeight: pixelHeight},
		{StartMin: 15 * 60, EndMin: 23 * 60, PixelHeight: pixelHeight},
	}
}

// Hours returns the column's length in hours.
func (c Column) Hours() int {
	return (c.EndMin - c.StartMin) / 60
}

// PixelsPerHour is the vertical scale: column pixel height over hours.
func (c Column) PixelsPerHour() float64 {
	return float64(c.PixelHeight) / float64(c.Hours())
}

// Contains reports whether the minute falls inside the column.
func (c Column) Contains(min int) bool {
	return min >= c.StartMin && min < c.EndMin
}

// PixelFor maps a minute of day to a vertical pixel offset within the column.
func (c Column) PixelFor(min int) float64 {
	return float64(min-c.StartMin) / 60.0 * c.PixelsPerHour()
}

// MinuteAt maps a vertical pixel offset back to a minute of day, snapped down
// to the grid and clamped to the column.
func (c Column) MinuteAt(pixel float64) int {
	min := c.StartMin + int(pixel/c.PixelsPerHour()*60.0)
	min = snapDown(min)
	if min < c.StartMin {
		min = c.StartMin
	}
	if min > c.EndMin-GridMinutes {
		min = c.EndMin - GridMinutes
	}
	return min
}

// PixelSpan returns the block's top offset and height in pixels. Completed
// blocks always land on grid boundaries, so heights come out as exact
// multiples of PixelsPerHour/4.
func (c Column) PixelSpan(b Block) (top, height float64) {
	top = c.PixelFor(b.StartMin)
	height = float64(b.EndMin-b.StartMin) / 60.0 * c.PixelsPerHour()
	return top, height
}

// Covered reports whether any block in the column covers the given minute.
func Covered(blocks []Block, min int) bool {
	for _, b := range blocks {
		if min >= b.StartMin && min < b.EndMin {
			return true
		}
	}
	return false
}

// NextBoundaryAfter returns the first block start at or after min, or the
// column end when nothing follows. This caps how far a block may extend.
func (c Column) NextBoundaryAfter(blocks []Block, min int) int {
	bound := c.EndMin
	for _, b := range blocks {
		if b.StartMin >= min && b.StartMin < bound {
			bound = b.StartMin
		}
	}
	return bound
}

// PrevBoundaryBefore returns the latest block end at or before min, or the
// column start. This caps how far a block's start may move up.
func (c Column) PrevBoundaryBefore(blocks []Block, min int) int {
	bound := c.StartMin
	for _, b := range blocks {
		if b.EndMin <= min && b.EndMin > bound {
			bound = b.EndMin
		}
	}
	return bound
}

// BeginCreate validates a create gesture at the given minute and returns the
// provisional block: one grid unit starting at the snapped minute. The gesture
// is rejected when the snapped start is already covered or out of the column.
func (c Column) BeginCreate(blocks []Block, min int) (Block, error) {
	start := snapDown(min)
	if !c.Contains(start) {
		return Block{}, fmt.Errorf("%w: time outside column", domain.ErrValidation)
	}
	if Covered(blocks, start) {
		return Block{}, fmt.Errorf("%w: time already covered", domain.ErrValidation)
	}
	return Block{StartMin: start, EndMin: start + GridMinutes}, nil
}

// ClampEnd snaps a proposed end minute to the grid and clamps it to the legal
// range for the block: at least one grid unit past the start, at most the gap
// to the next sibling's start or the column end. Blocks other than the one
// being adjusted act as immovable neighbors.
func (c Column) ClampEnd(blocks []Block, b Block, proposedEnd int) int {
	end := snapUp(proposedEnd)
	min := b.StartMin + GridMinutes
	max := c.NextBoundaryAfter(without(blocks, b.ID), b.StartMin+1)
	if end < min {
		end = min
	}
	if end > max {
		end = max
	}
	return end
}

// Validate checks a block against the column and its siblings: grid-aligned,
// start strictly before end, inside the column, and no minute covered twice.
func (c Column) Validate(blocks []Block, b Block) error {
	if b.StartMin%GridMinutes != 0 || b.EndMin%GridMinutes != 0 {
		return fmt.Errorf("%w: block not grid aligned", domain.ErrValidation)
	}
	if b.StartMin >= b.EndMin {
		return fmt.Errorf("%w: start must be before end", domain.ErrValidation)
	}
	if b.StartMin < c.StartMin || b.EndMin > c.EndMin {
		return fmt.Errorf("%w: block outside column", domain.ErrValidation)
	}
	for _, o := range without(blocks, b.ID) {
		if b.StartMin < o.EndMin && o.StartMin < b.EndMin {
			return fmt.Errorf("%w: block overlaps %q", domain.ErrValidation, o.Title)
		}
	}
	return nil
}

// SortBlocks orders blocks by start time, in place.
func SortBlocks(blocks []Block) {
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].StartMin < blocks[j].StartMin })
}

func without(blocks []Block, id string) []Block {
	if id == "" {
		return blocks
	}
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

func snapDown(min int) int {
	return min - min%GridMinutes
}

func snapUp(min int) int {
	if r := min % GridMinutes; r != 0 {
		return min + GridMinutes - r
	}
	return min
}

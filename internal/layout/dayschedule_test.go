package layout

import (
	"math"
	"testing"

	"github.com/calewis/slate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 32-row column over 8 hours gives 4 pixels per hour, 1 per grid unit.
func testColumn() Column {
	return Column{StartMin: 7 * 60, EndMin: 15 * 60, PixelHeight: 32}
}

func block(id string, startHour, startMin, endHour, endMin int) Block {
	return Block{ID: id, Title: id, StartMin: startHour*60 + startMin, EndMin: endHour*60 + endMin}
}

func TestColumn_PixelMapping(t *testing.T) {
	c := testColumn()
	assert.Equal(t, 8, c.Hours())
	assert.InDelta(t, 4.0, c.PixelsPerHour(), 1e-9)

	assert.InDelta(t, 0.0, c.PixelFor(7*60), 1e-9)
	assert.InDelta(t, 4.0, c.PixelFor(8*60), 1e-9)
	assert.InDelta(t, 10.0, c.PixelFor(9*60+30), 1e-9)
}

func TestColumn_MinuteAtSnapsToGrid(t *testing.T) {
	c := testColumn()
	assert.Equal(t, 7*60, c.MinuteAt(0))
	assert.Equal(t, 9*60+30, c.MinuteAt(10))
	// Fractional pixel positions snap down to the enclosing grid unit.
	assert.Equal(t, 9*60+30, c.MinuteAt(10.7))
	// Clamped to the last grid unit of the column.
	assert.Equal(t, 15*60-GridMinutes, c.MinuteAt(1000))
}

func TestBeginCreate_RejectedWhenCovered(t *testing.T) {
	c := testColumn()
	blocks := []Block{block("b1", 9, 0, 10, 0)}

	_, err := c.BeginCreate(blocks, 9*60+30)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Exactly at the block's end is free (end is exclusive).
	b, err := c.BeginCreate(blocks, 10*60)
	require.NoError(t, err)
	assert.Equal(t, 10*60, b.StartMin)
	assert.Equal(t, 10*60+GridMinutes, b.EndMin)
}

func TestBeginCreate_RejectedOutsideColumn(t *testing.T) {
	c := testColumn()
	_, err := c.BeginCreate(nil, 6*60)
	require.Error(t, err)
	_, err = c.BeginCreate(nil, 15*60)
	require.Error(t, err)
}

func TestBeginCreate_SnapsStartToGrid(t *testing.T) {
	c := testColumn()
	b, err := c.BeginCreate(nil, 9*60+37)
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, b.StartMin)
}

func TestClampEnd_GapToNextSibling(t *testing.T) {
	c := testColumn()
	blocks := []Block{block("b1", 9, 0, 10, 0), block("b2", 11, 0, 12, 0)}

	// A block starting at 10:00 may extend at most to 11:00.
	b := Block{ID: "new", StartMin: 10 * 60, EndMin: 10*60 + GridMinutes}
	assert.Equal(t, 11*60, c.ClampEnd(blocks, b, 13*60))
	// ...and no less than one grid unit.
	assert.Equal(t, 10*60+GridMinutes, c.ClampEnd(blocks, b, 10*60))
	// In-range proposals snap up to the grid.
	assert.Equal(t, 10*60+30, c.ClampEnd(blocks, b, 10*60+20))
}

func TestClampEnd_ColumnEndWhenNoSibling(t *testing.T) {
	c := testColumn()
	b := Block{ID: "new", StartMin: 14 * 60, EndMin: 14*60 + GridMinutes}
	assert.Equal(t, 15*60, c.ClampEnd(nil, b, 23*60))
}

func TestClampEnd_IgnoresTheBlockItself(t *testing.T) {
	c := testColumn()
	existing := block("b1", 9, 0, 10, 0)
	// Resizing b1 must not treat b1's own start as a neighbor boundary.
	assert.Equal(t, 10*60+30, c.ClampEnd([]Block{existing}, existing, 10*60+30))
}

func TestClampEnd_HeightsAreGridMultiples(t *testing.T) {
	c := testColumn()
	b := Block{ID: "new", StartMin: 9 * 60, EndMin: 9*60 + GridMinutes}
	grid := c.PixelsPerHour() / 4

	for proposed := 9*60 + 1; proposed <= 15*60+30; proposed += 7 {
		end := c.ClampEnd(nil, b, proposed)
		resized := Block{ID: "new", StartMin: b.StartMin, EndMin: end}
		_, height := c.PixelSpan(resized)
		ratio := height / grid
		assert.InDelta(t, math.Round(ratio), ratio, 1e-9,
			"height %.2f is not a multiple of pixelsPerHour/4", height)
	}
}

func TestValidate_OverlapAndBounds(t *testing.T) {
	c := testColumn()
	blocks := []Block{block("b1", 9, 0, 10, 0)}

	require.NoError(t, c.Validate(blocks, block("ok", 10, 0, 11, 0)))

	err := c.Validate(blocks, block("clash", 9, 30, 10, 30))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = c.Validate(blocks, Block{ID: "inverted", Title: "x", StartMin: 10 * 60, EndMin: 10 * 60})
	require.Error(t, err)

	err = c.Validate(blocks, block("early", 6, 0, 7, 0))
	require.Error(t, err)

	err = c.Validate(blocks, Block{ID: "offgrid", Title: "x", StartMin: 10*60 + 5, EndMin: 11 * 60})
	require.Error(t, err)

	// A block validates against siblings, never against itself.
	require.NoError(t, c.Validate(blocks, block("b1", 9, 0, 10, 30)))
}

func TestBoundaries(t *testing.T) {
	c := testColumn()
	blocks := []Block{block("b1", 9, 0, 10, 0), block("b2", 12, 0, 13, 0)}

	assert.Equal(t, 12*60, c.NextBoundaryAfter(blocks, 10*60+1))
	assert.Equal(t, 15*60, c.NextBoundaryAfter(blocks, 13*60+1))
	assert.Equal(t, 10*60, c.PrevBoundaryBefore(blocks, 11*60))
	assert.Equal(t, 7*60, c.PrevBoundaryBefore(blocks, 8*60))
}

func TestDefaultColumns(t *testing.T) {
	cols := DefaultColumns(32)
	assert.Equal(t, 7*60, cols[0].StartMin)
	assert.Equal(t, 15*60, cols[0].EndMin)
	assert.Equal(t, 15*60, cols[1].StartMin)
	assert.Equal(t, 23*60, cols[1].EndMin)
	assert.Equal(t, cols[0].Hours(), cols[1].Hours())
}

func TestSortBlocks(t *testing.T) {
	blocks := []Block{block("late", 12, 0, 13, 0), block("early", 8, 0, 9, 0)}
	SortBlocks(blocks)
	assert.Equal(t, "early", blocks[0].ID)
}

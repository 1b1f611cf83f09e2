// Package gesture turns raw press/move/release pointer events into drag,
// edit-open, and tap actions via an explicit per-surface state machine.
//
// The machine exists because press-and-hold semantics cannot be delegated to
// the input layer: the same press may become a scroll, a tap, a drag, or a
// long-press edit, and only timing plus movement distinguishes them. One
// Controller owns the single in-flight session for its surface; timers are
// sequence-stamped so stale fires are ignored rather than cancelled.
package gesture

import (
	"time"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/ordering"
)

// State is the controller's current phase.
type State int

const (
	// Idle: no gesture in progress.
	Idle State = iota
	// Pressed: pointer is down, hold threshold not yet reached. Movement
	// beyond tolerance here means a scroll, which cancels everything.
	Pressed
	// PendingDrag: held long enough to drag, pointer still within tolerance.
	// Movement beyond tolerance promotes to Dragging; holding until the edit
	// timer fires opens the edit affordance instead.
	PendingDrag
	// Dragging: the row follows the pointer; each move re-resolves the drop
	// target under it.
	Dragging
)

// Row identifies one draggable row and its vertical extent on the surface.
type Row struct {
	ID           string
	Kind         domain.ItemKind
	PartitionKey string
	Top          int // first y coordinate covered by the row
	Height       int
}

// Midpoint returns the y coordinate separating "above" from "below".
func (r Row) Midpoint() int {
	return r.Top + r.Height/2
}

// Target is the drop target recorded on the most recent move.
type Target struct {
	Row Row
	Pos ordering.Position
}

// ActionType classifies the outcome of a gesture.
type ActionType int

const (
	ActionNone ActionType = iota
	// ActionTap: press released before the hold threshold without moving.
	ActionTap
	// ActionEdit: held past the edit threshold without moving.
	ActionEdit
	// ActionDrop: a drag released over a valid target.
	ActionDrop
)

// Action is what the surface should do in response to a completed gesture.
type Action struct {
	Type    ActionType
	Dragged Row
	Target  Target
}

// Config tunes the state machine. HitTest resolves the topmost row under a
// point; InBounds reports whether a point is still inside the draggable
// surface. Now is injectable for tests.
type Config struct {
	HoldThreshold time.Duration // press-and-hold before a drag may begin
	EditThreshold time.Duration // longer hold that opens the edit affordance
	Tolerance     int           // movement under this many cells is "not moving"

	HitTest  func(x, y int) (Row, bool)
	InBounds func(x, y int) bool
	Now      func() time.Time
}

// DefaultConfig returns thresholds tuned for terminal cell geometry.
func DefaultConfig() Config {
	return Config{
		HoldThreshold: 150 * time.Millisecond,
		EditThreshold: 600 * time.Millisecond,
		Tolerance:     1,
		Now:           time.Now,
	}
}

// Controller is the per-surface drag state machine. Not safe for concurrent
// use; it is driven entirely from the single UI event loop.
type Controller struct {
	cfg Config

	state   State
	seq     int // stamps timers; incremented whenever a press begins or ends
	pressX  int
	pressY  int
	pressAt time.Time

	dragged   Row
	target    Target
	hasTarget bool
}

func NewController(cfg Config) *Controller {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Controller{cfg: cfg}
}

// State exposes the current phase, mainly for rendering (e.g. highlighting
// the dragged row).
func (c *Controller) State() State { return c.state }

// Config returns the configuration the controller was built with. Surfaces
// schedule their hold/edit timers from it so the durations cannot drift from
// what the machine expects.
func (c *Controller) Config() Config { return c.cfg }

// Seq returns the current timer sequence. Timer messages must carry the
// sequence observed at press time; HoldTimerFired/EditTimerFired ignore
// mismatches.
func (c *Controller) Seq() int { return c.seq }

// Dragged returns the row being dragged, valid while State() == Dragging.
func (c *Controller) Dragged() Row { return c.dragged }

// DropTarget returns the current drop target, if any.
func (c *Controller) DropTarget() (Target, bool) { return c.target, c.hasTarget }

// Press begins a gesture at (x, y). Returns false when ignored: no row under
// the pointer, or a prior gesture on this surface is still unresolved.
func (c *Controller) Press(x, y int) bool {
	if c.state != Idle {
		return false
	}
	row, ok := c.cfg.HitTest(x, y)
	if !ok {
		return false
	}
	c.seq++
	c.state = Pressed
	c.pressX, c.pressY = x, y
	c.pressAt = c.cfg.Now()
	c.dragged = row
	c.hasTarget = false
	return true
}

// HoldTimerFired promotes Pressed to PendingDrag once the hold threshold has
// elapsed without disqualifying movement. Stale sequences are ignored.
func (c *Controller) HoldTimerFired(seq int) {
	if seq != c.seq || c.state != Pressed {
		return
	}
	c.state = PendingDrag
}

// EditTimerFired resolves a long motionless hold as edit-open. It fires only
// from PendingDrag (or Pressed, when thresholds are configured very close):
// once the gesture became a drag the edit path is already dead.
func (c *Controller) EditTimerFired(seq int) (Row, bool) {
	if seq != c.seq || (c.state != PendingDrag && c.state != Pressed) {
		return Row{}, false
	}
	row := c.dragged
	c.reset()
	return row, true
}

// Move advances the machine with a new pointer position.
func (c *Controller) Move(x, y int) {
	switch c.state {
	case Idle:
		return

	case Pressed:
		// Movement before the hold threshold is a scroll, not a drag.
		// Cancelling here also kills the pending edit timer.
		if c.exceedsTolerance(x, y) {
			c.reset()
		}

	case PendingDrag:
		if c.exceedsTolerance(x, y) {
			// The drag wins; only the edit path is cancelled (by the state
			// change, which makes the edit timer's sequence check fail the
			// state condition).
			c.state = Dragging
			c.updateTarget(x, y)
		}

	case Dragging:
		if c.cfg.InBounds != nil && !c.cfg.InBounds(x, y) {
			c.Cancel()
			return
		}
		c.updateTarget(x, y)
	}
}

// updateTarget hit-tests the topmost row under the pointer and compares the
// pointer y against its midpoint to choose above/below. The result is stored
// as the current target; Release commits whatever was recorded last.
func (c *Controller) updateTarget(x, y int) {
	row, ok := c.cfg.HitTest(x, y)
	if !ok || row.ID == c.dragged.ID {
		return
	}
	pos := ordering.Above
	if y >= row.Midpoint() {
		pos = ordering.Below
	}
	c.target = Target{Row: row, Pos: pos}
	c.hasTarget = true
}

// Release ends the gesture and reports the resulting action. A release during
// Pressed is a tap; a release during Dragging with a recorded target is a
// drop; everything else dissolves with no action.
func (c *Controller) Release(x, y int) Action {
	defer c.reset()

	switch c.state {
	case Pressed:
		return Action{Type: ActionTap, Dragged: c.dragged}
	case Dragging:
		if c.hasTarget {
			return Action{Type: ActionDrop, Dragged: c.dragged, Target: c.target}
		}
	}
	return Action{Type: ActionNone}
}

// Cancel clears all transient state with no persistence. Used when the
// pointer leaves the surface or the gesture is explicitly abandoned.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.seq++
	c.state = Idle
	c.hasTarget = false
	c.dragged = Row{}
	c.target = Target{}
}

func (c *Controller) exceedsTolerance(x, y int) bool {
	dx := abs(x - c.pressX)
	dy := abs(y - c.pressY)
	return dx > c.cfg.Tolerance || dy > c.cfg.Tolerance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

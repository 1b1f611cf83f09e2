package cli

import "time"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Today anchors the rolling windows and relative day labels. Views
	// re-read it on refresh so a session crossing midnight stays coherent.
	Today time.Time

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content, accounting
// for header (2 lines), status bar (2 lines), and quick-add bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

package domain

import "time"

// Task is a single actionable to-do.
type Task struct {
	ItemCore
	Note        string
	Done        bool
	CompletedAt *time.Time
}

func (t *Task) Kind() ItemKind { return KindTask }

// MarkDone flips completion and stamps CompletedAt accordingly.
func (t *Task) MarkDone(done bool, now time.Time) {
	t.Done = done
	if done {
		at := now
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
}

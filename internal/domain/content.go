package domain

import "time"

// ContentItem is a media/content backlog entry (an article, video, book...).
// Unplaced content items form the backlog; placing one on a day schedules it.
// Day-placed content shares a mixed per-day list with content sessions,
// ordered by DaySort.
type ContentItem struct {
	ItemCore
	Medium  Medium
	Link    string
	DaySort int
	Done    bool
}

func (c *ContentItem) Kind() ItemKind { return KindContentItem }

// ContentSession is one sitting spent on a content item: "read chapter 3 on
// Tuesday". Sessions always live on a day and interleave with day-placed
// content items via DaySort.
type ContentSession struct {
	ItemCore
	ContentItemID string
	DaySort       int
	Note          string
	CompletedAt   *time.Time
}

func (s *ContentSession) Kind() ItemKind { return KindContentSession }

// DaySortable is implemented by kinds that participate in the day-local mixed
// content list, carrying a secondary order scoped to one calendar day.
type DaySortable interface {
	Item
	DaySortKey() int
	SetDaySortKey(int)
}

func (c *ContentItem) DaySortKey() int        { return c.DaySort }
func (c *ContentItem) SetDaySortKey(k int)    { c.DaySort = k }
func (s *ContentSession) DaySortKey() int     { return s.DaySort }
func (s *ContentSession) SetDaySortKey(k int) { s.DaySort = k }

package domain

type ItemKind string

const (
	KindTask           ItemKind = "task"
	KindPlan           ItemKind = "plan"
	KindIntention      ItemKind = "intention"
	KindContentItem    ItemKind = "content_item"
	KindContentSession ItemKind = "content_session"
)

// ValidItemKinds is the canonical set of accepted item kind strings.
var ValidItemKinds = map[string]bool{
	"task": true, "plan": true, "intention": true,
	"content_item": true, "content_session": true,
}

type PlacementKind string

const (
	PlacementNone   PlacementKind = "none"
	PlacementDay    PlacementKind = "day"
	PlacementWindow PlacementKind = "window"
)

type WindowKind string

const (
	WindowWorkweek WindowKind = "workweek"
	WindowWeekend  WindowKind = "weekend"
)

type Medium string

const (
	MediumArticle Medium = "article"
	MediumVideo   Medium = "video"
	MediumBook    Medium = "book"
	MediumPodcast Medium = "podcast"
	MediumOther   Medium = "other"
)

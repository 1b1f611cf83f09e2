package domain

// Intention is a short-lived nudge: a small thing to keep in mind on a day or
// during a window, lighter weight than a task.
type Intention struct {
	ItemCore
	Done bool
}

func (i *Intention) Kind() ItemKind { return KindIntention }

package domain

import "time"

// Item is the common shape shared by all plannable kinds. The ordering engine
// and the drag controller operate only on this interface, never on
// kind-specific fields.
type Item interface {
	ItemID() string
	ItemTitle() string
	Kind() ItemKind
	OrderKey() int
	SetOrderKey(int)
	ItemPlacement() Placement
	SetItemPlacement(Placement)
}

// ItemCore carries the attributes every item kind shares. Concrete kinds embed
// it to satisfy the Item interface.
type ItemCore struct {
	ID        string
	Title     string
	Order     int
	Placement Placement
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *ItemCore) ItemID() string               { return c.ID }
func (c *ItemCore) ItemTitle() string            { return c.Title }
func (c *ItemCore) OrderKey() int                { return c.Order }
func (c *ItemCore) SetOrderKey(k int)            { c.Order = k }
func (c *ItemCore) ItemPlacement() Placement     { return c.Placement }
func (c *ItemCore) SetItemPlacement(p Placement) { c.Placement = p }

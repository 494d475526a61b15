package models

import (
	"time"

	"github.com/google/uuid"
)

// OptionQuantity pairs an option with how many times it was selected.
type OptionQuantity struct {
	OptionID uuid.UUID `json:"option_id"`
	Quantity int       `json:"quantity"`
}

// Selection is the customization choice for one group on a cart line.
// Exactly one of OptionID, OptionIDs or Options is set depending on the
// group type; Expand flattens all three shapes into plain option ids so
// pricing never branches on the variant again.
type Selection struct {
	GroupID   uuid.UUID        `json:"group_id"`
	OptionID  *uuid.UUID       `json:"option_id,omitempty"`
	OptionIDs []uuid.UUID      `json:"option_ids,omitempty"`
	Options   []OptionQuantity `json:"options,omitempty"`
}

// Expand returns the selected option ids, repeating an id once per
// selected quantity.
func (s Selection) Expand() []uuid.UUID {
	var ids []uuid.UUID
	if s.OptionID != nil {
		ids = append(ids, *s.OptionID)
	}
	ids = append(ids, s.OptionIDs...)
	for _, oq := range s.Options {
		for i := 0; i < oq.Quantity; i++ {
			ids = append(ids, oq.OptionID)
		}
	}
	return ids
}

// CartLine references a menu item with quantity and customizations.
type CartLine struct {
	ItemID     uuid.UUID   `json:"item_id"`
	Quantity   int         `json:"quantity"`
	Selections []Selection `json:"selections,omitempty"`
	AddOnTotal float64     `json:"add_on_total,omitempty"`
}

// Cart is the mutable pre-checkout state, stored as one JSON blob per
// key in Redis. Key is the user id for signed-in customers and the
// session id for guests.
type Cart struct {
	Key       string     `json:"key"`
	UserID    string     `json:"user_id,omitempty"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

package deck

import "fmt"

// Card is an individual Trio card
// A deck holds three copies of every number, so two cards with the same
// number are still distinct cards. Identity is the ID.
type Card struct {
	ID     int `json:"id"`
	Number int `json:"number"`
}

func (c Card) String() string {
	return fmt.Sprintf("%d[#%d]", c.Number, c.ID)
}

// Equal returns true if the cards are the same physical card
func (c Card) Equal(card Card) bool {
	return c.ID == card.ID
}

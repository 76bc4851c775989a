package trio

import (
	"sort"

	"trio-server/pkg/deck"
)

// Player is a seated player in a room
// The room owns all cards; a player only holds the cards physically in their
// hand or in captured trios, and those two sets never overlap.
type Player struct {
	ID        string
	Name      string
	Connected bool

	// hand is kept sorted ascending by number so lowest/highest reveals are
	// fixed-position picks
	hand  []deck.Card
	trios [][]deck.Card
}

// NewPlayer returns a new connected player
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Connected: true,
	}
}

// HandSize returns the number of cards in the player's hand
func (p *Player) HandSize() int {
	return len(p.hand)
}

// TrioCount returns the number of captured trios
func (p *Player) TrioCount() int {
	return len(p.trios)
}

func (p *Player) sortHand() {
	sort.Slice(p.hand, func(i, j int) bool {
		return p.hand[i].Number < p.hand[j].Number
	})
}

func (p *Player) lowest() (deck.Card, bool) {
	if len(p.hand) == 0 {
		return deck.Card{}, false
	}

	return p.hand[0], true
}

func (p *Player) highest() (deck.Card, bool) {
	if len(p.hand) == 0 {
		return deck.Card{}, false
	}

	return p.hand[len(p.hand)-1], true
}

// takeAt removes and returns the card at the given end of the hand
func (p *Player) takeAt(position Position) (deck.Card, bool) {
	if len(p.hand) == 0 {
		return deck.Card{}, false
	}

	if position == PositionLowest {
		card := p.hand[0]
		p.hand = p.hand[1:]
		return card, true
	}

	card := p.hand[len(p.hand)-1]
	p.hand = p.hand[:len(p.hand)-1]
	return card, true
}

// giveCard puts a card back into the hand, keeping it sorted
func (p *Player) giveCard(card deck.Card) {
	p.hand = append(p.hand, card)
	p.sortHand()
}

func (p *Player) addTrio(cards []deck.Card) {
	trio := make([]deck.Card, len(cards))
	copy(trio, cards)
	p.trios = append(p.trios, trio)
}

// Public returns the projection of the player every seat may see
func (p *Player) Public() PlayerState {
	trios := make([][]int, len(p.trios))
	for i, trio := range p.trios {
		numbers := make([]int, len(trio))
		for j, card := range trio {
			numbers[j] = card.Number
		}
		trios[i] = numbers
	}

	return PlayerState{
		ID:        p.ID,
		Name:      p.Name,
		CardCount: len(p.hand),
		TrioCount: len(p.trios),
		Trios:     trios,
		Connected: p.Connected,
	}
}

// Hand returns the private projection only this player may see
func (p *Player) Hand() HandState {
	cards := make([]CardState, len(p.hand))
	for i, card := range p.hand {
		cards[i] = faceUpCard(card)
	}

	state := HandState{Hand: cards}
	if low, ok := p.lowest(); ok {
		n := low.Number
		state.Lowest = &n
	}
	if high, ok := p.highest(); ok {
		n := high.Number
		state.Highest = &n
	}

	return state
}

package trio

import (
	"fmt"
	"sort"

	"trio-server/pkg/deck"
)

// middleSourceName is the origin label for cards revealed from the middle pile
const middleSourceName = "Middle"

// requireTurn validates the common reveal preconditions: the room must be
// playing and the actor must hold the current seat
func (r *Room) requireTurn(actorID string) (*Player, error) {
	if r.phase != PhasePlaying {
		return nil, PhaseError("Game is not in progress")
	}

	if r.currentPlayerID() != actorID {
		return nil, TurnError("It's not your turn!")
	}

	return r.players[actorID], nil
}

// RevealMiddle flips a face-down middle card face-up and appends it to the
// reveal sequence
func (r *Room) RevealMiddle(actorID string, cardID int) ([]Event, error) {
	actor, err := r.requireTurn(actorID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, mc := range r.middle {
		if mc.card.ID == cardID {
			idx = i
			break
		}
	}

	if idx == -1 {
		return nil, TargetError("Card not found in middle")
	}

	if r.middle[idx].state != middleFaceDown {
		return nil, TargetError("This card is already face up")
	}

	r.middle[idx].state = middleFaceUp
	r.revealed = append(r.revealed, revealedCard{
		card:       r.middle[idx].card,
		kind:       originMiddle,
		sourceName: middleSourceName,
	})

	events := []Event{
		broadcast(&CardRevealedMessage{
			Type:       TypeCardRevealed,
			Card:       faceUpCard(r.middle[idx].card),
			Source:     middleSourceName,
			RevealedBy: actor.Name,
		}),
	}

	return append(events, r.evaluateReveal()...), nil
}

// RevealPlayer removes the lowest or highest card from the target's sorted
// hand and appends it to the reveal sequence. The target may be the actor.
func (r *Room) RevealPlayer(actorID, targetID string, position Position) ([]Event, error) {
	actor, err := r.requireTurn(actorID)
	if err != nil {
		return nil, err
	}

	if !validPosition(position) {
		return nil, TargetError("Must reveal 'lowest' or 'highest'")
	}

	target, ok := r.players[targetID]
	if !ok {
		return nil, TargetError("Player not found")
	}

	card, ok := target.takeAt(position)
	if !ok {
		return nil, TargetError(fmt.Sprintf("%s has no cards", target.Name))
	}

	r.revealed = append(r.revealed, revealedCard{
		card:       card,
		kind:       originHand,
		playerID:   targetID,
		position:   position,
		sourceName: target.Name,
	})

	events := []Event{
		broadcast(&CardRevealedMessage{
			Type:       TypeCardRevealed,
			Card:       faceUpCard(card),
			Source:     target.Name,
			SourceID:   targetID,
			Position:   position,
			RevealedBy: actor.Name,
		}),
		private(targetID, &HandMessage{
			Type: TypeYourHand,
			Hand: target.Hand(),
		}),
		broadcast(r.gameState()),
	}

	return append(events, r.evaluateReveal()...), nil
}

// evaluateReveal runs the outcome evaluator on the trailing entries of the
// sequence after every append:
//  1. fewer than two entries: no decision yet
//  2. last three equal: trio
//  3. last two unequal: fail (rule 2 wins for a sequence of exactly three
//     equal entries, whose last two are also equal)
//  4. otherwise the sequence still matches and the actor keeps revealing
func (r *Room) evaluateReveal() []Event {
	n := len(r.revealed)
	if n < 2 {
		return []Event{broadcast(r.gameState())}
	}

	if n >= 3 {
		a, b, c := r.revealed[n-3].card.Number, r.revealed[n-2].card.Number, r.revealed[n-1].card.Number
		if a == b && b == c {
			return r.completeTrio()
		}
	}

	if r.revealed[n-1].card.Number != r.revealed[n-2].card.Number {
		// broadcast state first so every client renders the mismatched card,
		// then announce the failure; the revert happens after the visible delay
		r.failPending = true
		actor := r.currentPlayer()
		return []Event{
			broadcast(r.gameState()),
			broadcast(&TurnFailedMessage{
				Type:        TypeTurnFailed,
				Player:      actor.Name,
				Message:     fmt.Sprintf("Different numbers! %s's turn ends.", actor.Name),
				DelayReturn: true,
			}),
		}
	}

	return []Event{
		broadcast(&RevealMatchMessage{
			Type:    TypeRevealMatch,
			Message: fmt.Sprintf("Match! (%d) Keep revealing...", r.revealed[n-1].card.Number),
			Count:   n,
		}),
		broadcast(r.gameState()),
	}
}

// completeTrio captures the last three sequence entries for the acting
// player. Middle-origin slots become permanently taken; hand-origin cards
// were already removed at reveal time. On a win the room finishes, otherwise
// the same seat keeps the turn.
func (r *Room) completeTrio() []Event {
	actor := r.currentPlayer()
	last3 := r.revealed[len(r.revealed)-3:]
	trioNumber := last3[0].card.Number

	trioCards := make([]deck.Card, len(last3))
	handOrigins := make([]string, 0, len(last3))
	for i, entry := range last3 {
		trioCards[i] = entry.card

		switch entry.kind {
		case originMiddle:
			for j := range r.middle {
				if r.middle[j].card.ID == entry.card.ID {
					r.middle[j].state = middleTaken
					break
				}
			}
		case originHand:
			handOrigins = append(handOrigins, entry.playerID)
		}
	}

	actor.addTrio(trioCards)
	r.revealed = nil

	events := []Event{
		broadcast(&TrioCompleteMessage{
			Type:       TypeTrioComplete,
			Player:     actor.Name,
			PlayerID:   actor.ID,
			TrioNumber: trioNumber,
			Message:    fmt.Sprintf("%s got a trio of %ds!", actor.Name, trioNumber),
		}),
	}

	// refresh the hand view of every seat a captured card came from
	sent := make(map[string]bool)
	for _, id := range handOrigins {
		if sent[id] {
			continue
		}
		sent[id] = true
		events = append(events, private(id, &HandMessage{
			Type: TypeYourHand,
			Hand: r.players[id].Hand(),
		}))
	}

	if win := r.checkWin(actor); win != nil {
		return append(events, win...)
	}

	// a successful trio keeps the turn with the same seat
	return append(events,
		broadcast(r.gameState()),
		private(actor.ID, &TurnMessage{
			Type:    TypeYourTurn,
			Message: "Great trio! Continue your turn - find another!",
		}),
	)
}

// checkWin evaluates the win conditions for the capturing player. A 7-trio
// wins instantly in either mode; SIMPLE needs three trios; SPICY needs two
// trios with connected numbers.
func (r *Room) checkWin(player *Player) []Event {
	for _, trio := range player.trios {
		if trio[0].Number == 7 {
			return r.finish(player, "7-trio", "Got the legendary 7-7-7 trio!")
		}
	}

	switch r.mode {
	case ModeSimple:
		if len(player.trios) >= 3 {
			return r.finish(player, "3 trios", "Collected 3 trios!")
		}
	case ModeSpicy:
		if len(player.trios) >= 2 {
			for i := 0; i < len(player.trios); i++ {
				for j := i + 1; j < len(player.trios); j++ {
					a, b := player.trios[i][0].Number, player.trios[j][0].Number
					if isConnected(a, b) {
						return r.finish(player,
							fmt.Sprintf("connected trios (%d,%d)", a, b),
							fmt.Sprintf("Got 2 connected trios (%d and %d)!", a, b))
					}
				}
			}
		}
	}

	return nil
}

// finish moves the room to its terminal phase and builds the game-over
// broadcast with final trio counts sorted descending, ties in seat order
func (r *Room) finish(winner *Player, reason, message string) []Event {
	r.phase = PhaseFinished
	r.winnerID = winner.ID
	r.winnerReason = reason

	scores := make([]FinalScore, 0, len(r.order))
	for _, id := range r.order {
		player := r.players[id]
		scores = append(scores, FinalScore{Name: player.Name, Trios: player.TrioCount()})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Trios > scores[j].Trios
	})

	return []Event{
		broadcast(&GameOverMessage{
			Type:        TypeGameOver,
			Winner:      winner.Name,
			WinnerID:    winner.ID,
			Reason:      reason,
			Message:     fmt.Sprintf("%s wins! %s", winner.Name, message),
			FinalScores: scores,
		}),
	}
}

// FailPending reports whether a failed reveal is waiting for its visible
// delay to elapse before the cards are returned
func (r *Room) FailPending() bool {
	return r.failPending
}

// ResolveFail reverts every sequence entry to its origin after the visible
// delay: middle cards flip back face-down in place, hand cards rejoin their
// owner's sorted hand. Then the turn advances to the next seat.
func (r *Room) ResolveFail() []Event {
	if !r.failPending {
		return nil
	}
	r.failPending = false

	var events []Event
	for _, entry := range r.revealed {
		switch entry.kind {
		case originMiddle:
			for j := range r.middle {
				if r.middle[j].card.ID == entry.card.ID {
					r.middle[j].state = middleFaceDown
					break
				}
			}
		case originHand:
			owner := r.players[entry.playerID]
			owner.giveCard(entry.card)
			events = append(events, private(owner.ID, &HandMessage{
				Type: TypeYourHand,
				Hand: owner.Hand(),
			}))
		}
	}

	r.revealed = nil
	events = append(events, broadcast(r.gameState()))

	r.turnIdx = (r.turnIdx + 1) % len(r.order)
	next := r.currentPlayer()

	return append(events,
		broadcast(&TurnChangedMessage{
			Type:            TypeTurnChanged,
			CurrentPlayer:   next.Name,
			CurrentPlayerID: next.ID,
		}),
		private(next.ID, &TurnMessage{
			Type:    TypeYourTurn,
			Message: "It's your turn! Reveal cards to find a trio.",
		}),
		broadcast(r.gameState()),
	)
}

// Chat relays a chat line to the whole room. Chat has no game effect.
func (r *Room) Chat(actorID, message string) []Event {
	player, ok := r.players[actorID]
	if !ok {
		return nil
	}

	return []Event{
		broadcast(&ChatMessage{
			Type:    TypeChat,
			Player:  player.Name,
			Message: message,
		}),
	}
}

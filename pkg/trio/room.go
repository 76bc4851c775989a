package trio

import (
	"fmt"

	"trio-server/internal/rng"
	"trio-server/pkg/deck"
)

// middleVisibility is the tri-state visibility of a middle-pile slot
type middleVisibility int

const (
	middleFaceDown middleVisibility = iota
	middleFaceUp
	middleTaken
)

// middleCard is one slot of the middle pile. Taken slots keep their position
// forever; the pile is never re-indexed.
type middleCard struct {
	card  deck.Card
	state middleVisibility
}

// originKind tags where a revealed card came from
type originKind int

const (
	originMiddle originKind = iota
	originHand
)

// revealedCard is a snapshot of one exposed card plus its origin, so a trio
// capture or a failed turn can route the card back exactly where it belongs
type revealedCard struct {
	card deck.Card
	kind originKind

	// set for originHand only
	playerID string
	position Position

	// display label: "Middle" or the owner's name
	sourceName string
}

// Options configures a room's seat bounds
type Options struct {
	MinPlayers int
	MaxPlayers int
}

// DefaultOptions returns the official seat bounds
func DefaultOptions() Options {
	return Options{MinPlayers: 3, MaxPlayers: 6}
}

// Room is the authoritative state of a single game. It is not safe for
// concurrent use; the room runner serializes every mutation through its run
// loop.
type Room struct {
	code    string
	name    string
	mode    Mode
	phase   Phase
	options Options

	players map[string]*Player
	// order is the seating. Before the game starts it is join order; the
	// start transition shuffles it once and it is never re-ordered again.
	order   []string
	turnIdx int

	middle   []middleCard
	revealed []revealedCard

	winnerID     string
	winnerReason string

	failPending bool

	// deckSeed is 0 outside of tests, which means a random shuffle
	deckSeed int64
	shuffler rng.Generator
}

// NewRoom returns a new, empty room in the waiting phase
func NewRoom(code, name string, mode Mode, options Options) *Room {
	return &Room{
		code:     code,
		name:     name,
		mode:     mode,
		phase:    PhaseWaiting,
		options:  options,
		players:  make(map[string]*Player),
		shuffler: rng.Crypto{},
	}
}

// Code returns the room code
func (r *Room) Code() string {
	return r.code
}

// Name returns the display name
func (r *Room) Name() string {
	return r.name
}

// Mode returns the game mode
func (r *Room) Mode() Mode {
	return r.mode
}

// Phase returns the lifecycle phase
func (r *Room) Phase() Phase {
	return r.phase
}

// PlayerCount returns the number of seats
func (r *Room) PlayerCount() int {
	return len(r.players)
}

// Empty returns true once no seats remain
func (r *Room) Empty() bool {
	return len(r.players) == 0
}

// HasCapacity returns true while the room is waiting and below its seat maximum
func (r *Room) HasCapacity() bool {
	return r.phase == PhaseWaiting && len(r.players) < r.options.MaxPlayers
}

// Winner returns the winner's player ID and the win reason once finished
func (r *Room) Winner() (string, string) {
	return r.winnerID, r.winnerReason
}

func (r *Room) currentPlayerID() string {
	if r.phase != PhasePlaying || len(r.order) == 0 {
		return ""
	}

	return r.order[r.turnIdx%len(r.order)]
}

func (r *Room) currentPlayer() *Player {
	id := r.currentPlayerID()
	if id == "" {
		return nil
	}

	return r.players[id]
}

// AddPlayer seats a player. Joins are only accepted while the room is
// waiting and below its seat maximum.
func (r *Room) AddPlayer(player *Player) ([]Event, error) {
	if r.phase != PhaseWaiting {
		return nil, PhaseError("Game already in progress")
	}

	if len(r.players) >= r.options.MaxPlayers {
		return nil, CapacityError("Room is full")
	}

	r.players[player.ID] = player
	r.order = append(r.order, player.ID)

	return []Event{
		broadcast(&PlayerJoinedMessage{
			Type:   TypePlayerJoined,
			Player: player.Public(),
			Room:   r.Info(),
		}),
		private(player.ID, &WelcomeMessage{
			Type:     TypeWelcome,
			PlayerID: player.ID,
			Room:     r.Info(),
		}),
	}, nil
}

// HandleDisconnect flips the player's connectivity flag. While the room is
// still waiting the seat is removed entirely; afterwards the seat, hand, and
// turn rotation are preserved. The second return value is true once the room
// emptied out and should be torn down.
func (r *Room) HandleDisconnect(playerID string) ([]Event, bool) {
	player, ok := r.players[playerID]
	if !ok {
		return nil, false
	}

	player.Connected = false

	if r.phase == PhaseWaiting {
		delete(r.players, playerID)
		for i, id := range r.order {
			if id == playerID {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}

	events := []Event{
		broadcastExcept(&PlayerDisconnectedMessage{
			Type:       TypePlayerDisconnected,
			PlayerID:   playerID,
			PlayerName: player.Name,
			Room:       r.Info(),
		}, playerID),
	}

	return events, r.Empty() && r.phase == PhaseWaiting
}

// MarkDisconnected flips a seat's connectivity flag without any other side
// effect. Used when a delivery to that seat fails; the connection's own
// teardown follows up with HandleDisconnect.
func (r *Room) MarkDisconnected(playerID string) {
	if player, ok := r.players[playerID]; ok {
		player.Connected = false
	}
}

// SetMode changes the game mode. Only legal while the room is waiting.
func (r *Room) SetMode(actorID string, mode Mode) ([]Event, error) {
	if r.phase != PhaseWaiting {
		return nil, PhaseError("Game already in progress")
	}

	r.mode = mode

	return []Event{
		broadcast(&ModeChangedMessage{
			Type: TypeModeChanged,
			Mode: r.mode,
			Room: r.Info(),
		}),
	}, nil
}

// dealCounts returns (cards per hand, cards to the middle) for the seat
// count. Seat counts outside 3..6 cannot occur given the room bounds; the
// fallback mirrors the six-player deal.
func dealCounts(seats int) (int, int) {
	switch seats {
	case 3:
		return 9, 9
	case 4:
		return 7, 8
	case 5:
		return 6, 6
	case 6:
		return 5, 6
	}

	return 5, 6
}

// Start freezes the seating with a single random shuffle, deals hands, puts
// the remainder face-down in the middle, and moves the room to playing.
func (r *Room) Start(actorID string) ([]Event, error) {
	if r.phase != PhaseWaiting {
		return nil, PhaseError("Game already in progress")
	}

	if len(r.players) < r.options.MinPlayers {
		return nil, CapacityError(fmt.Sprintf("Need at least %d players to start", r.options.MinPlayers))
	}

	// fix the turn rotation for the rest of the game
	for j := len(r.order) - 1; j > 0; j-- {
		i := r.shuffler.Intn(j + 1)
		r.order[i], r.order[j] = r.order[j], r.order[i]
	}

	d := deck.New()
	d.Shuffle(r.deckSeed)

	handSize, middleSize := dealCounts(len(r.players))
	for _, id := range r.order {
		player := r.players[id]
		for i := 0; i < handSize; i++ {
			card, err := d.Draw()
			if err != nil {
				return nil, err
			}
			player.hand = append(player.hand, card)
		}
		player.sortHand()
	}

	r.middle = make([]middleCard, 0, middleSize)
	for i := 0; i < middleSize; i++ {
		card, err := d.Draw()
		if err != nil {
			return nil, err
		}
		r.middle = append(r.middle, middleCard{card: card})
	}

	r.turnIdx = 0
	r.phase = PhasePlaying

	turnOrder := make([]string, len(r.order))
	for i, id := range r.order {
		turnOrder[i] = r.players[id].Name
	}

	current := r.currentPlayer()
	events := []Event{
		broadcast(&GameStartedMessage{
			Type:            TypeGameStarted,
			Mode:            r.mode,
			TurnOrder:       turnOrder,
			CurrentPlayer:   current.Name,
			CurrentPlayerID: current.ID,
			MiddleCardCount: len(r.middle),
			Room:            r.Info(),
		}),
	}

	for _, id := range r.order {
		events = append(events, private(id, &HandMessage{
			Type: TypeYourHand,
			Hand: r.players[id].Hand(),
		}))
	}

	// your_turn goes out before the first game_state so clients flip their
	// turn flag before they render the action buttons
	events = append(events,
		private(current.ID, &TurnMessage{
			Type:    TypeYourTurn,
			Message: "It's your turn! Reveal cards to find a trio.",
		}),
		broadcast(r.gameState()),
	)

	return events, nil
}

// Info returns the public room summary
func (r *Room) Info() RoomState {
	players := make([]PlayerState, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id].Public())
	}

	state := RoomState{
		Code:        r.code,
		Name:        r.name,
		Mode:        r.mode,
		PlayerCount: len(r.players),
		MaxPlayers:  r.options.MaxPlayers,
		MinPlayers:  r.options.MinPlayers,
		Phase:       r.phase,
		Players:     players,
	}

	if current := r.currentPlayer(); current != nil {
		state.CurrentPlayer = current.Name
		state.CurrentPlayerID = current.ID
	}

	return state
}

func (r *Room) gameState() *GameStateMessage {
	middle := make([]CardState, 0, len(r.middle))
	faceDownCount := 0
	for _, mc := range r.middle {
		switch mc.state {
		case middleFaceDown:
			middle = append(middle, faceDownCard(mc.card.ID))
			faceDownCount++
		case middleFaceUp:
			middle = append(middle, faceUpCard(mc.card))
		case middleTaken:
			middle = append(middle, takenCard(mc.card.ID))
		}
	}

	revealed := make([]RevealedState, len(r.revealed))
	for i, rc := range r.revealed {
		entry := RevealedState{
			Card:   faceUpCard(rc.card),
			Source: rc.sourceName,
		}
		if rc.kind == originHand {
			entry.SourceID = rc.playerID
			entry.Position = rc.position
		}
		revealed[i] = entry
	}

	players := make([]PlayerState, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id].Public())
	}

	state := &GameStateMessage{
		Type:             TypeGameState,
		Players:          players,
		MiddleCards:      middle,
		MiddleCardCount:  faceDownCount,
		RevealedThisTurn: revealed,
	}

	if current := r.currentPlayer(); current != nil {
		state.CurrentPlayer = current.Name
		state.CurrentPlayerID = current.ID
	}

	return state
}

package trio

import "trio-server/pkg/deck"

// outbound message type tags
const (
	TypeError              = "error"
	TypeWelcome            = "welcome"
	TypePlayerJoined       = "player_joined"
	TypePlayerDisconnected = "player_disconnected"
	TypeModeChanged        = "mode_changed"
	TypeGameStarted        = "game_started"
	TypeYourHand           = "your_hand"
	TypeYourTurn           = "your_turn"
	TypeGameState          = "game_state"
	TypeCardRevealed       = "card_revealed"
	TypeRevealMatch        = "reveal_match"
	TypeTurnFailed         = "turn_failed"
	TypeTrioComplete       = "trio_complete"
	TypeGameOver           = "game_over"
	TypeTurnChanged        = "turn_changed"
	TypeChat               = "chat"
)

// CardState is a card as a client sees it. Number is null while the card is
// face-down or taken.
type CardState struct {
	ID     int  `json:"id"`
	Number *int `json:"number"`
	FaceUp bool `json:"face_up"`
	Taken  bool `json:"taken,omitempty"`
}

func faceUpCard(card deck.Card) CardState {
	n := card.Number
	return CardState{
		ID:     card.ID,
		Number: &n,
		FaceUp: true,
	}
}

func faceDownCard(id int) CardState {
	return CardState{ID: id}
}

func takenCard(id int) CardState {
	return CardState{ID: id, Taken: true}
}

// PlayerState is the public projection of a player
type PlayerState struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CardCount int     `json:"card_count"`
	TrioCount int     `json:"trio_count"`
	Trios     [][]int `json:"trios"`
	Connected bool    `json:"connected"`
}

// HandState is the private projection of a player's hand
type HandState struct {
	Hand    []CardState `json:"hand"`
	Lowest  *int        `json:"lowest"`
	Highest *int        `json:"highest"`
}

// RoomState is the public summary of a room, also served by the room listing
type RoomState struct {
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	Mode            Mode          `json:"mode"`
	PlayerCount     int           `json:"player_count"`
	MaxPlayers      int           `json:"max_players"`
	MinPlayers      int           `json:"min_players"`
	Phase           Phase         `json:"phase"`
	Players         []PlayerState `json:"players"`
	CurrentPlayer   string        `json:"current_player,omitempty"`
	CurrentPlayerID string        `json:"current_player_id,omitempty"`
}

// RevealedState is one entry of the in-progress reveal sequence
type RevealedState struct {
	Card     CardState `json:"card"`
	Source   string    `json:"source"`
	SourceID string    `json:"source_id,omitempty"`
	Position Position  `json:"position,omitempty"`
}

// ErrorMessage is delivered privately to the player whose action failed
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorMessage wraps an error for private delivery
func NewErrorMessage(err error) *ErrorMessage {
	return &ErrorMessage{Type: TypeError, Message: err.Error()}
}

// WelcomeMessage is sent to a player who just joined
type WelcomeMessage struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"player_id"`
	Room     RoomState `json:"room"`
}

// PlayerJoinedMessage announces a new seat
type PlayerJoinedMessage struct {
	Type   string      `json:"type"`
	Player PlayerState `json:"player"`
	Room   RoomState   `json:"room"`
}

// PlayerDisconnectedMessage announces a dropped connection
type PlayerDisconnectedMessage struct {
	Type       string    `json:"type"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Room       RoomState `json:"room"`
}

// ModeChangedMessage announces the room's new mode
type ModeChangedMessage struct {
	Type string    `json:"type"`
	Mode Mode      `json:"mode"`
	Room RoomState `json:"room"`
}

// GameStartedMessage announces the deal and the frozen turn order
type GameStartedMessage struct {
	Type            string    `json:"type"`
	Mode            Mode      `json:"mode"`
	TurnOrder       []string  `json:"turn_order"`
	CurrentPlayer   string    `json:"current_player"`
	CurrentPlayerID string    `json:"current_player_id"`
	MiddleCardCount int       `json:"middle_card_count"`
	Room            RoomState `json:"room"`
}

// HandMessage carries a player's private hand view
type HandMessage struct {
	Type string    `json:"type"`
	Hand HandState `json:"hand"`
}

// TurnMessage tells a player it is their turn
type TurnMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// GameStateMessage is the public snapshot broadcast after every change
type GameStateMessage struct {
	Type             string          `json:"type"`
	Players          []PlayerState   `json:"players"`
	MiddleCards      []CardState     `json:"middle_cards"`
	MiddleCardCount  int             `json:"middle_card_count"`
	RevealedThisTurn []RevealedState `json:"revealed_this_turn"`
	CurrentPlayer    string          `json:"current_player,omitempty"`
	CurrentPlayerID  string          `json:"current_player_id,omitempty"`
}

// CardRevealedMessage announces a single card exposure
type CardRevealedMessage struct {
	Type       string    `json:"type"`
	Card       CardState `json:"card"`
	Source     string    `json:"source"`
	SourceID   string    `json:"source_id,omitempty"`
	Position   Position  `json:"position,omitempty"`
	RevealedBy string    `json:"revealed_by"`
}

// RevealMatchMessage tells the room the sequence still matches
type RevealMatchMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// TurnFailedMessage announces a mismatched reveal. DelayReturn tells clients
// the exposed cards stay visible briefly before they are returned.
type TurnFailedMessage struct {
	Type        string `json:"type"`
	Player      string `json:"player"`
	Message     string `json:"message"`
	DelayReturn bool   `json:"delay_return"`
}

// TrioCompleteMessage announces a captured trio
type TrioCompleteMessage struct {
	Type       string `json:"type"`
	Player     string `json:"player"`
	PlayerID   string `json:"player_id"`
	TrioNumber int    `json:"trio_number"`
	Message    string `json:"message"`
}

// FinalScore is one row of the game-over summary
type FinalScore struct {
	Name  string `json:"name"`
	Trios int    `json:"trios"`
}

// GameOverMessage announces the winner and the final trio counts,
// sorted descending by trio count
type GameOverMessage struct {
	Type        string       `json:"type"`
	Winner      string       `json:"winner"`
	WinnerID    string       `json:"winner_id"`
	Reason      string       `json:"reason"`
	Message     string       `json:"message"`
	FinalScores []FinalScore `json:"final_scores"`
}

// TurnChangedMessage announces the next seat
type TurnChangedMessage struct {
	Type            string `json:"type"`
	CurrentPlayer   string `json:"current_player"`
	CurrentPlayerID string `json:"current_player_id"`
}

// ChatMessage relays a chat line as-is
type ChatMessage struct {
	Type    string `json:"type"`
	Player  string `json:"player"`
	Message string `json:"message"`
}

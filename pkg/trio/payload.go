package trio

// inbound action tags
const (
	ActionSetMode      = "set_mode"
	ActionStartGame    = "start_game"
	ActionRevealMiddle = "reveal_middle"
	ActionRevealPlayer = "reveal_player"
	ActionChat         = "chat"
)

// ActionPayload is the format we expect from a connected client
type ActionPayload struct {
	Action string `json:"action"`

	// set_mode
	Mode string `json:"mode,omitempty"`

	// reveal_middle
	CardID *int `json:"card_id,omitempty"`

	// reveal_player
	TargetPlayerID string `json:"target_player_id,omitempty"`
	Position       string `json:"position,omitempty"`

	// chat
	Message string `json:"message,omitempty"`
}

// Validate checks the payload shape for its action tag. A ValidationError
// means the payload is dropped without a reply.
func (p *ActionPayload) Validate() error {
	switch p.Action {
	case ActionSetMode, ActionStartGame, ActionChat:
		return nil
	case ActionRevealMiddle:
		if p.CardID == nil {
			return ValidationError("reveal_middle requires card_id")
		}
		return nil
	case ActionRevealPlayer:
		if p.TargetPlayerID == "" || p.Position == "" {
			return ValidationError("reveal_player requires target_player_id and position")
		}
		return nil
	}

	return ValidationError("unknown action")
}

package trio

// Mode determines the win condition for a game
type Mode string

// game modes
const (
	// ModeSimple requires three captured trios
	ModeSimple Mode = "simple"

	// ModeSpicy requires two captured trios with connected numbers
	ModeSpicy Mode = "spicy"
)

// ParseMode returns the mode for the given string
// Anything other than "spicy" falls back to simple, matching the default mode
func ParseMode(s string) Mode {
	if Mode(s) == ModeSpicy {
		return ModeSpicy
	}

	return ModeSimple
}

// Phase is the lifecycle phase of a room
type Phase string

// room lifecycle phases. finished is terminal
const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Position selects which end of a sorted hand is revealed
type Position string

// reveal positions. Hands stay sorted ascending, so lowest is the first card
// and highest is the last
const (
	PositionLowest  Position = "lowest"
	PositionHighest Position = "highest"
)

func validPosition(p Position) bool {
	return p == PositionLowest || p == PositionHighest
}

package trio

// The error kinds below are all recoverable by the caller. They are reported
// privately to the acting player, never mutate room state, and never
// terminate the room.

// PhaseError is an error for an action that is illegal in the room's current phase
type PhaseError string

func (e PhaseError) Error() string {
	return string(e)
}

// TurnError is an error for an action by a player who is not the current seat
type TurnError string

func (e TurnError) Error() string {
	return string(e)
}

// TargetError is an error for a card, seat, or position that was not found or
// is already exposed
type TargetError string

func (e TargetError) Error() string {
	return string(e)
}

// CapacityError is an error for a full room or for starting below the minimum
// seat count
type CapacityError string

func (e CapacityError) Error() string {
	return string(e)
}

// ValidationError is an error for a malformed action payload. Unlike the
// other kinds it is dropped silently and never sent to anyone.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

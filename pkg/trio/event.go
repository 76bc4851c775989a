package trio

// Event is one outbound message plus its delivery scope. The engine returns
// events; the room runner owns actual delivery.
type Event struct {
	// To is the recipient player ID for a private delivery.
	// Empty means broadcast to every connected seat.
	To string

	// Exclude lists player IDs skipped on a broadcast
	Exclude []string

	Msg interface{}
}

func broadcast(msg interface{}) Event {
	return Event{Msg: msg}
}

func broadcastExcept(msg interface{}, exclude ...string) Event {
	return Event{Msg: msg, Exclude: exclude}
}

func private(to string, msg interface{}) Event {
	return Event{To: to, Msg: msg}
}

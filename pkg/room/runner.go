package room

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"trio-server/pkg/trio"
)

// ErrRoomClosed is returned when a client tries to reach a torn-down room
var ErrRoomClosed = errors.New("room is closed")

// runner owns one room's run loop. Every mutation of the room goes through
// the exec channel, so actions against the same room can never interleave;
// distinct rooms run fully independently.
type runner struct {
	manager *Manager
	room    *trio.Room
	clients map[string]*Client

	exec  chan func()
	close chan struct{}

	failDelay time.Duration

	// snapshot is a cached trio.RoomState so listings never have to wait on
	// the run loop (which deliberately blocks during the fail-reveal delay)
	snapshot atomic.Value
}

func newRunner(manager *Manager, room *trio.Room, failDelay time.Duration) *runner {
	r := &runner{
		manager:   manager,
		room:      room,
		clients:   make(map[string]*Client),
		exec:      make(chan func(), 256),
		close:     make(chan struct{}),
		failDelay: failDelay,
	}

	r.snapshot.Store(room.Info())
	return r
}

func (r *runner) start() {
	go r.runLoop()
}

func (r *runner) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"room": r.room.Code(),
		"name": r.room.Name(),
	})

	log.Debug("starting room run loop")
	for {
		select {
		case fn := <-r.exec:
			fn()
			r.snapshot.Store(r.room.Info())
		case <-r.close:
			log.Debug("terminating room run loop")
			return
		}
	}
}

func (r *runner) stop() {
	close(r.close)
}

// enqueue hands fn to the run loop, failing if the room was torn down
func (r *runner) enqueue(fn func()) error {
	select {
	case r.exec <- fn:
		return nil
	case <-r.close:
		return ErrRoomClosed
	}
}

// cachedInfo returns the room summary as of the last completed mutation
func (r *runner) cachedInfo() trio.RoomState {
	return r.snapshot.Load().(trio.RoomState)
}

// join seats the client. It blocks until the run loop has processed the join
// so the caller learns whether the room accepted the seat.
func (r *runner) join(client *Client) error {
	errCh := make(chan error, 1)

	err := r.enqueue(func() {
		events, err := r.room.AddPlayer(trio.NewPlayer(client.PlayerID, client.Name))
		if err != nil {
			errCh <- err
			return
		}

		client.runner = r
		r.clients[client.PlayerID] = client
		r.deliver(events)
		errCh <- nil
	})
	if err != nil {
		return err
	}

	select {
	case err := <-errCh:
		return err
	case <-r.close:
		return ErrRoomClosed
	}
}

// clientDisconnected removes the connection and lets the room decide what
// happens to the seat. An emptied waiting room is torn down.
func (r *runner) clientDisconnected(client *Client) {
	_ = r.enqueue(func() {
		delete(r.clients, client.PlayerID)

		events, teardown := r.room.HandleDisconnect(client.PlayerID)
		r.deliver(events)

		if teardown {
			r.manager.removeRoom(r.room.Code())
		}
	})
}

// handleAction validates and dispatches one inbound action on the run loop
func (r *runner) handleAction(client *Client, payload *trio.ActionPayload) {
	_ = r.enqueue(func() {
		if err := payload.Validate(); err != nil {
			// malformed payloads are dropped without a reply
			logrus.WithError(err).WithField("client", client.String()).Debug("invalid payload")
			return
		}

		var events []trio.Event
		var err error

		switch payload.Action {
		case trio.ActionSetMode:
			events, err = r.room.SetMode(client.PlayerID, trio.ParseMode(payload.Mode))
		case trio.ActionStartGame:
			events, err = r.room.Start(client.PlayerID)
		case trio.ActionRevealMiddle:
			events, err = r.room.RevealMiddle(client.PlayerID, *payload.CardID)
		case trio.ActionRevealPlayer:
			events, err = r.room.RevealPlayer(client.PlayerID, payload.TargetPlayerID, trio.Position(payload.Position))
		case trio.ActionChat:
			events = r.room.Chat(client.PlayerID, payload.Message)
		}

		if err != nil {
			logrus.WithError(err).WithField("client", client.String()).Debug("action rejected")
			client.Send(trio.NewErrorMessage(err))
			return
		}

		r.deliver(events)

		if r.room.FailPending() {
			// the visible delay elapses inside the run loop on purpose: no
			// other action on this room may observe the un-reverted state,
			// and a disconnect cannot cancel the revert
			time.Sleep(r.failDelay)
			r.deliver(r.room.ResolveFail())
		}
	})
}

// deliver fans out engine events. Must only be called from the run loop.
// A failed send degrades that one seat to disconnected; it never aborts
// delivery to the rest.
func (r *runner) deliver(events []trio.Event) {
	for _, event := range events {
		if event.To != "" {
			r.sendTo(event.To, event.Msg)
			continue
		}

		excluded := make(map[string]bool, len(event.Exclude))
		for _, id := range event.Exclude {
			excluded[id] = true
		}

		for id := range r.clients {
			if !excluded[id] {
				r.sendTo(id, event.Msg)
			}
		}
	}
}

func (r *runner) sendTo(playerID string, msg interface{}) {
	client, ok := r.clients[playerID]
	if !ok {
		// disconnected seats silently miss their messages
		return
	}

	if !client.Send(msg) {
		logrus.WithField("client", client.String()).Warn("send buffer full, degrading to disconnected")
		delete(r.clients, playerID)
		r.room.MarkDisconnected(playerID)
	}
}

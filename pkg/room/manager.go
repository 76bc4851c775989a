package room

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trio-server/internal/rng"
	"trio-server/internal/util"
	"trio-server/pkg/trio"
)

// room codes are short and readable so they can be shared out loud
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 5
)

// ErrRoomNotFound is returned when a client references an unknown room code
var ErrRoomNotFound = trio.TargetError("Room not found")

// Manager owns the room-code registry and the identity-to-room mapping, and
// routes every client to its room's runner
type Manager struct {
	mu          sync.Mutex
	rooms       map[string]*runner
	playerRooms map[string]string

	options   trio.Options
	failDelay time.Duration
	codeGen   rng.Generator
}

// NewManager returns a room manager. failDelay is how long failed reveals
// stay visible before the cards are returned.
func NewManager(options trio.Options, failDelay time.Duration) *Manager {
	return &Manager{
		rooms:       make(map[string]*runner),
		playerRooms: make(map[string]string),
		options:     options,
		failDelay:   failDelay,
		codeGen:     rng.Crypto{},
	}
}

// newCode generates an unused room code. Must be called with the lock held.
func (m *Manager) newCode() string {
	for {
		code := make([]byte, codeLength)
		for i := range code {
			code[i] = codeAlphabet[m.codeGen.Intn(len(codeAlphabet))]
		}

		if _, taken := m.rooms[string(code)]; !taken {
			return string(code)
		}
	}
}

// CreateRoom creates a new room in the waiting phase and starts its run loop
func (m *Manager) CreateRoom(name string, mode trio.Mode) trio.RoomState {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.newCode()
	r := newRunner(m, trio.NewRoom(code, name, mode, m.options), m.failDelay)
	m.rooms[code] = r
	r.start()

	logrus.WithFields(logrus.Fields{
		"room": code,
		"name": name,
		"mode": mode,
	}).Info("room created")

	return r.cachedInfo()
}

// ListRooms returns the rooms that are still waiting and have a free seat
func (m *Manager) ListRooms() []trio.RoomState {
	m.mu.Lock()
	defer m.mu.Unlock()

	rooms := make([]trio.RoomState, 0, len(m.rooms))
	for _, r := range m.rooms {
		info := r.cachedInfo()
		if info.Phase == trio.PhaseWaiting && info.PlayerCount < info.MaxPlayers {
			rooms = append(rooms, info)
		}
	}

	return rooms
}

// Connect assigns the client a player identity and seats it in the room.
// On error the caller owns telling the client and closing the connection.
func (m *Manager) Connect(client *Client, code string) error {
	m.mu.Lock()
	r, ok := m.rooms[code]
	m.mu.Unlock()

	if !ok {
		return ErrRoomNotFound
	}

	client.PlayerID = uuid.New().String()
	if client.Name == "" {
		client.Name = util.GetRandomName()
	}

	if err := r.join(client); err != nil {
		return err
	}

	m.mu.Lock()
	m.playerRooms[client.PlayerID] = code
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"room":   code,
		"player": client.PlayerID,
		"name":   client.Name,
	}).Debug("client connected")

	return nil
}

// Disconnect is called when a client's connection goes away. It cancels
// nothing else: a fail-reveal delay in progress still completes.
func (m *Manager) Disconnect(client *Client) {
	if client.runner == nil {
		return
	}

	logrus.WithField("client", client.String()).Debug("client disconnected")
	client.runner.clientDisconnected(client)

	m.mu.Lock()
	delete(m.playerRooms, client.PlayerID)
	m.mu.Unlock()
}

// ReceivedAction is called for every inbound message from a connected client
func (m *Manager) ReceivedAction(client *Client, payload *trio.ActionPayload) {
	if client.runner == nil {
		logrus.WithField("payload", payload).Warn("received action, but client has no room")
		return
	}

	client.runner.handleAction(client, payload)
}

// RoomCount returns the number of live rooms
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rooms)
}

// removeRoom tears down an emptied room
func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	r, ok := m.rooms[code]
	if ok {
		delete(m.rooms, code)
	}
	m.mu.Unlock()

	if ok {
		logrus.WithField("room", code).Info("room destroyed")
		r.stop()
	}
}

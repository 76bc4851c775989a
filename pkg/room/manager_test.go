package room

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio-server/pkg/trio"
)

func testManager() *Manager {
	// no visible delay in tests
	return NewManager(trio.DefaultOptions(), 0)
}

// msgType peeks at the "type" tag of an outbound message
func msgType(msg interface{}) string {
	b, _ := json.Marshal(msg)
	var envelope struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(b, &envelope)
	return envelope.Type
}

// awaitType reads a client's send channel until a message of the wanted type
// arrives
func awaitType(t *testing.T, client *Client, want string) interface{} {
	t.Helper()

	deadline := time.After(time.Second * 2)
	for {
		select {
		case msg := <-client.SendChan():
			if msgType(msg) == want {
				return msg
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
			return nil
		}
	}
}

func TestManager_CreateRoomAndList(t *testing.T) {
	a := assert.New(t)

	m := testManager()
	a.Empty(m.ListRooms())

	info := m.CreateRoom("friday game", trio.ModeSpicy)
	a.Len(info.Code, codeLength)
	a.Equal("friday game", info.Name)
	a.Equal(trio.ModeSpicy, info.Mode)
	a.Equal(trio.PhaseWaiting, info.Phase)

	rooms := m.ListRooms()
	require.Len(t, rooms, 1)
	a.Equal(info.Code, rooms[0].Code)
}

func TestManager_Connect_roomNotFound(t *testing.T) {
	m := testManager()
	err := m.Connect(NewClient(nil, "Alice"), "ZZZZZ")
	assert.Equal(t, ErrRoomNotFound, err)
}

func TestManager_Connect_assignsIdentityAndDefaultName(t *testing.T) {
	a := assert.New(t)

	m := testManager()
	info := m.CreateRoom("test", trio.ModeSimple)

	client := NewClient(nil, "")
	require.NoError(t, m.Connect(client, info.Code))
	a.NotEmpty(client.PlayerID)
	a.NotEmpty(client.Name, "a nameless join gets a generated display name")

	welcome := awaitType(t, client, trio.TypeWelcome).(*trio.WelcomeMessage)
	a.Equal(client.PlayerID, welcome.PlayerID)
}

func TestManager_Connect_roomFull(t *testing.T) {
	a := assert.New(t)

	m := testManager()
	info := m.CreateRoom("test", trio.ModeSimple)

	for i := 0; i < 6; i++ {
		require.NoError(t, m.Connect(NewClient(nil, "player"), info.Code))
	}

	err := m.Connect(NewClient(nil, "late"), info.Code)
	a.EqualError(err, "Room is full")
	a.IsType(trio.CapacityError(""), err)

	// a full room is no longer listed
	a.Empty(m.ListRooms())
}

func TestManager_Disconnect_tearsDownEmptyWaitingRoom(t *testing.T) {
	a := assert.New(t)

	m := testManager()
	info := m.CreateRoom("test", trio.ModeSimple)

	c1 := NewClient(nil, "Alice")
	c2 := NewClient(nil, "Bob")
	require.NoError(t, m.Connect(c1, info.Code))
	require.NoError(t, m.Connect(c2, info.Code))
	a.Equal(1, m.RoomCount())

	m.Disconnect(c1)
	a.Eventually(func() bool { return m.RoomCount() == 1 }, time.Second, time.Millisecond*5)

	m.Disconnect(c2)
	a.Eventually(func() bool { return m.RoomCount() == 0 }, time.Second, time.Millisecond*5)

	// late joins against the destroyed room fail cleanly
	err := m.Connect(NewClient(nil, "late"), info.Code)
	a.Equal(ErrRoomNotFound, err)
}

func TestManager_gameFlow(t *testing.T) {
	a := assert.New(t)

	m := testManager()
	info := m.CreateRoom("test", trio.ModeSimple)

	clients := make(map[string]*Client)
	var first *Client
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		client := NewClient(nil, name)
		require.NoError(t, m.Connect(client, info.Code))
		clients[client.PlayerID] = client
		if first == nil {
			first = client
		}
	}

	m.ReceivedAction(first, &trio.ActionPayload{Action: trio.ActionSetMode, Mode: "spicy"})
	changed := awaitType(t, first, trio.TypeModeChanged).(*trio.ModeChangedMessage)
	a.Equal(trio.ModeSpicy, changed.Mode)

	m.ReceivedAction(first, &trio.ActionPayload{Action: trio.ActionStartGame})
	started := awaitType(t, first, trio.TypeGameStarted).(*trio.GameStartedMessage)
	a.Len(started.TurnOrder, 3)

	current := clients[started.CurrentPlayerID]
	require.NotNil(t, current)

	// every seat got a private hand
	for _, client := range clients {
		hand := awaitType(t, client, trio.TypeYourHand).(*trio.HandMessage)
		a.Equal(9, len(hand.Hand.Hand))
	}

	state := awaitType(t, current, trio.TypeGameState).(*trio.GameStateMessage)
	require.NotEmpty(t, state.MiddleCards)

	// an out-of-turn reveal is rejected privately
	var bystander *Client
	for id, client := range clients {
		if id != started.CurrentPlayerID {
			bystander = client
			break
		}
	}

	cardID := state.MiddleCards[0].ID
	m.ReceivedAction(bystander, &trio.ActionPayload{Action: trio.ActionRevealMiddle, CardID: &cardID})
	errMsg := awaitType(t, bystander, trio.TypeError).(*trio.ErrorMessage)
	a.Equal("It's not your turn!", errMsg.Message)

	// the current seat's reveal goes through and is broadcast
	m.ReceivedAction(current, &trio.ActionPayload{Action: trio.ActionRevealMiddle, CardID: &cardID})
	revealed := awaitType(t, bystander, trio.TypeCardRevealed).(*trio.CardRevealedMessage)
	a.Equal(cardID, revealed.Card.ID)
	a.Equal("Middle", revealed.Source)

	// malformed payloads are dropped without any reply
	m.ReceivedAction(current, &trio.ActionPayload{Action: trio.ActionRevealMiddle})

	// chat still works mid-game
	m.ReceivedAction(current, &trio.ActionPayload{Action: trio.ActionChat, Message: "gl hf"})
	chat := awaitType(t, bystander, trio.TypeChat).(*trio.ChatMessage)
	a.Equal("gl hf", chat.Message)
}

func TestClient_SendBufferFull(t *testing.T) {
	a := assert.New(t)

	client := NewClient(nil, "Alice")
	for i := 0; i < 256; i++ {
		a.True(client.Send(i))
	}
	a.False(client.Send("overflow"))
}

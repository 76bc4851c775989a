package trio

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio-server/pkg/deck"
)

func waitingRoomWithPlayers(n int) *Room {
	room := NewRoom("ABCDE", "test room", ModeSimple, DefaultOptions())
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("player-%d", i)
		if _, err := room.AddPlayer(NewPlayer(id, id)); err != nil {
			panic(err)
		}
	}
	return room
}

func TestRoom_AddPlayer(t *testing.T) {
	a := assert.New(t)

	room := NewRoom("ABCDE", "test room", ModeSimple, DefaultOptions())
	a.Equal(PhaseWaiting, room.Phase())
	a.True(room.Empty())
	a.True(room.HasCapacity())

	events, err := room.AddPlayer(NewPlayer("p1", "Alice"))
	a.NoError(err)
	require.Equal(t, 2, len(events))

	joined, ok := events[0].Msg.(*PlayerJoinedMessage)
	require.True(t, ok)
	a.Empty(events[0].To)
	a.Equal("Alice", joined.Player.Name)

	welcome, ok := events[1].Msg.(*WelcomeMessage)
	require.True(t, ok)
	a.Equal("p1", events[1].To)
	a.Equal("p1", welcome.PlayerID)
	a.Equal(1, welcome.Room.PlayerCount)
}

func TestRoom_AddPlayer_capacityAndPhase(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(6)
	a.False(room.HasCapacity())

	_, err := room.AddPlayer(NewPlayer("p7", "Late"))
	a.EqualError(err, "Room is full")
	a.IsType(CapacityError(""), err)
	a.Equal(6, room.PlayerCount())

	room = waitingRoomWithPlayers(3)
	_, err = room.Start("player-0")
	require.NoError(t, err)

	_, err = room.AddPlayer(NewPlayer("p4", "Late"))
	a.EqualError(err, "Game already in progress")
	a.IsType(PhaseError(""), err)
	a.Equal(3, room.PlayerCount())
}

func TestRoom_HandleDisconnect_whileWaiting(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(2)

	events, teardown := room.HandleDisconnect("player-0")
	a.False(teardown)
	a.Equal(1, room.PlayerCount())
	require.Equal(t, 1, len(events))
	a.Equal([]string{"player-0"}, events[0].Exclude)

	_, teardown = room.HandleDisconnect("player-1")
	a.True(teardown, "an emptied waiting room is torn down")
	a.True(room.Empty())

	// unknown players are a no-op
	events, teardown = room.HandleDisconnect("ghost")
	a.Nil(events)
	a.False(teardown)
}

func TestRoom_HandleDisconnect_whilePlaying(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(3)
	_, err := room.Start("player-0")
	require.NoError(t, err)

	_, teardown := room.HandleDisconnect("player-1")
	a.False(teardown)

	// the seat, hand, and turn rotation are preserved; the rotation never
	// skips a disconnected seat
	a.Equal(3, room.PlayerCount())
	a.Equal(3, len(room.order))
	player := room.players["player-1"]
	a.False(player.Connected)
	a.NotEmpty(player.hand)
}

func TestRoom_SetMode(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(3)
	events, err := room.SetMode("player-0", ModeSpicy)
	a.NoError(err)
	a.Equal(ModeSpicy, room.Mode())

	changed, ok := events[0].Msg.(*ModeChangedMessage)
	require.True(t, ok)
	a.Equal(ModeSpicy, changed.Mode)

	_, err = room.Start("player-0")
	require.NoError(t, err)

	_, err = room.SetMode("player-0", ModeSimple)
	a.IsType(PhaseError(""), err)
	a.Equal(ModeSpicy, room.Mode())
}

func TestRoom_Start_requiresMinimumSeats(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(2)
	_, err := room.Start("player-0")
	a.EqualError(err, "Need at least 3 players to start")
	a.IsType(CapacityError(""), err)
	a.Equal(PhaseWaiting, room.Phase())
}

func TestRoom_Start_alreadyPlaying(t *testing.T) {
	room := waitingRoomWithPlayers(3)
	_, err := room.Start("player-0")
	require.NoError(t, err)

	_, err = room.Start("player-0")
	assert.IsType(t, PhaseError(""), err)
}

func TestRoom_Start_dealTable(t *testing.T) {
	for _, tc := range []struct {
		seats      int
		handSize   int
		middleSize int
	}{
		{3, 9, 9},
		{4, 7, 8},
		{5, 6, 6},
		{6, 5, 6},
	} {
		t.Run(fmt.Sprintf("%d seats", tc.seats), func(t *testing.T) {
			a := assert.New(t)

			room := waitingRoomWithPlayers(tc.seats)
			events, err := room.Start("player-0")
			require.NoError(t, err)

			a.Equal(PhasePlaying, room.Phase())
			for _, player := range room.players {
				a.Equal(tc.handSize, player.HandSize())
			}
			a.Equal(tc.middleSize, len(room.middle))
			a.Equal(deck.Size, tc.seats*tc.handSize+tc.middleSize)
			for _, mc := range room.middle {
				a.Equal(middleFaceDown, mc.state)
			}

			// game_started, a private hand per seat, your_turn, game_state
			a.Equal(3+tc.seats, len(events))
			started, ok := events[0].Msg.(*GameStartedMessage)
			require.True(t, ok)
			a.Equal(tc.middleSize, started.MiddleCardCount)
			a.Equal(tc.seats, len(started.TurnOrder))
			a.Equal(started.CurrentPlayerID, room.currentPlayerID())
		})
	}
}

func TestRoom_Start_freezesSeatingPermutation(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(5)
	joined := append([]string{}, room.order...)

	_, err := room.Start("player-0")
	require.NoError(t, err)

	a.ElementsMatch(joined, room.order, "seating must remain a permutation of the joined players")
	a.Equal(0, room.turnIdx)
}

func Test_dealCounts_fallback(t *testing.T) {
	hand, middle := dealCounts(7)
	assert.Equal(t, 5, hand)
	assert.Equal(t, 6, middle)
}

func TestRoom_Info(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(3)
	info := room.Info()
	a.Equal("ABCDE", info.Code)
	a.Equal("test room", info.Name)
	a.Equal(ModeSimple, info.Mode)
	a.Equal(3, info.PlayerCount)
	a.Equal(PhaseWaiting, info.Phase)
	a.Empty(info.CurrentPlayerID)
	require.Equal(t, 3, len(info.Players))
	a.Equal("player-0", info.Players[0].ID)

	_, err := room.Start("player-0")
	require.NoError(t, err)
	info = room.Info()
	a.Equal(PhasePlaying, info.Phase)
	a.NotEmpty(info.CurrentPlayerID)
}

func TestRoom_Chat(t *testing.T) {
	a := assert.New(t)

	room := waitingRoomWithPlayers(2)
	events := room.Chat("player-1", "hello")
	require.Equal(t, 1, len(events))

	chat, ok := events[0].Msg.(*ChatMessage)
	require.True(t, ok)
	a.Equal("player-1", chat.Player)
	a.Equal("hello", chat.Message)

	a.Nil(room.Chat("ghost", "hello"))
}

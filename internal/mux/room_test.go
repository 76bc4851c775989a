package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"trio-server/pkg/trio"
)

func TestRoomHandlers(t *testing.T) {
	a := assert.New(t)

	ts := httptest.NewServer(testMux())
	defer ts.Close()

	var rooms []trio.RoomState
	assertGet(t, ts, "/room", &rooms, 200)
	a.Empty(rooms)

	var created trio.RoomState
	assertPost(t, ts, "/room", postRoomPayload{Name: "friday game", Mode: "spicy"}, &created, 201)
	a.Len(created.Code, 5)
	a.Equal("friday game", created.Name)
	a.Equal(trio.ModeSpicy, created.Mode)

	// unknown modes quietly become simple
	var simple trio.RoomState
	assertPost(t, ts, "/room", postRoomPayload{Name: "other game", Mode: "bogus"}, &simple, 201)
	a.Equal(trio.ModeSimple, simple.Mode)

	assertGet(t, ts, "/room", &rooms, 200)
	a.Len(rooms, 2)

	var errResp errorResponse
	assertPost(t, ts, "/room", postRoomPayload{Name: "x"}, &errResp, 400)
	a.Equal("name must be 3-40 characters", errResp.Message)

	assertPost(t, ts, "/room", "{not json", &errResp, 400)
}

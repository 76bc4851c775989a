package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostMatch_validation(t *testing.T) {
	a := assert.New(t)

	ts := httptest.NewServer(testMux())
	defer ts.Close()

	var errResp errorResponse
	assertPost(t, ts, "/match", postMatchPayload{WinnerID: 1, ParticipantIDs: []int64{1}}, &errResp, 400)
	a.Equal("a match needs at least two participants", errResp.Message)

	assertPost(t, ts, "/match", postMatchPayload{WinnerID: 9, ParticipantIDs: []int64{1, 2}}, &errResp, 400)
	a.Equal("winner must be a match participant", errResp.Message)
}

package mux

import (
	"errors"
	"net/http"
	"regexp"

	"trio-server/pkg/trio"
)

type postRoomPayload struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		info := m.manager.CreateRoom(pp.Name, trio.ParseMode(pp.Mode))
		writeJSON(w, http.StatusCreated, info)
	}
}

func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.manager.ListRooms())
	}
}

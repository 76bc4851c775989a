package mux

import (
	"net/http"
	"strconv"

	gmux "github.com/gorilla/mux"

	"trio-server/pkg/leaderboard"
)

type postPlayerPayload struct {
	Name string `json:"name"`
}

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postPlayerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		player, err := leaderboard.CreatePlayer(r.Context(), pp.Name)
		if err != nil {
			switch err {
			case leaderboard.ErrEmptyName:
				writeJSONError(w, http.StatusBadRequest, err)
			case leaderboard.ErrDuplicateKey:
				writeJSONError(w, http.StatusConflict, err)
			default:
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, player)
	}
}

func (m *Mux) getPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := leaderboard.Players(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, players)
	}
}

func (m *Mux) deletePlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if err := leaderboard.DeletePlayer(r.Context(), id); err != nil {
			if err == leaderboard.ErrPlayerNotFound {
				writeJSONError(w, http.StatusNotFound, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

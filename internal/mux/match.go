package mux

import (
	"net/http"

	"trio-server/pkg/leaderboard"
)

type postMatchPayload struct {
	WinnerID       int64   `json:"winnerId"`
	ParticipantIDs []int64 `json:"participantIds"`
}

func (m *Mux) postMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postMatchPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		match, err := leaderboard.RecordMatch(r.Context(), pp.WinnerID, pp.ParticipantIDs)
		if err != nil {
			switch err {
			case leaderboard.ErrTooFewParticipants, leaderboard.ErrWinnerNotPlaying:
				writeJSONError(w, http.StatusBadRequest, err)
			default:
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, match)
	}
}

func (m *Mux) getMatchRecent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		matches, err := leaderboard.RecentMatches(r.Context(), limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, matches)
	}
}

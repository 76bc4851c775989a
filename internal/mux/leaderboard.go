package mux

import (
	"net/http"
	"time"

	"trio-server/pkg/leaderboard"
)

func (m *Mux) getLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := leaderboard.Standings(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, standings)
	}
}

func (m *Mux) getLeaderboardWeekly() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := leaderboard.GetWeeklyStandings(r.Context(), time.Now())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, standings)
	}
}

func (m *Mux) getLeaderboardStreaks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		streaks, err := leaderboard.WinStreaks(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, streaks)
	}
}

func (m *Mux) getLeaderboardPodium() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		podium, err := leaderboard.PodiumDays(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, podium)
	}
}

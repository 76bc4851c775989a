package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"trio-server/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	manager *room.Manager
}

// NewMux returns a new HTTP mux
func NewMux(version string, manager *room.Manager) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		manager: manager,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

	// live game rooms
	r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())
	r.Methods(http.MethodGet).Path("/room").Handler(this.getRoom())
	r.Methods(http.MethodGet).Path("/room/{code:[A-Z0-9]{5}}/ws").Handler(this.getRoomCodeWS())

	// leaderboard
	r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	r.Methods(http.MethodGet).Path("/player").Handler(this.getPlayer())
	r.Methods(http.MethodDelete).Path("/player/{id:[0-9]+}").Handler(this.deletePlayerID())
	r.Methods(http.MethodPost).Path("/match").Handler(this.postMatch())
	r.Methods(http.MethodGet).Path("/match/recent").Handler(this.getMatchRecent())
	r.Methods(http.MethodGet).Path("/leaderboard").Handler(this.getLeaderboard())
	r.Methods(http.MethodGet).Path("/leaderboard/weekly").Handler(this.getLeaderboardWeekly())
	r.Methods(http.MethodGet).Path("/leaderboard/streaks").Handler(this.getLeaderboardStreaks())
	r.Methods(http.MethodGet).Path("/leaderboard/podium").Handler(this.getLeaderboardPodium())

	return this
}

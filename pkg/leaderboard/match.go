package leaderboard

import (
	"context"
	"errors"
	"time"

	"trio-server/pkg/db"
)

// ErrWinnerNotPlaying is returned when the winner isn't among the participants
var ErrWinnerNotPlaying = errors.New("winner must be a match participant")

// ErrTooFewParticipants is returned when a match has fewer than two players
var ErrTooFewParticipants = errors.New("a match needs at least two participants")

// Match is a recorded game with its participants
type Match struct {
	ID         int64     `json:"id"`
	WinnerID   int64     `json:"winnerId"`
	WinnerName string    `json:"winnerName,omitempty"`
	PlayedAt   time.Time `json:"playedAt"`
	Opponents  []*Player `json:"opponents,omitempty"`
}

// RecordMatch records a finished match and who took part in it
func RecordMatch(ctx context.Context, winnerID int64, participantIDs []int64) (*Match, error) {
	if len(participantIDs) < 2 {
		return nil, ErrTooFewParticipants
	}

	winnerPlayed := false
	for _, id := range participantIDs {
		if id == winnerID {
			winnerPlayed = true
			break
		}
	}
	if !winnerPlayed {
		return nil, ErrWinnerNotPlaying
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const insertMatch = `
INSERT INTO matches (winner_id)
VALUES ($1)
RETURNING id, played_at`

	var match Match
	match.WinnerID = winnerID
	if err := tx.QueryRowContext(ctx, insertMatch, winnerID).Scan(&match.ID, &match.PlayedAt); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	const insertParticipant = `
INSERT INTO match_players (match_id, player_id)
VALUES ($1, $2)`

	for _, id := range participantIDs {
		if _, err := tx.ExecContext(ctx, insertParticipant, match.ID, id); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &match, nil
}

// RecentMatches returns the newest matches with the losing participants
// attached as opponents
func RecentMatches(ctx context.Context, limit int) ([]*Match, error) {
	const query = `
SELECT m.id, m.winner_id, w.name, m.played_at
FROM matches m
INNER JOIN players w ON m.winner_id = w.id
ORDER BY m.played_at DESC
LIMIT $1`

	rows, err := db.Instance().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*Match, 0)
	for rows.Next() {
		var match Match
		if err := rows.Scan(&match.ID, &match.WinnerID, &match.WinnerName, &match.PlayedAt); err != nil {
			return nil, err
		}

		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, match := range matches {
		opponents, err := matchOpponents(ctx, match.ID, match.WinnerID)
		if err != nil {
			return nil, err
		}

		match.Opponents = opponents
	}

	return matches, nil
}

func matchOpponents(ctx context.Context, matchID, winnerID int64) ([]*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM match_players mp
INNER JOIN players ON mp.player_id = players.id
WHERE mp.match_id = $1 AND players.id != $2
ORDER BY players.name`

	rows, err := db.Instance().QueryContext(ctx, query, matchID, winnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	opponents := make([]*Player, 0)
	for rows.Next() {
		player, err := getPlayerByRow(rows)
		if err != nil {
			return nil, err
		}

		opponents = append(opponents, player)
	}

	return opponents, rows.Err()
}

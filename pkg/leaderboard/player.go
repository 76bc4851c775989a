package leaderboard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"trio-server/pkg/db"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens if a player is created with a taken name
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrPlayerNotFound is returned when a player ID doesn't exist
var ErrPlayerNotFound = errors.New("player not found")

// ErrEmptyName is returned when a player is created with a blank name
var ErrEmptyName = errors.New("name must not be empty")

const playerColumns = `
players.id,
players.name,
players.created_at`

// Player is a record in the `players` table
type Player struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.Name, &player.Created); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player on the leaderboard
func CreatePlayer(ctx context.Context, name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	const query = `
INSERT INTO players (name)
VALUES ($1)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, name)
	player, err := getPlayerByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return player, nil
}

// DeletePlayer removes a player by ID
func DeletePlayer(ctx context.Context, id int64) error {
	const query = `
DELETE FROM players
WHERE id = $1`

	res, err := db.Instance().ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPlayerNotFound
	}

	return nil
}

// Players returns every player ordered by name
func Players(ctx context.Context) ([]*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
ORDER BY players.name`

	rows, err := db.Instance().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*Player, 0)
	for rows.Next() {
		player, err := getPlayerByRow(rows)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, rows.Err()
}

package leaderboard

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"trio-server/pkg/db"
)

// Standing is one player's row on the leaderboard. WinRate is a percentage
// rounded to one decimal.
type Standing struct {
	PlayerID      int64   `json:"playerId"`
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	MatchesPlayed int     `json:"matchesPlayed"`
	WinRate       float64 `json:"winRate"`
}

// WeeklyStandings is the leaderboard restricted to the Monday-Friday work week
type WeeklyStandings struct {
	Players   []*Standing `json:"players"`
	WeekStart string      `json:"weekStart"`
	WeekEnd   string      `json:"weekEnd"`
}

// Streak is a run of consecutive wins ending at the most recent match
type Streak struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Streak   int    `json:"streak"`
}

// PodiumEntry tracks a player's best leaderboard position and how many match
// days they held it
type PodiumEntry struct {
	Name         string `json:"name"`
	BestPosition int    `json:"bestPosition"`
	Days         int    `json:"days"`
}

const standingColumns = `
p.id,
p.name,
COUNT(DISTINCT m.id) AS wins,
COUNT(DISTINCT mp.match_id) AS matches_played,
CASE
	WHEN COUNT(DISTINCT mp.match_id) > 0
	THEN ROUND(COUNT(DISTINCT m.id) * 100.0 / COUNT(DISTINCT mp.match_id), 1)
	ELSE 0
END AS win_rate`

func getStandingsByRows(rows *sql.Rows) ([]*Standing, error) {
	standings := make([]*Standing, 0)
	for rows.Next() {
		var s Standing
		if err := rows.Scan(&s.PlayerID, &s.Name, &s.Wins, &s.MatchesPlayed, &s.WinRate); err != nil {
			return nil, err
		}

		standings = append(standings, &s)
	}

	return standings, rows.Err()
}

// Standings returns the all-time leaderboard ordered by wins, then win rate,
// then name
func Standings(ctx context.Context) ([]*Standing, error) {
	const query = `
SELECT ` + standingColumns + `
FROM players p
LEFT JOIN matches m ON p.id = m.winner_id
LEFT JOIN match_players mp ON p.id = mp.player_id
GROUP BY p.id
ORDER BY wins DESC, win_rate DESC, p.name`

	rows, err := db.Instance().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return getStandingsByRows(rows)
}

// weekWindow returns the Monday 00:00:00 and Friday 23:59:59 bounding the
// work week containing now
func weekWindow(now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	// time.Sunday is 0; the week starts on Monday
	daysSinceMonday := (weekday + 6) % 7

	year, month, day := now.AddDate(0, 0, -daysSinceMonday).Date()
	monday := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	friday := monday.AddDate(0, 0, 4).Add(time.Hour*23 + time.Minute*59 + time.Second*59)

	return monday, friday
}

// GetWeeklyStandings returns the leaderboard counting only matches played in
// the current work week. Players with no matches this week are left out.
func GetWeeklyStandings(ctx context.Context, now time.Time) (*WeeklyStandings, error) {
	weekStart, weekEnd := weekWindow(now)

	const query = `
SELECT ` + standingColumns + `
FROM players p
LEFT JOIN matches m ON p.id = m.winner_id
	AND m.played_at BETWEEN $1 AND $2
LEFT JOIN match_players mp ON p.id = mp.player_id
	AND mp.match_id IN (SELECT id FROM matches WHERE played_at BETWEEN $1 AND $2)
GROUP BY p.id
HAVING COUNT(DISTINCT mp.match_id) > 0
ORDER BY wins DESC, win_rate DESC, p.name`

	rows, err := db.Instance().QueryContext(ctx, query, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings, err := getStandingsByRows(rows)
	if err != nil {
		return nil, err
	}

	return &WeeklyStandings{
		Players:   standings,
		WeekStart: weekStart.Format("02/01"),
		WeekEnd:   weekEnd.Format("02/01"),
	}, nil
}

type winRecord struct {
	playerID int64
	name     string
}

// currentStreak counts consecutive wins by the most recent winner. wins must
// be ordered newest first.
func currentStreak(wins []winRecord) []*Streak {
	if len(wins) == 0 {
		return []*Streak{}
	}

	leader := wins[0]
	count := 0
	for _, win := range wins {
		if win.playerID != leader.playerID {
			break
		}
		count++
	}

	if count < 2 {
		return []*Streak{}
	}

	return []*Streak{{
		PlayerID: leader.playerID,
		Name:     leader.name,
		Streak:   count,
	}}
}

// WinStreaks returns the active win streak, if anyone is on one
func WinStreaks(ctx context.Context) ([]*Streak, error) {
	const query = `
SELECT m.winner_id, p.name
FROM matches m
INNER JOIN players p ON m.winner_id = p.id
ORDER BY m.played_at DESC`

	rows, err := db.Instance().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wins := make([]winRecord, 0)
	for rows.Next() {
		var win winRecord
		if err := rows.Scan(&win.playerID, &win.name); err != nil {
			return nil, err
		}

		wins = append(wins, win)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return currentStreak(wins), nil
}

type podiumTracker struct {
	entries map[int64]*PodiumEntry
}

func newPodiumTracker() *podiumTracker {
	return &podiumTracker{entries: make(map[int64]*PodiumEntry)}
}

// recordDay folds one match day's top three into the tally. A player's count
// resets when they reach a better position than they've held before.
func (p *podiumTracker) recordDay(top []*Standing) {
	for i, standing := range top {
		if i >= 3 {
			break
		}

		position := i + 1
		entry, ok := p.entries[standing.PlayerID]
		switch {
		case !ok || position < entry.BestPosition:
			p.entries[standing.PlayerID] = &PodiumEntry{
				Name:         standing.Name,
				BestPosition: position,
				Days:         1,
			}
		case position == entry.BestPosition:
			entry.Days++
		}
	}
}

func (p *podiumTracker) results() []*PodiumEntry {
	results := make([]*PodiumEntry, 0, len(p.entries))
	for _, entry := range p.entries {
		results = append(results, entry)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].BestPosition != results[j].BestPosition {
			return results[i].BestPosition < results[j].BestPosition
		}

		return results[i].Days > results[j].Days
	})

	return results
}

// PodiumDays reports, for every player who has reached the top three, their
// best position on the cumulative leaderboard and how many match days they
// held it
func PodiumDays(ctx context.Context) ([]*PodiumEntry, error) {
	const daysQuery = `
SELECT DISTINCT played_at::date AS match_day
FROM matches
ORDER BY match_day`

	rows, err := db.Instance().QueryContext(ctx, daysQuery)
	if err != nil {
		return nil, err
	}

	days := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			rows.Close()
			return nil, err
		}

		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	tracker := newPodiumTracker()
	for _, day := range days {
		top, err := standingsThrough(ctx, day)
		if err != nil {
			return nil, err
		}

		tracker.recordDay(top)
	}

	return tracker.results(), nil
}

// standingsThrough returns the cumulative leaderboard counting matches up to
// the end of the given day, restricted to players who have played
func standingsThrough(ctx context.Context, day time.Time) ([]*Standing, error) {
	const query = `
SELECT ` + standingColumns + `
FROM players p
LEFT JOIN matches m ON p.id = m.winner_id AND m.played_at::date <= $1
LEFT JOIN match_players mp ON p.id = mp.player_id
	AND mp.match_id IN (SELECT id FROM matches WHERE played_at::date <= $1)
GROUP BY p.id
HAVING COUNT(DISTINCT mp.match_id) > 0
ORDER BY wins DESC, win_rate DESC, p.name`

	rows, err := db.Instance().QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return getStandingsByRows(rows)
}

package club

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mbakke/courtside/internal/elo"
	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertPlayer(p PlayerInfo) error {
	return s.UpsertPlayers([]PlayerInfo{p})
}

// UpsertPlayers inserts or updates players. Ratings are never overwritten by
// an upsert; they only move through ApplyRatings.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	if len(players) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, level, rating)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			level = excluded.level;
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		rating := p.Rating
		if rating == 0 {
			rating = elo.InitialRating
		}
		if _, err := stmt.Exec(p.ID, p.Name, p.Level, rating); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p PlayerInfo
	err := s.db.QueryRow("SELECT id, name, level, rating FROM players WHERE id = ?", playerID).
		Scan(&p.ID, &p.Name, &p.Level, &p.Rating)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player %q not found", playerID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &p, nil
}

// GetPlayerByName performs a case-insensitive, fuzzy lookup (e.g. "anna"
// matches "Anna Berg").
func (s *store) GetPlayerByName(name string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + name + "%"
	var p PlayerInfo
	err := s.db.QueryRow(
		"SELECT id, name, level, rating FROM players WHERE name LIKE ? COLLATE NOCASE LIMIT 1",
		pattern,
	).Scan(&p.ID, &p.Name, &p.Level, &p.Rating)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("No player found matching pattern", "pattern", pattern)
			return nil, fmt.Errorf("player matching '%s' not found", name)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &p, nil
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, level, rating FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		var name sql.NullString
		if err := rows.Scan(&p.ID, &name, &p.Level, &p.Rating); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Name = name.String
		players = append(players, p)
	}
	return players, nil
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err)
		return false
	}
	return exists
}

// UpsertMatch inserts a new match or updates an existing one. It is "dumb"
// and never touches the processing status, winner or score of an existing
// match; results only move through RecordResult.
func (s *store) UpsertMatch(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	teamAJSON, err := json.Marshal(m.TeamA)
	if err != nil {
		return err
	}
	teamBJSON, err := json.Marshal(m.TeamB)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO matches (id, venue_id, owner_id, played_at, created_at, team_a_json, team_b_json, winner_team, score, processing_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, '', '', ?)
		ON CONFLICT(id) DO UPDATE SET
			venue_id = excluded.venue_id,
			owner_id = excluded.owner_id,
			played_at = excluded.played_at,
			created_at = excluded.created_at,
			team_a_json = excluded.team_a_json,
			team_b_json = excluded.team_b_json;
	`, m.ID, m.VenueID, m.OwnerID, m.PlayedAt, m.CreatedAt, teamAJSON, teamBJSON, StatusNew)
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", m.ID, err)
	}

	// Team membership is kept relational so result feeds and partnership
	// aggregates can be plain joins.
	if _, err := tx.Exec("DELETE FROM match_players WHERE match_id = ?", m.ID); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO match_players (match_id, player_id, team) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, playerID := range m.TeamA {
		if _, err := stmt.Exec(m.ID, playerID, TeamA); err != nil {
			return fmt.Errorf("failed to insert team A player %s: %w", playerID, err)
		}
	}
	for _, playerID := range m.TeamB {
		if _, err := stmt.Exec(m.ID, playerID, TeamB); err != nil {
			return fmt.Errorf("failed to insert team B player %s: %w", playerID, err)
		}
	}

	return tx.Commit()
}

const matchColumns = "id, venue_id, owner_id, played_at, created_at, team_a_json, team_b_json, winner_team, score, processing_status"

// scanMatch is a helper to scan a single match row.
func (s *store) scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var venueID, teamAJSON, teamBJSON sql.NullString

	err := scanner.Scan(
		&m.ID, &venueID, &m.OwnerID, &m.PlayedAt, &m.CreatedAt,
		&teamAJSON, &teamBJSON, &m.Winner, &m.Score, &m.ProcessingStatus,
	)
	if err != nil {
		return nil, err
	}
	m.VenueID = venueID.String

	m.TeamA = []string{}
	if teamAJSON.Valid && teamAJSON.String != "" {
		if err := json.Unmarshal([]byte(teamAJSON.String), &m.TeamA); err != nil {
			log.Error("Failed to unmarshal team_a_json", "error", err, "matchID", m.ID)
		}
	}
	m.TeamB = []string{}
	if teamBJSON.Valid && teamBJSON.String != "" {
		if err := json.Unmarshal([]byte(teamBJSON.String), &m.TeamB); err != nil {
			log.Error("Failed to unmarshal team_b_json", "error", err, "matchID", m.ID)
		}
	}

	return &m, nil
}

func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+matchColumns+" FROM matches WHERE id = ?", matchID)
	m, err := s.scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("match %q not found", matchID)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// ListMatches returns matches newest first, narrowed by the filter.
func (s *store) ListMatches(f MatchFilter) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qb := sq.Select(
		"m.id", "m.venue_id", "m.owner_id", "m.played_at", "m.created_at",
		"m.team_a_json", "m.team_b_json", "m.winner_team", "m.score", "m.processing_status",
	).From("matches m").OrderBy("m.played_at DESC")

	if f.PlayerID != "" {
		qb = qb.Join("match_players mp ON mp.match_id = m.id").
			Where(sq.Eq{"mp.player_id": f.PlayerID})
	}
	if f.VenueID != "" {
		qb = qb.Where(sq.Eq{"m.venue_id": f.VenueID})
	}
	if f.Since > 0 {
		qb = qb.Where(sq.GtOrEq{"m.played_at": f.Since})
	}
	if f.Limit > 0 {
		qb = qb.Limit(f.Limit)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build match query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := s.scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// GetMatchesForProcessing retrieves matches with a recorded result that have
// not yet finished the pipeline.
func (s *store) GetMatchesForProcessing() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT "+matchColumns+" FROM matches WHERE processing_status NOT IN (?, ?)",
		StatusNew, StatusCompleted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := s.scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// UpdateProcessingStatus transitions a match to a new state.
func (s *store) UpdateProcessingStatus(matchID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE matches SET processing_status = ? WHERE id = ?", status, matchID)
	return err
}

// RecordResult marks the winning team of a match. A match's result can only
// be recorded once.
func (s *store) RecordResult(matchID string, winner Team, score string) error {
	if winner != TeamA && winner != TeamB {
		return fmt.Errorf("invalid winner team %q", winner)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches SET winner_team = ?, score = ?, processing_status = ?
		WHERE id = ? AND winner_team = ''
	`, winner, score, StatusResultRecorded, matchID)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("match %q not found or result already recorded", matchID)
	}
	log.Info("Recorded match result", "matchID", matchID, "winner", winner, "score", score)
	return nil
}

// PlayerResults returns the player's chronological result feed. The ORDER BY
// here is the ordering contract the streak analyzer relies on.
func (s *store) PlayerResults(playerID string) ([]streaks.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT mp.match_id, mp.team = m.winner_team, m.played_at
		FROM match_players mp
		JOIN matches m ON m.id = mp.match_id
		WHERE mp.player_id = ? AND m.winner_team != ''
		ORDER BY m.played_at ASC
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player results: %w", err)
	}
	defer rows.Close()

	var results []streaks.MatchResult
	for rows.Next() {
		r := streaks.MatchResult{PlayerID: playerID}
		if err := rows.Scan(&r.MatchID, &r.IsWin, &r.PlayedAt); err != nil {
			log.Error("Failed to scan result row", "error", err, "playerID", playerID)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// GroupResults returns the entire club's result feed in one query, sorted by
// (player_id, played_at) as the batch streak computation requires.
func (s *store) GroupResults() ([]streaks.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT mp.player_id, mp.match_id, mp.team = m.winner_team, m.played_at
		FROM match_players mp
		JOIN matches m ON m.id = mp.match_id
		WHERE m.winner_team != ''
		ORDER BY mp.player_id ASC, m.played_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query group results: %w", err)
	}
	defer rows.Close()

	var results []streaks.MatchResult
	for rows.Next() {
		var r streaks.MatchResult
		if err := rows.Scan(&r.PlayerID, &r.MatchID, &r.IsWin, &r.PlayedAt); err != nil {
			log.Error("Failed to scan result row", "error", err)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// ApplyRatings updates every participant's ELO rating for a decided match
// and records one rating_history row per player. Applying twice is a no-op.
func (s *store) ApplyRatings(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT "+matchColumns+" FROM matches WHERE id = ?", matchID)
	m, err := s.scanMatch(row)
	if err != nil {
		return fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	if m.Winner == "" {
		return fmt.Errorf("match %q has no recorded result", matchID)
	}

	var already int
	if err := tx.QueryRow("SELECT COUNT(*) FROM rating_history WHERE match_id = ?", matchID).Scan(&already); err != nil {
		return err
	}
	if already > 0 {
		log.Debug("Ratings already applied", "matchID", matchID)
		return tx.Commit()
	}

	ratingOf := func(playerIDs []string) ([]float64, error) {
		ratings := make([]float64, 0, len(playerIDs))
		for _, id := range playerIDs {
			var r float64
			if err := tx.QueryRow("SELECT rating FROM players WHERE id = ?", id).Scan(&r); err != nil {
				return nil, fmt.Errorf("failed to load rating for %s: %w", id, err)
			}
			ratings = append(ratings, r)
		}
		return ratings, nil
	}

	ratingsA, err := ratingOf(m.TeamA)
	if err != nil {
		return err
	}
	ratingsB, err := ratingOf(m.TeamB)
	if err != nil {
		return err
	}

	teamA := elo.TeamRating(ratingsA...)
	teamB := elo.TeamRating(ratingsB...)
	deltaA := elo.Delta(teamA, teamB, m.Winner == TeamA)
	deltaB := elo.Delta(teamB, teamA, m.Winner == TeamB)

	now := time.Now().Unix()
	apply := func(playerIDs []string, ratings []float64, delta float64) error {
		for i, id := range playerIDs {
			after := ratings[i] + delta
			if _, err := tx.Exec("UPDATE players SET rating = ? WHERE id = ?", after, id); err != nil {
				return fmt.Errorf("failed to update rating for %s: %w", id, err)
			}
			if _, err := tx.Exec(`
				INSERT INTO rating_history (match_id, player_id, delta, rating_after, created_at)
				VALUES (?, ?, ?, ?, ?)
			`, matchID, id, delta, after, now); err != nil {
				return fmt.Errorf("failed to insert rating history for %s: %w", id, err)
			}
		}
		return nil
	}

	if err := apply(m.TeamA, ratingsA, deltaA); err != nil {
		return err
	}
	if err := apply(m.TeamB, ratingsB, deltaB); err != nil {
		return err
	}

	log.Info("Applied ratings", "matchID", matchID, "deltaA", deltaA, "deltaB", deltaB)
	return tx.Commit()
}

// GetLeaderboard derives per-player aggregates from the result feed.
func (s *store) GetLeaderboard() ([]PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT
			p.id,
			p.name,
			COUNT(m.id),
			COALESCE(SUM(CASE WHEN mp.team = m.winner_team THEN 1 ELSE 0 END), 0),
			p.rating
		FROM players p
		LEFT JOIN match_players mp ON mp.player_id = p.id
		LEFT JOIN matches m ON m.id = mp.match_id AND m.winner_team != ''
		GROUP BY p.id, p.name, p.rating
		ORDER BY 4 DESC, p.rating DESC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var st PlayerStats
		var name sql.NullString
		if err := rows.Scan(&st.PlayerID, &name, &st.MatchesPlayed, &st.MatchesWon, &st.Rating); err != nil {
			log.Error("Failed to scan leaderboard row", "error", err)
			continue
		}
		st.PlayerName = name.String
		st.MatchesLost = st.MatchesPlayed - st.MatchesWon
		if st.MatchesPlayed > 0 {
			st.WinPercentage = (float64(st.MatchesWon) / float64(st.MatchesPlayed)) * 100
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// pairMatchesJoin selects the decided matches where both named players were
// on the same team. Placeholders: player A, player B.
const pairMatchesJoin = `
	FROM matches m
	JOIN match_players pa ON pa.match_id = m.id AND pa.player_id = ?
	JOIN match_players pb ON pb.match_id = m.id AND pb.player_id = ? AND pb.team = pa.team
	WHERE m.winner_team != ''`

// GetPartnership computes the aggregate for one pair, ready for the synergy
// scorer.
func (s *store) GetPartnership(playerA, playerB string) (*synergy.Partnership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partnershipLocked(playerA, playerB)
}

func (s *store) partnershipLocked(playerA, playerB string) (*synergy.Partnership, error) {
	p := synergy.Partnership{PlayerAID: playerA, PlayerBID: playerB}

	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN pa.team = m.winner_team THEN 1 ELSE 0 END), 0)
	`+pairMatchesJoin, playerA, playerB).Scan(&p.MatchesPlayed, &p.Wins)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate partnership: %w", err)
	}
	p.Losses = p.MatchesPlayed - p.Wins
	if p.MatchesPlayed > 0 {
		p.WinRate = float64(p.Wins) / float64(p.MatchesPlayed)
	}

	// Distinct opposing players beaten in matches the pair won together.
	err = s.db.QueryRow(`
		SELECT COUNT(DISTINCT op.player_id)
		FROM matches m
		JOIN match_players pa ON pa.match_id = m.id AND pa.player_id = ?
		JOIN match_players pb ON pb.match_id = m.id AND pb.player_id = ? AND pb.team = pa.team
		JOIN match_players op ON op.match_id = m.id AND op.team != pa.team
		WHERE m.winner_team != '' AND pa.team = m.winner_team
	`, playerA, playerB).Scan(&p.CommonOpponentsBeaten)
	if err != nil {
		return nil, fmt.Errorf("failed to count beaten opponents: %w", err)
	}

	// Average rating change for matches played together; the team delta is
	// identical for both players, so player A's history rows suffice.
	err = s.db.QueryRow(`
		SELECT COALESCE(AVG(rh.delta), 0)
		FROM rating_history rh
		WHERE rh.player_id = ? AND rh.match_id IN (
			SELECT m.id`+pairMatchesJoin+`
		)
	`, playerA, playerA, playerB).Scan(&p.AvgEloChangePaired)
	if err != nil {
		return nil, fmt.Errorf("failed to average paired rating change: %w", err)
	}

	individualAvg := func(playerID string) (float64, error) {
		var avg float64
		err := s.db.QueryRow(
			"SELECT COALESCE(AVG(delta), 0) FROM rating_history WHERE player_id = ?",
			playerID,
		).Scan(&avg)
		return avg, err
	}
	avgA, err := individualAvg(playerA)
	if err != nil {
		return nil, fmt.Errorf("failed to average individual rating change: %w", err)
	}
	avgB, err := individualAvg(playerB)
	if err != nil {
		return nil, fmt.Errorf("failed to average individual rating change: %w", err)
	}
	p.AvgEloChangeSolo = (avgA + avgB) / 2
	p.EloChangeDelta = p.AvgEloChangePaired - p.AvgEloChangeSolo

	if nameA, err := s.playerNameLocked(playerA); err == nil {
		p.PlayerAName = nameA
	}
	if nameB, err := s.playerNameLocked(playerB); err == nil {
		p.PlayerBName = nameB
	}

	return &p, nil
}

func (s *store) playerNameLocked(playerID string) (string, error) {
	var name sql.NullString
	err := s.db.QueryRow("SELECT name FROM players WHERE id = ?", playerID).Scan(&name)
	return name.String, err
}

// TopPartnerships lists the most played pairs with their full aggregates.
func (s *store) TopPartnerships(limit int) ([]synergy.Partnership, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT pa.player_id, pb.player_id
		FROM matches m
		JOIN match_players pa ON pa.match_id = m.id
		JOIN match_players pb ON pb.match_id = m.id AND pb.team = pa.team AND pb.player_id > pa.player_id
		WHERE m.winner_team != ''
		GROUP BY pa.player_id, pb.player_id
		ORDER BY COUNT(*) DESC, SUM(CASE WHEN pa.team = m.winner_team THEN 1 ELSE 0 END) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top partnerships: %w", err)
	}
	defer rows.Close()

	type pair struct{ a, b string }
	var pairs []pair
	for rows.Next() {
		var pr pair
		if err := rows.Scan(&pr.a, &pr.b); err != nil {
			log.Error("Failed to scan partnership row", "error", err)
			continue
		}
		pairs = append(pairs, pr)
	}

	partnerships := make([]synergy.Partnership, 0, len(pairs))
	for _, pr := range pairs {
		p, err := s.partnershipLocked(pr.a, pr.b)
		if err != nil {
			log.Error("Failed to aggregate partnership", "error", err, "playerA", pr.a, "playerB", pr.b)
			continue
		}
		partnerships = append(partnerships, *p)
	}
	return partnerships, nil
}

// GetHeadToHead counts decided matches where the two players were on
// opposing teams.
func (s *store) GetHeadToHead(playerA, playerB string) (*HeadToHead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := HeadToHead{PlayerAID: playerA, PlayerBID: playerB}
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN pa.team = m.winner_team THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN pb.team = m.winner_team THEN 1 ELSE 0 END), 0)
		FROM matches m
		JOIN match_players pa ON pa.match_id = m.id AND pa.player_id = ?
		JOIN match_players pb ON pb.match_id = m.id AND pb.player_id = ? AND pb.team != pa.team
		WHERE m.winner_team != ''
	`, playerA, playerB).Scan(&h.Matches, &h.AWins, &h.BWins)
	if err != nil {
		return nil, fmt.Errorf("failed to compute head to head: %w", err)
	}
	return &h, nil
}

// CreateInvite stores an invite and returns its id.
func (s *store) CreateInvite(inviterID, invitee string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO invites (id, inviter_id, invitee, created_at) VALUES (?, ?, ?, ?)",
		id, inviterID, invitee, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create invite: %w", err)
	}
	log.Info("Created invite", "id", id, "inviter", inviterID)
	return id, nil
}

// SetAttendance upserts a player's RSVP for a match.
func (s *store) SetAttendance(matchID, playerID string, status AttendanceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO attendance (match_id, player_id, status, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(match_id, player_id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at;
	`, matchID, playerID, status, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set attendance: %w", err)
	}
	return nil
}

func (s *store) UpsertVenue(v Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO venues (id, name, city) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			city = excluded.city;
	`, v.ID, v.Name, v.City)
	if err != nil {
		return fmt.Errorf("failed to upsert venue: %w", err)
	}
	return nil
}

func (s *store) ListVenues() ([]Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT v.id, v.name, v.city, COALESCE(AVG(vr.rating), 0), COUNT(vr.rating)
		FROM venues v
		LEFT JOIN venue_ratings vr ON vr.venue_id = v.id
		GROUP BY v.id, v.name, v.city
		ORDER BY v.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		var v Venue
		var city sql.NullString
		if err := rows.Scan(&v.ID, &v.Name, &city, &v.AverageRating, &v.RatingCount); err != nil {
			log.Error("Failed to scan venue row", "error", err)
			continue
		}
		v.City = city.String
		venues = append(venues, v)
	}
	return venues, nil
}

// RateVenue records a 1-5 star rating; a player re-rating a venue replaces
// their previous rating.
func (s *store) RateVenue(venueID, playerID string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO venue_ratings (venue_id, player_id, rating, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(venue_id, player_id) DO UPDATE SET
			rating = excluded.rating,
			created_at = excluded.created_at;
	`, venueID, playerID, rating, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to rate venue: %w", err)
	}
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}
	defer tx.Rollback()

	for _, table := range []string{"rating_history", "match_players", "attendance", "invites", "venue_ratings", "matches", "venues", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing match", "error", err, "matchID", matchID)
		return
	}
	defer tx.Rollback()

	for _, table := range []string{"rating_history", "match_players", "attendance"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_id = ?", matchID); err != nil {
			log.Error("Failed to clear match rows", "error", err, "table", table, "matchID", matchID)
			return
		}
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE id = ?", matchID); err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing match", "error", err)
	}
}

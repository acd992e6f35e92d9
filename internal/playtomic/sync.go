package playtomic

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/metrics"
)

// Syncer pulls matches for one tenant from the Playtomic API and mirrors them
// into the club store.
type Syncer struct {
	client   PlaytomicClient
	store    club.ClubStore
	metrics  metrics.Metrics
	tenantID string
}

// NewSyncer creates a new Syncer.
func NewSyncer(client PlaytomicClient, store club.ClubStore, metrics metrics.Metrics, tenantID string) *Syncer {
	return &Syncer{
		client:   client,
		store:    store,
		metrics:  metrics,
		tenantID: tenantID,
	}
}

// Sync fetches the tenant's matches and upserts players, venues, matches and
// any newly confirmed results. It returns the number of matches synced.
func (s *Syncer) Sync() (int, error) {
	s.metrics.IncSyncRuns()

	summaries, err := s.client.GetMatches(&SearchMatchesParams{
		SportID:    "PADEL",
		HasPlayers: true,
		Sort:       "start_date,DESC",
		TenantIDs:  []string{s.tenantID},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to search matches: %w", err)
	}

	synced := 0
	for _, summary := range summaries {
		if err := s.syncMatch(summary.MatchID); err != nil {
			log.Error("Failed to sync match", "error", err, "matchID", summary.MatchID)
			continue
		}
		synced++
	}
	log.Info("Synced matches", "count", synced, "total", len(summaries))
	return synced, nil
}

func (s *Syncer) syncMatch(matchID string) error {
	pm, err := s.client.GetSpecificMatch(matchID)
	if err != nil {
		return fmt.Errorf("failed to fetch match: %w", err)
	}
	if pm.GameStatus == GameStatusCanceled {
		log.Debug("Skipping canceled match", "matchID", matchID)
		return nil
	}
	if len(pm.Teams) != 2 {
		log.Warn("Skipping match without two teams", "matchID", matchID, "teams", len(pm.Teams))
		return nil
	}

	var players []club.PlayerInfo
	for _, team := range pm.Teams {
		for _, p := range team.Players {
			players = append(players, club.PlayerInfo{ID: p.UserID, Name: p.Name, Level: p.Level})
		}
	}
	if err := s.store.UpsertPlayers(players); err != nil {
		return fmt.Errorf("failed to upsert players: %w", err)
	}

	if pm.Tenant.ID != "" {
		if err := s.store.UpsertVenue(club.Venue{ID: pm.Tenant.ID, Name: pm.Tenant.Name}); err != nil {
			return fmt.Errorf("failed to upsert venue: %w", err)
		}
	}

	match := &club.Match{
		ID:        pm.MatchID,
		VenueID:   pm.Tenant.ID,
		OwnerID:   pm.OwnerID,
		PlayedAt:  pm.Start,
		CreatedAt: pm.CreatedAt,
		TeamA:     playerIDs(pm.Teams[0]),
		TeamB:     playerIDs(pm.Teams[1]),
	}
	if err := s.store.UpsertMatch(match); err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}

	if pm.GameStatus == GameStatusPlayed && pm.ResultsStatus == ResultsStatusConfirmed {
		return s.recordResult(pm)
	}
	return nil
}

// recordResult translates a confirmed Playtomic result into the store. A
// result already recorded for the match is left untouched.
func (s *Syncer) recordResult(pm PadelMatch) error {
	existing, err := s.store.GetMatch(pm.MatchID)
	if err != nil {
		return err
	}
	if existing.Winner != "" {
		return nil
	}

	var winner club.Team
	switch {
	case pm.Teams[0].TeamResult == "WON":
		winner = club.TeamA
	case pm.Teams[1].TeamResult == "WON":
		winner = club.TeamB
	default:
		log.Warn("Confirmed result without a winning team", "matchID", pm.MatchID)
		return nil
	}

	var sets []string
	for _, set := range pm.Results {
		sets = append(sets, fmt.Sprintf("%d-%d", set.Scores[pm.Teams[0].ID], set.Scores[pm.Teams[1].ID]))
	}

	if err := s.store.RecordResult(pm.MatchID, winner, strings.Join(sets, " ")); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	s.metrics.IncResultsRecorded()
	return nil
}

func playerIDs(team Team) []string {
	ids := make([]string, 0, len(team.Players))
	for _, p := range team.Players {
		ids = append(ids, p.UserID)
	}
	return ids
}

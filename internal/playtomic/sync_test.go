package playtomic

import (
	"testing"

	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedMatch(id string) PadelMatch {
	return PadelMatch{
		MatchID:       id,
		OwnerID:       "u1",
		Start:         1720548000,
		CreatedAt:     1720461600,
		GameStatus:    GameStatusPlayed,
		ResultsStatus: ResultsStatusConfirmed,
		Tenant:        Tenant{ID: "tenant-1", Name: "Padel Club"},
		Teams: []Team{
			{
				ID:         "1",
				TeamResult: "WON",
				Players:    []Player{{UserID: "u1", Name: "Anna", Level: 2.5}, {UserID: "u2", Name: "Bo"}},
			},
			{
				ID:         "2",
				TeamResult: "LOST",
				Players:    []Player{{UserID: "u3", Name: "Carl"}, {UserID: "u4", Name: "Dina"}},
			},
		},
		Results: []SetResult{
			{Name: "Set 1", Scores: map[string]int{"1": 6, "2": 4}},
			{Name: "Set 2", Scores: map[string]int{"1": 7, "2": 5}},
		},
	}
}

func TestSync(t *testing.T) {
	var upsertedPlayers []club.PlayerInfo
	var upsertedVenues []club.Venue
	store := club.NewMock()
	store.UpsertPlayersFunc = func(players []club.PlayerInfo) error {
		upsertedPlayers = append(upsertedPlayers, players...)
		return nil
	}
	store.UpsertVenueFunc = func(v club.Venue) error {
		upsertedVenues = append(upsertedVenues, v)
		return nil
	}

	client := NewMockClient()
	client.GetMatchesFunc = func(params *SearchMatchesParams) ([]MatchSummary, error) {
		assert.Equal(t, []string{"tenant-1"}, params.TenantIDs)
		return []MatchSummary{{MatchID: "m1"}}, nil
	}
	client.GetSpecificMatchFunc = func(matchID string) (PadelMatch, error) {
		return playedMatch(matchID), nil
	}

	m := metrics.NewMock()
	syncer := NewSyncer(client, store, m, "tenant-1")

	synced, err := syncer.Sync()
	require.NoError(t, err)
	assert.Equal(t, 1, synced)
	assert.Equal(t, 1, m.SyncRuns())

	require.Len(t, store.UpsertMatchCalls, 1)
	match := store.UpsertMatchCalls[0]
	assert.Equal(t, "m1", match.ID)
	assert.Equal(t, "tenant-1", match.VenueID)
	assert.Equal(t, []string{"u1", "u2"}, match.TeamA)
	assert.Equal(t, []string{"u3", "u4"}, match.TeamB)

	assert.Len(t, upsertedPlayers, 4)
	assert.Equal(t, 2.5, upsertedPlayers[0].Level)
	require.Len(t, upsertedVenues, 1)
	assert.Equal(t, "Padel Club", upsertedVenues[0].Name)

	require.Len(t, store.RecordResultCalls, 1)
	assert.Equal(t, club.TeamA, store.RecordResultCalls[0].Winner)
	assert.Equal(t, "6-4 7-5", store.RecordResultCalls[0].Score)
	assert.Equal(t, 1, m.ResultsRecorded())
}

func TestSyncSkipsAlreadyRecordedResult(t *testing.T) {
	store := club.NewMock()
	store.GetMatchFunc = func(matchID string) (*club.Match, error) {
		return &club.Match{ID: matchID, Winner: club.TeamA}, nil
	}

	client := NewMockClient()
	client.GetMatchesFunc = func(params *SearchMatchesParams) ([]MatchSummary, error) {
		return []MatchSummary{{MatchID: "m1"}}, nil
	}
	client.GetSpecificMatchFunc = func(matchID string) (PadelMatch, error) {
		return playedMatch(matchID), nil
	}

	syncer := NewSyncer(client, store, metrics.NewMock(), "tenant-1")

	synced, err := syncer.Sync()
	require.NoError(t, err)
	assert.Equal(t, 1, synced)
	assert.Len(t, store.RecordResultCalls, 0)
}

func TestSyncSkipsCanceledAndMalformedMatches(t *testing.T) {
	store := club.NewMock()

	client := NewMockClient()
	client.GetMatchesFunc = func(params *SearchMatchesParams) ([]MatchSummary, error) {
		return []MatchSummary{{MatchID: "canceled"}, {MatchID: "one-team"}}, nil
	}
	client.GetSpecificMatchFunc = func(matchID string) (PadelMatch, error) {
		if matchID == "canceled" {
			return PadelMatch{MatchID: matchID, GameStatus: GameStatusCanceled}, nil
		}
		return PadelMatch{MatchID: matchID, GameStatus: GameStatusPending, Teams: []Team{{ID: "1"}}}, nil
	}

	syncer := NewSyncer(client, store, metrics.NewMock(), "tenant-1")

	synced, err := syncer.Sync()
	require.NoError(t, err)
	assert.Equal(t, 2, synced, "skipped matches are not sync failures")
	assert.Len(t, store.UpsertMatchCalls, 0)
}

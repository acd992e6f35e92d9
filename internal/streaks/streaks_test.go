package streaks_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/mbakke/courtside/internal/streaks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// results builds a chronological feed from a sequence of outcomes, where
// true means a win. Match ids and timestamps are derived from the index.
func results(playerID string, outcomes ...bool) []streaks.MatchResult {
	rows := make([]streaks.MatchResult, len(outcomes))
	for i, win := range outcomes {
		rows[i] = streaks.MatchResult{
			PlayerID: playerID,
			MatchID:  fmt.Sprintf("m%d", i+1),
			IsWin:    win,
			PlayedAt: int64(1700000000 + i*3600),
		}
	}
	return rows
}

func TestComputeEmpty(t *testing.T) {
	got := streaks.Compute(nil)

	assert.Equal(t, 0, got.Current)
	assert.Equal(t, 0, got.LongestWin)
	assert.Equal(t, 0, got.LongestLoss)
	assert.Empty(t, got.History)
	assert.NotNil(t, got.History)
}

func TestComputeSingleWin(t *testing.T) {
	got := streaks.Compute(results("p1", true))

	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 1, got.LongestWin)
	assert.Equal(t, 0, got.LongestLoss)
	require.Len(t, got.History, 1)
	assert.Equal(t, streaks.OutcomeWin, got.History[0].Type)
	assert.Equal(t, 1, got.History[0].Length)
	assert.Equal(t, "m1", got.History[0].StartMatchID)
	assert.Equal(t, "m1", got.History[0].EndMatchID)
}

func TestComputeAlternating(t *testing.T) {
	got := streaks.Compute(results("p1", true, false, true, false))

	assert.Equal(t, -1, got.Current)
	assert.Equal(t, 1, got.LongestWin)
	assert.Equal(t, 1, got.LongestLoss)
	require.Len(t, got.History, 4)
	for _, r := range got.History {
		assert.Equal(t, 1, r.Length)
	}
}

func TestComputeConsolidatesRuns(t *testing.T) {
	got := streaks.Compute(results("p1", true, true, true, false, false))

	assert.Equal(t, -2, got.Current)
	assert.Equal(t, 3, got.LongestWin)
	assert.Equal(t, 2, got.LongestLoss)
	require.Len(t, got.History, 2)

	assert.Equal(t, streaks.OutcomeWin, got.History[0].Type)
	assert.Equal(t, 3, got.History[0].Length)
	assert.Equal(t, "m1", got.History[0].StartMatchID)
	assert.Equal(t, "m3", got.History[0].EndMatchID)

	assert.Equal(t, streaks.OutcomeLoss, got.History[1].Type)
	assert.Equal(t, 2, got.History[1].Length)
	assert.Equal(t, "m4", got.History[1].StartMatchID)
	assert.Equal(t, "m5", got.History[1].EndMatchID)
}

func TestComputeRunDates(t *testing.T) {
	rows := results("p1", true, true, false)
	got := streaks.Compute(rows)

	require.Len(t, got.History, 2)
	assert.Equal(t, rows[0].PlayedAt, got.History[0].StartedAt)
	assert.Equal(t, rows[1].PlayedAt, got.History[0].EndedAt)
	assert.Equal(t, rows[2].PlayedAt, got.History[1].StartedAt)
	assert.Equal(t, rows[2].PlayedAt, got.History[1].EndedAt)
}

func TestComputeGroupEmpty(t *testing.T) {
	got := streaks.ComputeGroup(nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestComputeGroupSeparatesPlayers(t *testing.T) {
	feed := append(
		results("alice", true, true, false),
		results("bob", false, false)...,
	)

	got := streaks.ComputeGroup(feed)
	require.Len(t, got, 2)

	assert.Equal(t, -1, got["alice"].Current)
	assert.Equal(t, 2, got["alice"].LongestWin)
	assert.Equal(t, 1, got["alice"].LongestLoss)

	assert.Equal(t, -2, got["bob"].Current)
	assert.Equal(t, 0, got["bob"].LongestWin)
	assert.Equal(t, 2, got["bob"].LongestLoss)
}

func TestComputeGroupOmitsPlayersWithoutRows(t *testing.T) {
	got := streaks.ComputeGroup(results("alice", true))

	_, ok := got["bob"]
	assert.False(t, ok)
}

// TestComputeGroupMatchesSinglePlayer is the cross-consistency property: the
// batch computation must agree with the single-player computation on every
// player's subsequence, for arbitrary multi-player histories.
func TestComputeGroupMatchesSinglePlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 100; trial++ {
		playerCount := 1 + rng.Intn(6)
		perPlayer := make(map[string][]streaks.MatchResult)

		var playerIDs []string
		for p := 0; p < playerCount; p++ {
			id := fmt.Sprintf("player-%d", p)
			playerIDs = append(playerIDs, id)
			n := rng.Intn(20) // some players may have zero rows
			outcomes := make([]bool, n)
			for i := range outcomes {
				outcomes[i] = rng.Intn(2) == 0
			}
			perPlayer[id] = results(id, outcomes...)
		}

		// Group feed is sorted by (player_id, played_at).
		sort.Strings(playerIDs)
		var feed []streaks.MatchResult
		for _, id := range playerIDs {
			feed = append(feed, perPlayer[id]...)
		}

		batch := streaks.ComputeGroup(feed)

		for _, id := range playerIDs {
			single := streaks.Compute(perPlayer[id])
			summary, ok := batch[id]
			if len(perPlayer[id]) == 0 {
				assert.False(t, ok, "trial %d: player %s has no rows but appears in batch output", trial, id)
				continue
			}
			require.True(t, ok, "trial %d: player %s missing from batch output", trial, id)
			assert.Equal(t, single.Current, summary.Current, "trial %d player %s", trial, id)
			assert.Equal(t, single.LongestWin, summary.LongestWin, "trial %d player %s", trial, id)
			assert.Equal(t, single.LongestLoss, summary.LongestLoss, "trial %d player %s", trial, id)
		}
	}
}

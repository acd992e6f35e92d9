// Package streaks computes win/loss streak summaries from ordered match
// result feeds. The functions are pure; all state lives on the stack.
package streaks

// run is the in-flight state for the active streak while scanning.
type run struct {
	outcome      Outcome
	length       int
	startMatchID string
	startedAt    int64
	endMatchID   string
	endedAt      int64
}

func (r *run) toRun() Run {
	return Run{
		Length:       r.length,
		Type:         r.outcome,
		StartMatchID: r.startMatchID,
		EndMatchID:   r.endMatchID,
		StartedAt:    r.startedAt,
		EndedAt:      r.endedAt,
	}
}

func outcomeOf(row MatchResult) Outcome {
	if row.IsWin {
		return OutcomeWin
	}
	return OutcomeLoss
}

// Compute scans a single player's chronologically ordered results and returns
// the full streak summary, including every maximal run.
//
// Rows must already be sorted ascending by played_at; the caller's query is
// responsible for the ordering and it is not re-checked here.
func Compute(rows []MatchResult) PlayerStreaks {
	result := PlayerStreaks{History: []Run{}}
	if len(rows) == 0 {
		return result
	}

	var active *run
	closeRun := func() {
		result.History = append(result.History, active.toRun())
		switch active.outcome {
		case OutcomeWin:
			if active.length > result.LongestWin {
				result.LongestWin = active.length
			}
		case OutcomeLoss:
			if active.length > result.LongestLoss {
				result.LongestLoss = active.length
			}
		}
	}

	for _, row := range rows {
		outcome := outcomeOf(row)
		if active != nil && active.outcome == outcome {
			active.length++
			active.endMatchID = row.MatchID
			active.endedAt = row.PlayedAt
			continue
		}
		if active != nil {
			closeRun()
		}
		active = &run{
			outcome:      outcome,
			length:       1,
			startMatchID: row.MatchID,
			startedAt:    row.PlayedAt,
			endMatchID:   row.MatchID,
			endedAt:      row.PlayedAt,
		}
	}
	// The final run never flips, so it is closed out here exactly once.
	closeRun()

	result.Current = signedStreak(active)
	return result
}

// ComputeGroup scans an entire group's result feed, pre-sorted by
// (player_id, played_at) ascending, and returns one summary per player that
// appears in the feed. Players with no rows get no entry; callers must treat
// a missing key as "no streak data".
func ComputeGroup(rows []MatchResult) map[string]Summary {
	summaries := make(map[string]Summary)
	if len(rows) == 0 {
		return summaries
	}

	var (
		playerID    string
		active      *run
		longestWin  int
		longestLoss int
	)

	closeRun := func() {
		switch active.outcome {
		case OutcomeWin:
			if active.length > longestWin {
				longestWin = active.length
			}
		case OutcomeLoss:
			if active.length > longestLoss {
				longestLoss = active.length
			}
		}
	}
	finalizePlayer := func() {
		closeRun()
		summaries[playerID] = Summary{
			Current:     signedStreak(active),
			LongestWin:  longestWin,
			LongestLoss: longestLoss,
		}
		active = nil
		longestWin, longestLoss = 0, 0
	}

	for _, row := range rows {
		if active != nil && row.PlayerID != playerID {
			finalizePlayer()
		}
		playerID = row.PlayerID

		outcome := outcomeOf(row)
		if active != nil && active.outcome == outcome {
			active.length++
			continue
		}
		if active != nil {
			closeRun()
		}
		active = &run{outcome: outcome, length: 1}
	}
	finalizePlayer()

	return summaries
}

// signedStreak collapses the final open run into the signed current-streak
// encoding: positive for wins, negative for losses.
func signedStreak(active *run) int {
	if active == nil {
		return 0
	}
	if active.outcome == OutcomeWin {
		return active.length
	}
	return -active.length
}

// Package synergy scores how well a player pair performs together, from the
// partnership aggregate the club store computes. The score blends win rate,
// the pairing's ELO delta versus solo play, and the share of common
// opponents beaten.
package synergy

// eloDeltaScale normalizes the ELO delta so typical pairings land near
// +/-0.3..0.5 before weighting. Fixed policy, not configurable.
const eloDeltaScale = 100.0

// Score computes the composite synergy score for a partnership. With the
// default weights the score lies in [-0.3, 1.0]; the win-rate term
// contributes [0, 0.5], the ELO term [-0.3, 0.3] and the opponent-quality
// term [0, 0.2].
func Score(p Partnership, w Weights) float64 {
	opponentQuality := 0.0
	if p.MatchesPlayed > 0 {
		opponentQuality = clamp(float64(p.CommonOpponentsBeaten)/float64(p.MatchesPlayed), 0, 1)
	}

	eloDelta := clamp(p.EloChangeDelta/eloDeltaScale, -1, 1)

	return p.WinRate*w.WinRate +
		eloDelta*w.EloDelta +
		opponentQuality*w.OpponentQuality
}

// PartnershipTier buckets a win rate into a display tier. Boundaries are
// inclusive on the lower tier's threshold.
func PartnershipTier(winRate float64) Tier {
	switch {
	case winRate >= 0.7:
		return TierExcellent
	case winRate >= 0.6:
		return TierGood
	case winRate >= 0.5:
		return TierFair
	default:
		return TierPoor
	}
}

// MatchesBadge buckets a pairing's match count into a display badge.
func MatchesBadge(matchesPlayed float64) Badge {
	switch {
	case matchesPlayed >= 10:
		return BadgeEstablished
	case matchesPlayed >= 5:
		return BadgeDeveloping
	default:
		return BadgeNew
	}
}

// EloDeltaIndicator labels an ELO delta; deltas within +/-2 are neutral.
func EloDeltaIndicator(delta float64) Indicator {
	switch {
	case delta > 2:
		return IndicatorPositive
	case delta < -2:
		return IndicatorNegative
	default:
		return IndicatorNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package elo implements the rating math applied after each confirmed
// result. Teams are rated by the average of their players; every player on a
// team receives the same delta.
package elo

import "math"

const (
	// KFactor controls rating volatility per match.
	KFactor = 32.0
	// InitialRating is assigned to players before their first rated match.
	InitialRating = 1200.0
)

// Expected returns the expected score for a rating against an opponent
// rating, in (0, 1).
func Expected(rating, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponent-rating)/400.0))
}

// TeamRating is the average rating of the players on one side.
func TeamRating(ratings ...float64) float64 {
	if len(ratings) == 0 {
		return InitialRating
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// Delta computes the rating change for one side of a match.
func Delta(teamRating, opponentRating float64, won bool) float64 {
	score := 0.0
	if won {
		score = 1.0
	}
	return KFactor * (score - Expected(teamRating, opponentRating))
}

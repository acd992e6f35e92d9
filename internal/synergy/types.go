package synergy

// Partnership is the precomputed aggregate for one player pair, produced by
// the club store's partnership query. The scorer treats it as immutable.
type Partnership struct {
	PlayerAID             string  `json:"player_a_id"`
	PlayerAName           string  `json:"player_a_name"`
	PlayerBID             string  `json:"player_b_id"`
	PlayerBName           string  `json:"player_b_name"`
	MatchesPlayed         int     `json:"matches_played"`
	Wins                  int     `json:"wins"`
	Losses                int     `json:"losses"`
	WinRate               float64 `json:"win_rate"` // in [0, 1]
	AvgEloChangePaired    float64 `json:"avg_elo_change_when_paired"`
	AvgEloChangeSolo      float64 `json:"avg_individual_elo_change"`
	EloChangeDelta        float64 `json:"elo_change_delta"` // paired avg - individual avg
	CommonOpponentsBeaten int     `json:"common_opponents_beaten"`
}

// Weights control the relative contribution of each synergy component.
// Nothing forces them to sum to 1; custom weights may push the score
// outside the default [-0.3, 1.0] envelope.
type Weights struct {
	WinRate         float64 `json:"win_rate_weight"`
	EloDelta        float64 `json:"elo_delta_weight"`
	OpponentQuality float64 `json:"opponent_quality_weight"`
}

// DefaultWeights returns the standard weighting used for display.
func DefaultWeights() Weights {
	return Weights{
		WinRate:         0.5,
		EloDelta:        0.3,
		OpponentQuality: 0.2,
	}
}

// Tier is the categorical partnership quality label used for display.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// Badge labels how established a pairing is, by matches played together.
type Badge string

const (
	BadgeEstablished Badge = "Established"
	BadgeDeveloping  Badge = "Developing"
	BadgeNew         Badge = "New"
)

// Indicator labels the direction of a pairing's ELO delta for display.
type Indicator string

const (
	IndicatorPositive Indicator = "positive"
	IndicatorNegative Indicator = "negative"
	IndicatorNeutral  Indicator = "neutral"
)

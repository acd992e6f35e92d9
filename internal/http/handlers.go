package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/pubsub"
	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
	"github.com/slack-go/slack"
)

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler exposes the persistent counters kept in the metrics store.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get persistent counters", "error", err)
			return
		}
		respondJSON(w, counters)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
		}
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		respondJSON(w, players)
	}
}

// GroupStreaksHandler computes the streak summary for every player in the
// club from a single result feed.
func (s *Server) GroupStreaksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := s.Store.GroupResults()
		if err != nil {
			http.Error(w, "Failed to get results", http.StatusInternalServerError)
			log.Error("Failed to get group results from store", "error", err)
			return
		}
		respondJSON(w, streaks.ComputeGroup(results))
	}
}

// PlayerStreaksHandler returns one player's full streak record, including the
// run history. The player is identified by id or, failing that, fuzzy name.
func (s *Server) PlayerStreaksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			name := r.URL.Query().Get("name")
			if name == "" {
				http.Error(w, "player_id or name is required", http.StatusBadRequest)
				return
			}
			player, err := s.Store.GetPlayerByName(name)
			if err != nil {
				http.Error(w, "Player not found", http.StatusNotFound)
				return
			}
			playerID = player.ID
		}

		results, err := s.Store.PlayerResults(playerID)
		if err != nil {
			http.Error(w, "Failed to get results", http.StatusInternalServerError)
			log.Error("Failed to get player results from store", "error", err, "playerID", playerID)
			return
		}
		respondJSON(w, streaks.Compute(results))
	}
}

// LeaderboardHandler returns a handler that serves the player statistics leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.GetLeaderboard()
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		respondJSON(w, stats)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := club.MatchFilter{
			PlayerID: r.URL.Query().Get("player_id"),
			VenueID:  r.URL.Query().Get("venue_id"),
		}
		if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
			since, err := strconv.ParseInt(sinceStr, 10, 64)
			if err != nil {
				http.Error(w, "Invalid 'since' parameter", http.StatusBadRequest)
				return
			}
			filter.Since = since
		}
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			limit, err := strconv.ParseUint(limitStr, 10, 64)
			if err != nil {
				http.Error(w, "Invalid 'limit' parameter", http.StatusBadRequest)
				return
			}
			filter.Limit = limit
		}

		matches, err := s.Store.ListMatches(filter)
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		respondJSON(w, matches)
	}
}

// scoredPartnership decorates the raw aggregate with the synergy score and
// its display labels.
type scoredPartnership struct {
	synergy.Partnership
	Score     float64           `json:"score"`
	Tier      synergy.Tier      `json:"tier"`
	Badge     synergy.Badge     `json:"badge"`
	Indicator synergy.Indicator `json:"elo_indicator"`
}

func scorePartnership(p synergy.Partnership) scoredPartnership {
	score := synergy.Score(p, synergy.DefaultWeights())
	return scoredPartnership{
		Partnership: p,
		Score:       score,
		Tier:        synergy.PartnershipTier(p.WinRate),
		Badge:       synergy.MatchesBadge(float64(p.MatchesPlayed)),
		Indicator:   synergy.EloDeltaIndicator(p.EloChangeDelta),
	}
}

// PartnershipsHandler lists the club's most played pairs with synergy scores.
func (s *Server) PartnershipsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 {
				http.Error(w, "Invalid 'limit' parameter", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		partnerships, err := s.Store.TopPartnerships(limit)
		if err != nil {
			http.Error(w, "Failed to get partnerships", http.StatusInternalServerError)
			log.Error("Failed to get partnerships from store", "error", err)
			return
		}

		scored := make([]scoredPartnership, 0, len(partnerships))
		for _, p := range partnerships {
			scored = append(scored, scorePartnership(p))
		}
		respondJSON(w, scored)
	}
}

// PartnershipHandler returns the synergy breakdown for one specific pair.
func (s *Server) PartnershipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerA := r.URL.Query().Get("player_a")
		playerB := r.URL.Query().Get("player_b")
		if playerA == "" || playerB == "" {
			http.Error(w, "player_a and player_b are required", http.StatusBadRequest)
			return
		}

		partnership, err := s.Store.GetPartnership(playerA, playerB)
		if err != nil {
			http.Error(w, "Failed to get partnership", http.StatusInternalServerError)
			log.Error("Failed to get partnership from store", "error", err)
			return
		}
		respondJSON(w, scorePartnership(*partnership))
	}
}

func (s *Server) HeadToHeadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerA := r.URL.Query().Get("player_a")
		playerB := r.URL.Query().Get("player_b")
		if playerA == "" || playerB == "" {
			http.Error(w, "player_a and player_b are required", http.StatusBadRequest)
			return
		}

		h, err := s.Store.GetHeadToHead(playerA, playerB)
		if err != nil {
			http.Error(w, "Failed to get head to head", http.StatusInternalServerError)
			log.Error("Failed to get head to head from store", "error", err)
			return
		}
		respondJSON(w, h)
	}
}

func (s *Server) ListVenuesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venues, err := s.Store.ListVenues()
		if err != nil {
			http.Error(w, "Failed to get venues", http.StatusInternalServerError)
			log.Error("Failed to get venues from store", "error", err)
			return
		}
		respondJSON(w, venues)
	}
}

func (s *Server) UpsertPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var player club.PlayerInfo
		if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if player.ID == "" || player.Name == "" {
			http.Error(w, "id and name are required", http.StatusBadRequest)
			return
		}

		if err := s.Store.UpsertPlayer(player); err != nil {
			http.Error(w, "Failed to save player", http.StatusInternalServerError)
			log.Error("Failed to upsert player", "error", err, "playerID", player.ID)
			return
		}
		w.WriteHeader(http.StatusCreated)
		respondJSON(w, player)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var match club.Match
		if err := json.NewDecoder(r.Body).Decode(&match); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if len(match.TeamA) == 0 || len(match.TeamB) == 0 {
			http.Error(w, "team_a and team_b are required", http.StatusBadRequest)
			return
		}
		if match.ID == "" {
			match.ID = uuid.New().String()
		}
		if match.PlayedAt == 0 {
			match.PlayedAt = time.Now().Unix()
		}
		if match.CreatedAt == 0 {
			match.CreatedAt = time.Now().Unix()
		}

		if err := s.Store.UpsertMatch(&match); err != nil {
			http.Error(w, "Failed to save match", http.StatusInternalServerError)
			log.Error("Failed to upsert match", "error", err, "matchID", match.ID)
			return
		}
		w.WriteHeader(http.StatusCreated)
		respondJSON(w, match)
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MatchID string    `json:"match_id"`
			Winner  club.Team `json:"winner"`
			Score   string    `json:"score"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if body.MatchID == "" {
			http.Error(w, "match_id is required", http.StatusBadRequest)
			return
		}

		if err := s.Store.RecordResult(body.MatchID, body.Winner, body.Score); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to record result", "error", err, "matchID", body.MatchID)
			return
		}
		s.Metrics.IncResultsRecorded()
		s.MetricsStore.Increment("results_recorded")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Result recorded.")
	}
}

func (s *Server) CreateInviteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			InviterID string `json:"inviter_id"`
			Invitee   string `json:"invitee"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if body.InviterID == "" || body.Invitee == "" {
			http.Error(w, "inviter_id and invitee are required", http.StatusBadRequest)
			return
		}

		inviteID, err := s.Store.CreateInvite(body.InviterID, body.Invitee)
		if err != nil {
			http.Error(w, "Failed to create invite", http.StatusInternalServerError)
			log.Error("Failed to create invite", "error", err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		respondJSON(w, map[string]string{"invite_id": inviteID})
	}
}

func (s *Server) SetAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MatchID  string                `json:"match_id"`
			PlayerID string                `json:"player_id"`
			Status   club.AttendanceStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		switch body.Status {
		case club.AttendanceIn, club.AttendanceOut, club.AttendanceMaybe:
		default:
			http.Error(w, "status must be IN, OUT or MAYBE", http.StatusBadRequest)
			return
		}

		if err := s.Store.SetAttendance(body.MatchID, body.PlayerID, body.Status); err != nil {
			http.Error(w, "Failed to set attendance", http.StatusInternalServerError)
			log.Error("Failed to set attendance", "error", err, "matchID", body.MatchID)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Attendance recorded.")
	}
}

func (s *Server) UpsertVenueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var venue club.Venue
		if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if venue.ID == "" || venue.Name == "" {
			http.Error(w, "id and name are required", http.StatusBadRequest)
			return
		}

		if err := s.Store.UpsertVenue(venue); err != nil {
			http.Error(w, "Failed to save venue", http.StatusInternalServerError)
			log.Error("Failed to upsert venue", "error", err, "venueID", venue.ID)
			return
		}
		w.WriteHeader(http.StatusCreated)
		respondJSON(w, venue)
	}
}

func (s *Server) RateVenueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			VenueID  string `json:"venue_id"`
			PlayerID string `json:"player_id"`
			Rating   int    `json:"rating"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Store.RateVenue(body.VenueID, body.PlayerID, body.Rating); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Rating recorded.")
	}
}

func (s *Server) SyncMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match sync...")
		synced, err := s.Syncer.Sync()
		if err != nil {
			http.Error(w, "Failed to sync matches", http.StatusInternalServerError)
			log.Error("Failed to sync matches", "error", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Synced %d matches.\n", synced)
	}
}

func (s *Server) ProcessMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessMatches(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Match processing completed.")
	}
}

// StreakEventHandler is the push endpoint for the streak milestone topic. The
// payload arrives base64-wrapped in the standard pubsub envelope.
func (s *Server) StreakEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received streak event message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.StreakEvent
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		name := event.PlayerID
		if player, err := s.Store.GetPlayer(event.PlayerID); err == nil {
			name = player.Name
		}
		if err := s.Notifier.SendStreakMilestone(name, event.Streak, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to send streak milestone", http.StatusInternalServerError)
			log.Error("Failed to send streak milestone", "error", err, "playerID", event.PlayerID)
			return
		}
		w.Write([]byte("OK"))
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.GetLeaderboard()
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(stats)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// StreaksCommandHandler returns a handler for the /streaks Slack command.
func (s *Server) StreaksCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := r.FormValue("text")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received streaks command", "player", playerName)

		var msg any
		player, err := s.Store.GetPlayerByName(playerName)
		if err != nil {
			log.Warn("Could not find player", "player", playerName, "error", err)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			var results []streaks.MatchResult
			results, err = s.Store.PlayerResults(player.ID)
			if err == nil {
				msg, err = s.Notifier.FormatStreaksResponse(player.Name, streaks.Compute(results))
			}
		}
		if err != nil {
			http.Error(w, "Failed to format streaks", http.StatusInternalServerError)
			log.Error("Failed to format streaks", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// PartnershipsCommandHandler returns a handler for the /partnerships Slack command.
func (s *Server) PartnershipsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partnerships, err := s.Store.TopPartnerships(10)
		if err != nil {
			http.Error(w, "Failed to get partnerships", http.StatusInternalServerError)
			log.Error("Failed to get partnerships from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatPartnershipsResponse(partnerships)
		if err != nil {
			http.Error(w, "Failed to format partnerships", http.StatusInternalServerError)
			log.Error("Failed to format partnerships", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

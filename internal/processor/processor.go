package processor

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/metrics"
	"github.com/mbakke/courtside/internal/pubsub"
	"github.com/mbakke/courtside/internal/streaks"
)

// streakMilestone is the minimum run length, win or loss, that earns a
// dedicated callout.
const streakMilestone = 3

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessMatches fetches matches that need processing and advances them through the state machine.
func (p *Processor) ProcessMatches(dryRun bool) {
	log.Info("Starting match processing...")
	matches, err := p.store.GetMatchesForProcessing()
	if err != nil {
		log.Error("Failed to get matches for processing", "error", err)
		return
	}

	if len(matches) == 0 {
		log.Info("No matches to process.")
		return
	}

	log.Info("Found matches to process", "count", len(matches))
	for _, match := range matches {
		startTime := time.Now()
		p.processMatch(match, dryRun)
		duration := time.Since(startTime).Seconds()
		p.metrics.ObserveProcessingDuration(duration)
	}
	log.Info("Match processing finished.")
}

func (p *Processor) processMatch(match *club.Match, dryRun bool) {
	log.Info("Processing match", "matchID", match.ID, "initial_status", match.ProcessingStatus)
	for {
		currentState := match.ProcessingStatus
		log.Debug("Evaluating match state", "matchID", match.ID, "status", currentState)

		switch currentState {
		case club.StatusResultRecorded:
			if dryRun {
				log.Info("[Dry Run] Would apply ratings", "matchID", match.ID)
			} else if err := p.store.ApplyRatings(match.ID); err != nil {
				log.Error("Failed to apply ratings", "error", err, "matchID", match.ID)
				return
			}
			if !dryRun {
				p.pubsub.SendMessage(pubsub.EventNotifyResult, pubsub.ResultEvent{MatchID: match.ID})
			}
			p.updateStatus(match, club.StatusRated, dryRun)

		case club.StatusRated:
			names := p.playerNames(match)
			if err := p.notifier.SendResultNotification(match, names, dryRun); err != nil {
				log.Error("Failed to send result notification", "error", err, "matchID", match.ID)
			}
			p.announceStreaks(match, names, dryRun)
			p.updateStatus(match, club.StatusNotified, dryRun)

		case club.StatusNotified:
			p.metrics.IncMatchesProcessed()
			p.updateStatus(match, club.StatusCompleted, dryRun)

		case club.StatusCompleted:
			log.Debug("Match is complete. No further processing needed.", "matchID", match.ID)
			return // End of the line for this match

		default:
			log.Warn("Unknown processing status", "status", currentState, "matchID", match.ID)
			return // Exit if status is unknown
		}

		// If the status hasn't changed, we're done with this match for now.
		if match.ProcessingStatus == currentState {
			log.Debug("Match state did not change. Finished processing for now.", "matchID", match.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing match", "matchID", match.ID, "final_status", match.ProcessingStatus)
}

// announceStreaks checks every participant's current streak and sends a
// milestone callout for runs of streakMilestone or longer.
func (p *Processor) announceStreaks(match *club.Match, names map[string]string, dryRun bool) {
	for _, playerID := range append(append([]string{}, match.TeamA...), match.TeamB...) {
		results, err := p.store.PlayerResults(playerID)
		if err != nil {
			log.Error("Failed to load player results for streak check", "error", err, "playerID", playerID)
			continue
		}

		current := streaks.Compute(results).Current
		if current < streakMilestone && current > -streakMilestone {
			continue
		}

		name := names[playerID]
		if name == "" {
			name = playerID
		}
		if err := p.notifier.SendStreakMilestone(name, current, dryRun); err != nil {
			log.Error("Failed to send streak milestone", "error", err, "playerID", playerID)
			continue
		}
		if !dryRun {
			p.pubsub.SendMessage(pubsub.EventNotifyStreak, pubsub.StreakEvent{PlayerID: playerID, Streak: current})
		}
	}
}

// playerNames resolves the display names for all participants of a match.
func (p *Processor) playerNames(match *club.Match) map[string]string {
	names := make(map[string]string)
	for _, playerID := range append(append([]string{}, match.TeamA...), match.TeamB...) {
		player, err := p.store.GetPlayer(playerID)
		if err != nil {
			log.Warn("Failed to resolve player name", "error", err, "playerID", playerID)
			continue
		}
		names[playerID] = player.Name
	}
	return names
}

func (p *Processor) updateStatus(match *club.Match, newStatus club.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update match status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(match.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "matchID", match.ID)
	} else {
		log.Debug("Successfully updated status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}

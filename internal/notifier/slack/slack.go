package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/metrics"
	"github.com/mbakke/courtside/internal/notifier"
	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendResultNotification(match *club.Match, names map[string]string, dryRun bool) error {
	msg := s.formatResultNotification(match, names)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStreakMilestone(playerName string, streak int, dryRun bool) error {
	msg := s.formatStreakMilestone(playerName, streak)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(stats []club.PlayerStats, dryRun bool) error {
	msg := s.formatLeaderboard(stats)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerStreaks(playerName string, ps streaks.PlayerStreaks, dryRun bool) error {
	msg := s.formatPlayerStreaks(playerName, ps)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerNotFound(query string, dryRun bool) error {
	msg := s.formatPlayerNotFound(query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(stats []club.PlayerStats) (any, error) {
	return s.formatLeaderboard(stats), nil
}

// FormatStreaksResponse formats a player's streaks for a slash command response.
func (s *Notifier) FormatStreaksResponse(playerName string, ps streaks.PlayerStreaks) (any, error) {
	return s.formatPlayerStreaks(playerName, ps), nil
}

// FormatPartnershipsResponse formats the top partnerships for a slash command response.
func (s *Notifier) FormatPartnershipsResponse(partnerships []synergy.Partnership) (any, error) {
	return s.formatPartnerships(partnerships), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatResultNotification(match *club.Match, names map[string]string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match finished! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	loc, err := time.LoadLocation("Europe/Copenhagen")
	var timeStr string
	if err == nil {
		timeStr = time.Unix(match.PlayedAt, 0).In(loc).Format("Monday 02 Jan, 15:04")
	} else {
		timeStr = time.Unix(match.PlayedAt, 0).Format("Monday 02 Jan, 15:04")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", timeStr, false, false), nil, nil))

	teamName := func(ids []string) string {
		resolved := make([]string, 0, len(ids))
		for _, id := range ids {
			if name, ok := names[id]; ok && name != "" {
				resolved = append(resolved, name)
			} else {
				resolved = append(resolved, id)
			}
		}
		return strings.Join(resolved, " & ")
	}

	winners, losers := teamName(match.TeamA), teamName(match.TeamB)
	if match.Winner == club.TeamB {
		winners, losers = losers, winners
	}

	resultText := fmt.Sprintf("Result: %s won! 🏆", winners)
	if match.Score != "" {
		resultText += fmt.Sprintf("\n%s over %s (%s)", winners, losers, match.Score)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStreakMilestone creates a short callout for a hot or cold streak.
func (s *Notifier) formatStreakMilestone(playerName string, streak int) slack.Message {
	var text string
	if streak > 0 {
		text = fmt.Sprintf("🔥 %s is on a %d match winning streak!", playerName, streak)
	} else {
		text = fmt.Sprintf("🧊 %s has lost %d in a row. Time to turn it around!", playerName, -streak)
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(stats []club.PlayerStats) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, stat := range stats {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Match Win %%: %.2f%% (%d/%d) | Rating: %.0f",
			rank,
			medal,
			stat.PlayerName,
			stat.WinPercentage,
			stat.MatchesWon,
			stat.MatchesPlayed,
			stat.Rating,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStreaks creates a Slack message to display a single player's streaks.
func (s *Notifier) formatPlayerStreaks(playerName string, ps streaks.PlayerStreaks) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("📈 Streaks for %s 📈", playerName)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	var currentText string
	switch {
	case ps.Current > 0:
		currentText = fmt.Sprintf("🔥 Currently on a %d match winning streak", ps.Current)
	case ps.Current < 0:
		currentText = fmt.Sprintf("🧊 Currently on a %d match losing streak", -ps.Current)
	default:
		currentText = "No matches played yet"
	}

	statsText := fmt.Sprintf("%s\n> *Longest win streak*: %d\n> *Longest loss streak*: %d",
		currentText,
		ps.LongestWin,
		ps.LongestLoss,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", statsText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPartnerships creates a Slack message ranking the club's partnerships
// by synergy score.
func (s *Notifier) formatPartnerships(partnerships []synergy.Partnership) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🤝 Top Partnerships 🤝", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(partnerships) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No partnerships yet. Go play some doubles!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	weights := synergy.DefaultWeights()
	for i, p := range partnerships {
		score := synergy.Score(p, weights)
		line := fmt.Sprintf("%d. %s & %s %s\n> Score: %.2f | Win %%: %.0f%% (%d/%d) %s %s",
			i+1,
			p.PlayerAName,
			p.PlayerBName,
			synergy.PartnershipTier(p.WinRate),
			score,
			p.WinRate*100,
			p.Wins,
			p.MatchesPlayed,
			synergy.MatchesBadge(float64(p.MatchesPlayed)),
			synergy.EloDeltaIndicator(p.EloChangeDelta),
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", line, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

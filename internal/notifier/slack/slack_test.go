package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/metrics"
	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendResultNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	match := &club.Match{
		ID:       "m1",
		PlayedAt: time.Now().Unix(),
		TeamA:    []string{"p1", "p2"},
		TeamB:    []string{"p3", "p4"},
		Winner:   club.TeamA,
		Score:    "6-4 6-4",
	}

	err := notifier.SendResultNotification(match, map[string]string{"p1": "Anna"}, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendResultNotification")
}

func TestFormatResultNotification(t *testing.T) {
	match := &club.Match{
		ID:       "m1",
		PlayedAt: time.Date(2025, 7, 9, 20, 0, 0, 0, time.Local).Unix(),
		TeamA:    []string{"p1", "p2"},
		TeamB:    []string{"p3", "p4"},
		Winner:   club.TeamB,
		Score:    "6-3 6-2",
	}
	names := map[string]string{"p1": "Anna", "p2": "Bo", "p3": "Carl", "p4": "Dina"}

	client := &Notifier{channelID: "C123"}
	msg := client.formatResultNotification(match, names)
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Match finished")

	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, result.Text.Text, "Carl & Dina won!")
	assert.Contains(t, result.Text.Text, "6-3 6-2")
	assert.Contains(t, result.Text.Text, "over Anna & Bo")
}

func TestFormatStreakMilestone(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	hot := client.formatStreakMilestone("Anna", 5)
	require.Len(t, hot.Blocks.BlockSet, 1)
	section, ok := hot.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "5 match winning streak")

	cold := client.formatStreakMilestone("Bo", -3)
	section, ok = cold.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "lost 3 in a row")
}

func TestFormatLeaderboard(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("empty leaderboard", func(t *testing.T) {
		msg := client.formatLeaderboard(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "No stats available")
	})

	t.Run("ranks with medals", func(t *testing.T) {
		stats := []club.PlayerStats{
			{PlayerName: "Anna", MatchesPlayed: 10, MatchesWon: 8, WinPercentage: 80, Rating: 1250},
			{PlayerName: "Bo", MatchesPlayed: 10, MatchesWon: 5, WinPercentage: 50, Rating: 1200},
		}
		msg := client.formatLeaderboard(stats)
		require.Len(t, msg.Blocks.BlockSet, 3)

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, first.Text.Text, "🥇")
		assert.Contains(t, first.Text.Text, "Anna")
		assert.Contains(t, first.Text.Text, "80.00%")
		assert.Contains(t, first.Text.Text, "1250")
	})
}

func TestFormatPlayerStreaks(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	msg := client.formatPlayerStreaks("Anna", streaks.PlayerStreaks{
		Current:     4,
		LongestWin:  6,
		LongestLoss: 2,
	})
	require.Len(t, msg.Blocks.BlockSet, 2)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "4 match winning streak")
	assert.Contains(t, section.Text.Text, "*Longest win streak*: 6")
	assert.Contains(t, section.Text.Text, "*Longest loss streak*: 2")
}

func TestFormatPartnerships(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("empty", func(t *testing.T) {
		msg := client.formatPartnerships(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
	})

	t.Run("scored pairs", func(t *testing.T) {
		partnerships := []synergy.Partnership{
			{
				PlayerAName:           "Anna",
				PlayerBName:           "Bo",
				MatchesPlayed:         12,
				Wins:                  9,
				Losses:                3,
				WinRate:               0.75,
				CommonOpponentsBeaten: 6,
			},
		}
		msg := client.formatPartnerships(partnerships)
		require.Len(t, msg.Blocks.BlockSet, 2)

		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "Anna & Bo")
		assert.Contains(t, section.Text.Text, string(synergy.TierExcellent))
		assert.Contains(t, section.Text.Text, "75% (9/12)")
	})
}

func TestFormatPlayerNotFound(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatPlayerNotFound("zelda")
	require.Len(t, msg.Blocks.BlockSet, 1)

	section, ok := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "zelda")
}

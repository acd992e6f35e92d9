package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(streaksCmd)
	rootCmd.AddCommand(partnershipsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)

	processCmd.Flags().Bool("dry-run", false, "Log what would happen without writing anything")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a sync of matches from Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/sync")
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the match processing pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/process"
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			endpoint += "?dry_run=true"
		}
		return performGetRequest(endpoint)
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members in the club store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the club leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var streaksCmd = &cobra.Command{
	Use:   "streaks [player name]",
	Short: "Show streaks for the whole club, or one player",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return performGetRequest("/members/streaks")
		}
		return performGetRequest("/player/streaks?name=" + url.QueryEscape(args[0]))
	},
}

var partnershipsCmd = &cobra.Command{
	Use:   "partnerships",
	Short: "Show the top partnerships with synergy scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/partnerships")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get persistent application counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

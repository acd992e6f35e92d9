package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	id   string
	name string
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	players := []seedPlayer{
		{id: "player-1", name: "Seeder Player A"},
		{id: "player-2", name: "Seeder Player B"},
		{id: "player-3", name: "Seeder Player C"},
		{id: "player-4", name: "Seeder Player D"},
	}
	for _, p := range players {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, level) VALUES (?, ?, ?)", p.id, p.name, 4.0)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	_, err = db.Exec("INSERT OR IGNORE INTO venues (id, name, city) VALUES (?, ?, ?)", "venue-1", "Seeded Padel Hall", "Copenhagen")
	if err != nil {
		log.Fatalf("Failed to insert dummy venue: %s", err)
	}

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	matchValues := make([]string, 0, batchSize)
	matchArgs := make([]interface{}, 0, batchSize*10)
	playerValues := make([]string, 0, batchSize*4)
	playerArgs := make([]interface{}, 0, batchSize*12)

	flush := func(completed int) {
		matchStmt := fmt.Sprintf(`
			INSERT INTO matches (id, venue_id, owner_id, played_at, created_at,
				team_a_json, team_b_json, winner_team, score, processing_status)
			VALUES %s;`, strings.Join(matchValues, ","))
		if _, err := tx.Exec(matchStmt, matchArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute match batch insert: %s", err)
		}

		playerStmt := fmt.Sprintf(`
			INSERT INTO match_players (match_id, player_id, team)
			VALUES %s;`, strings.Join(playerValues, ","))
		if _, err := tx.Exec(playerStmt, playerArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute match_players batch insert: %s", err)
		}

		matchValues = matchValues[:0]
		matchArgs = matchArgs[:0]
		playerValues = playerValues[:0]
		playerArgs = playerArgs[:0]
		log.Info("Inserted batch", "completed", completed, "total", numMatches)
	}

	for i := 0; i < numMatches; i++ {
		matchID := uuid.NewString()
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		winner := "A"
		if rand.Intn(2) == 1 {
			winner = "B"
		}

		matchValues = append(matchValues, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		matchArgs = append(matchArgs,
			matchID,
			"venue-1",
			players[0].id,
			matchTime.Unix(),
			matchTime.Add(-24*time.Hour).Unix(),
			fmt.Sprintf(`["%s","%s"]`, players[0].id, players[1].id),
			fmt.Sprintf(`["%s","%s"]`, players[2].id, players[3].id),
			winner,
			"6-4 6-4",
			"COMPLETED",
		)
		for idx, p := range players {
			team := "A"
			if idx >= 2 {
				team = "B"
			}
			playerValues = append(playerValues, "(?, ?, ?)")
			playerArgs = append(playerArgs, matchID, p.id, team)
		}

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			flush(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}

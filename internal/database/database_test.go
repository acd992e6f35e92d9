package database_test

import (
	"testing"

	"github.com/mbakke/courtside/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBCreatesSchema(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	for _, table := range []string{"players", "venues", "matches", "match_players", "rating_history", "invites", "attendance", "venue_ratings", "metrics"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestInitDBRatingDefault(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO players (id, name) VALUES ('p1', 'Player One')")
	require.NoError(t, err)

	var rating float64
	require.NoError(t, db.QueryRow("SELECT rating FROM players WHERE id = 'p1'").Scan(&rating))
	assert.Equal(t, 1200.0, rating)
}

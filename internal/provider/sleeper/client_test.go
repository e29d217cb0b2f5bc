package sleeper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 60000, nil)
}

func TestState(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/state/nfl": `{"week":9,"leg":9,"season":"2025","season_type":"regular"}`,
	})

	st, err := c.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, st.Week)
	assert.Equal(t, "2025", st.Season)
}

func TestLeague(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/league/123": `{"league_id":"123","name":"Hangover Sundays","season":"2025","status":"in_season","total_rosters":10,"settings":{"playoff_week_start":15}}`,
		"/league/999": `null`,
	})

	l, err := c.League(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "Hangover Sundays", l.Name)
	assert.Equal(t, 15, l.PlayoffWeekStart)
	assert.Equal(t, 14, l.RegularSeasonEnd())
	assert.NotEmpty(t, l.Raw)

	_, err = c.League(context.Background(), "999")
	assert.ErrorContains(t, err, "not found")
}

func TestUsers(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/league/123/users": `[
			{"user_id":"u1","display_name":"alice","metadata":{"team_name":"Alice's Aces"}},
			{"user_id":"u2","display_name":"bob","metadata":null},
			{"user_id":"","display_name":"ghost"}
		]`,
	})

	users, err := c.Users(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice's Aces", users[0].Name())
	assert.Equal(t, "bob", users[1].Name())
}

func TestRosters(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/league/123/rosters": `[
			{"roster_id":2,"owner_id":"u2","players":["4046"],"settings":{"wins":3,"losses":5,"ties":0,"fpts":901,"fpts_decimal":25}},
			{"roster_id":1,"owner_id":null,"players":[],"settings":{}}
		]`,
	})

	rosters, err := c.Rosters(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, rosters, 2)
	assert.Equal(t, 1, rosters[0].ID)
	assert.Equal(t, "", rosters[0].OwnerID)
	assert.Equal(t, "u2", rosters[1].OwnerID)
	assert.Equal(t, 3, rosters[1].Wins)
	assert.InDelta(t, 901.25, rosters[1].PointsFor, 1e-9)
}

func TestMatchups(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/league/123/matchups/4": `[
			{"roster_id":1,"matchup_id":1,"points":112.4,"custom_points":null,"starters":["4046"],"players_points":{"4046":22.1}},
			{"roster_id":2,"matchup_id":1,"points":98.6,"custom_points":101.0},
			{"roster_id":3,"matchup_id":null,"points":0}
		]`,
	})

	rows, err := c.Matchups(context.Background(), "123", 4)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 4, rows[0].Week)
	require.NotNil(t, rows[0].MatchupID)
	assert.Equal(t, 1, *rows[0].MatchupID)
	assert.InDelta(t, 112.4, rows[0].Points, 1e-9)
	assert.InDelta(t, 22.1, rows[0].PlayersPoints["4046"], 1e-9)
	assert.InDelta(t, 101.0, rows[1].Points, 1e-9)
	assert.Nil(t, rows[2].MatchupID)

	_, err = c.Matchups(context.Background(), "123", 0)
	assert.Error(t, err)
}

func TestPlayers(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/players/nfl": `{
			"4046":{"full_name":"Patrick Mahomes","team":"KC","position":"QB"},
			"DEN":{"first_name":"Denver","last_name":"Broncos","team":"DEN","position":"DEF"}
		}`,
	})

	players, err := c.Players(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "4046", players[0].ID)
	assert.Equal(t, "Patrick Mahomes", players[0].FullName)
	assert.Equal(t, "Denver Broncos", players[1].FullName)
	assert.Equal(t, "DEF", players[1].Position)
}

func TestGet_NonOKStatus(t *testing.T) {
	c := newTestClient(t, nil)

	_, err := c.State(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 404")
}

func TestGet_ContextCancelled(t *testing.T) {
	c := newTestClient(t, map[string]string{"/state/nfl": `{}`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.State(ctx)
	assert.Error(t, err)
}

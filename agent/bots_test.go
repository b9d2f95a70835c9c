package agent

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/sethillgard/resistance/game"
)

func testRoster() []game.Player {
	return []game.Player{
		{Index: 0, Name: "a"},
		{Index: 1, Name: "b"},
		{Index: 2, Name: "c"},
		{Index: 3, Name: "d"},
		{Index: 4, Name: "e"},
	}
}

func TestFind(t *testing.T) {
	for _, name := range []string{"random", "hippie", "paranoid", "tracker"} {
		f, err := Find(name)
		require.NoError(t, err)
		require.Equal(t, name, f.Name)
		require.NotNil(t, f.New)
	}

	_, err := Find("nonexistent")
	require.Error(t, err)
}

func TestPickHelpers(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	roster := testRoster()
	self := roster[3]

	for i := 0; i < 50; i++ {
		team := pickWithSelf(rng, roster, 3, self)
		require.Len(t, team, 3)
		require.True(t, game.Contains(team, self), "leaders put themselves on the team")
		seen := map[int]bool{}
		for _, p := range team {
			require.False(t, seen[p.Index], "no duplicates")
			seen[p.Index] = true
		}
	}
}

func TestHippie(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := NewHippie(testRoster()[0], true, rng)

	require.True(t, h.Vote(testRoster()[:2]), "hippies approve everything")
	require.True(t, h.Sabotage(), "hippie spies always sabotage")
}

func TestParanoid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	roster := testRoster()
	p := NewParanoid(roster[2], false, rng)

	p.OnMissionAttempt(1, 1, roster[0])
	require.False(t, p.Vote(roster[:2]), "someone else's team is never trusted")

	p.OnMissionAttempt(1, 2, roster[2])
	require.True(t, p.Vote(roster[:2]), "its own team is the only exception")
}

func TestTracker(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	roster := testRoster()

	t.Run("resistance distrusts a sabotaged team", func(t *testing.T) {
		tr := NewTracker(roster[0], false, rng).(*Tracker)
		tr.OnGameRevealed(roster, nil)
		tr.OnMissionAttempt(1, 1, roster[1])
		team := []game.Player{roster[1], roster[2]}
		tr.OnTeamSelected(roster[1], team)

		// Both members sabotaged: they stand revealed as spies.
		tr.OnMissionComplete(2)

		tr.OnMissionAttempt(2, 1, roster[3])
		require.False(t, tr.Vote(team), "a known-spy team is rejected")
		require.True(t, tr.Vote([]game.Player{roster[3], roster[4]}),
			"an unsuspicious team is approved")
	})

	t.Run("resistance never rejects the final attempt", func(t *testing.T) {
		tr := NewTracker(roster[0], false, rng).(*Tracker)
		tr.OnGameRevealed(roster, nil)
		team := []game.Player{roster[1], roster[2]}
		tr.OnTeamSelected(roster[1], team)
		tr.OnMissionComplete(2)

		tr.OnMissionAttempt(2, game.MaxAttempts, roster[3])
		require.True(t, tr.Vote(team), "rejecting attempt five concedes the game")
	})

	t.Run("lone spy on a team sabotages", func(t *testing.T) {
		spies := []game.Player{roster[1], roster[3]}
		tr := NewTracker(roster[1], true, rng).(*Tracker)
		tr.OnGameRevealed(roster, spies)
		tr.OnTeamSelected(roster[0], []game.Player{roster[1], roster[2]})

		require.True(t, tr.Sabotage())
	})

	t.Run("two spies on a team: only the lowest index sabotages", func(t *testing.T) {
		spies := []game.Player{roster[1], roster[3]}
		team := []game.Player{roster[1], roster[2], roster[3]}

		low := NewTracker(roster[1], true, rng).(*Tracker)
		low.OnGameRevealed(roster, spies)
		low.OnTeamSelected(roster[0], team)
		require.True(t, low.Sabotage())

		high := NewTracker(roster[3], true, rng).(*Tracker)
		high.OnGameRevealed(roster, spies)
		high.OnTeamSelected(roster[0], team)
		require.False(t, high.Sabotage())
	})

	t.Run("spy votes for teams carrying a spy", func(t *testing.T) {
		spies := []game.Player{roster[1], roster[3]}
		tr := NewTracker(roster[1], true, rng).(*Tracker)
		tr.OnGameRevealed(roster, spies)
		tr.OnMissionAttempt(1, 1, roster[0])

		require.True(t, tr.Vote([]game.Player{roster[3], roster[4]}))
		require.False(t, tr.Vote([]game.Player{roster[0], roster[4]}))
	})

	t.Run("team proposals include self and exact count", func(t *testing.T) {
		tr := NewTracker(roster[2], false, rng).(*Tracker)
		tr.OnGameRevealed(roster, nil)

		team := tr.SelectTeam(roster, 3)
		require.Len(t, team, 3)
		require.True(t, game.Contains(team, roster[2]))
	})
}

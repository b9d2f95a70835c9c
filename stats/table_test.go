package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sethillgard/resistance/game"
)

func TestTableFold(t *testing.T) {
	players := []game.Player{
		{Index: 0, Name: "alice"},
		{Index: 1, Name: "bob"},
		{Index: 2, Name: "carol"},
		{Index: 3, Name: "dave"},
		{Index: 4, Name: "erin"},
	}
	roles := []game.Role{
		game.Resistance, game.Spy, game.Resistance, game.Spy, game.Resistance,
	}

	outcome := game.Outcome{
		Winner: game.Spy,
		Spies:  []game.Player{players[1], players[3]},
		Faults: []int{0, 2, 0, 0, 0},
		Attempts: []game.Attempt{
			{
				// Resistance leader proposes a team carrying spy bob.
				Mission: 1, Try: 1,
				Leader:   players[0],
				Team:     []game.Player{players[0], players[1]},
				Votes:    []bool{true, true, false, false, true},
				Approved: true,
				Sabotage: 1,
			},
			{
				// Spy leader proposes a spy-free team; rejected.
				Mission: 2, Try: 1,
				Leader:   players[1],
				Team:     []game.Player{players[0], players[2]},
				Votes:    []bool{true, false, true, false, false},
				Approved: false,
				Sabotage: game.NotExecuted,
			},
		},
	}

	table := NewTable()
	table.Fold(players, roles, outcome)

	alice := table.record("alice")
	bob := table.record("bob")
	carol := table.record("carol")
	dave := table.record("dave")
	erin := table.record("erin")

	t.Run("win rates by role", func(t *testing.T) {
		require.Equal(t, 0.0, alice.ResistanceWins.Estimate(), "spies won this one")
		require.Equal(t, 1, alice.ResistanceWins.Count())
		require.Equal(t, 1.0, bob.SpyWins.Estimate())
		require.Equal(t, 1.0, dave.SpyWins.Estimate())
		require.Equal(t, 0, bob.ResistanceWins.Count(), "spies never sample resistance wins")
		require.Equal(t, 1.0, bob.Total.Estimate())
		require.Equal(t, 0.0, erin.Total.Estimate())
	})

	t.Run("vote correctness on a spied team", func(t *testing.T) {
		// Attempt 1 carried a spy: resistance should have rejected.
		require.Equal(t, 0.0, alice.VotesSpy.Estimate(), "alice approved a spied team")
		require.Equal(t, 1.0, carol.VotesSpy.Estimate(), "carol rejected it")
		require.Equal(t, 1, alice.VotesSpy.Count())
	})

	t.Run("vote correctness on a clean team", func(t *testing.T) {
		// Attempt 2 was spy-free: resistance should have approved.
		require.Equal(t, 1.0, alice.VotesRes.Estimate())
		require.Equal(t, 1.0, carol.VotesRes.Estimate())
		require.Equal(t, 0.0, erin.VotesRes.Estimate(), "erin rejected a clean team")
	})

	t.Run("spy exposure", func(t *testing.T) {
		// Bob was on the attempt-1 team; resistance votes were T, F, T.
		require.InDelta(t, 2.0/3.0, bob.SpyVoted.Estimate(), 1e-9)
		require.Equal(t, 3, bob.SpyVoted.Count())
		require.Equal(t, 0, dave.SpyVoted.Count(), "dave was never on a team")
	})

	t.Run("selection quality, resistance leaders only", func(t *testing.T) {
		require.Equal(t, 0.0, alice.Selections.Estimate(), "alice picked a spy")
		require.Equal(t, 1, alice.Selections.Count())
		require.Equal(t, 0, bob.Selections.Count(), "spy-led proposals are not scored")

		require.Equal(t, 1.0, bob.SpySelected.Estimate())
		require.Equal(t, 0.0, dave.SpySelected.Estimate())
		require.Equal(t, 1, bob.SpySelected.Count(), "only the resistance-led attempt counts")
	})

	t.Run("faults accumulate per name", func(t *testing.T) {
		require.Equal(t, 2, bob.Faults)
		require.Equal(t, 0, alice.Faults)
	})
}

func TestTableSameNameSeatsShareRecord(t *testing.T) {
	// Sampling with replacement can seat one bot type twice; both seats fold
	// into the same record.
	players := []game.Player{
		{Index: 0, Name: "dup"},
		{Index: 1, Name: "dup"},
		{Index: 2, Name: "other"},
		{Index: 3, Name: "other"},
		{Index: 4, Name: "other"},
	}
	roles := []game.Role{game.Spy, game.Resistance, game.Resistance, game.Spy, game.Resistance}
	outcome := game.Outcome{Winner: game.Resistance, Faults: make([]int, 5)}

	table := NewTable()
	table.Fold(players, roles, outcome)

	require.Equal(t, 2, table.Len())
	dup := table.record("dup")
	require.Equal(t, 1, dup.SpyWins.Count(), "seat 0 folded as spy")
	require.Equal(t, 1, dup.ResistanceWins.Count(), "seat 1 folded as resistance")
	require.Equal(t, 2, dup.Total.Count())
}

func TestTableRanked(t *testing.T) {
	table := NewTable()
	table.record("low").Total.Sample(0)
	table.record("high").Total.Sample(1)
	table.record("alpha").Total.Sample(0.5)
	table.record("beta").Total.Sample(0.5)

	ranked := table.Ranked(ByTotal)

	require.Equal(t, []string{"high", "alpha", "beta", "low"}, names(ranked),
		"descending by estimate, ties broken by name")
}

func names(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

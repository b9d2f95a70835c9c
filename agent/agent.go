package agent

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/sethillgard/resistance/game"
)

// Agent is the capability set every bot implements. The engine invokes the
// callbacks one at a time, in a fixed order; an agent never observes another
// agent's decision for the same round before committing its own.
//
// Decision callbacks (SelectTeam, Vote, Sabotage) return values the engine
// validates before applying. Notification callbacks (OnX) exist so bots can
// track public history; their return is void and the engine ignores any
// state they keep.
type Agent interface {
	// OnGameRevealed announces the roster. spies is empty unless the agent
	// itself is a spy, in which case it lists every spy including self.
	OnGameRevealed(players []game.Player, spies []game.Player)
	// OnMissionAttempt starts a new proposal round.
	OnMissionAttempt(mission, attempt int, leader game.Player)
	// SelectTeam is called only when the agent is the current leader. It must
	// return exactly count distinct players drawn from players.
	SelectTeam(players []game.Player, count int) []game.Player
	// OnTeamSelected announces the leader's proposal, before voting.
	OnTeamSelected(leader game.Player, team []game.Player)
	// Vote approves or rejects the proposed team.
	Vote(team []game.Player) bool
	// OnVoteComplete reveals the full tally, in roster order.
	OnVoteComplete(votes []bool)
	// Sabotage is asked only of spies on an approved team.
	Sabotage() bool
	// OnMissionComplete reveals how many sabotages the mission drew, never who.
	OnMissionComplete(sabotaged int)
	// OnGameComplete reveals the winner and the true spies.
	OnGameComplete(winner game.Role, spies []game.Player)
}

// Factory builds a fresh agent for one seat in one game. Agents are
// per-game: whatever scratch state they accumulate dies with the game.
type Factory struct {
	Name string
	New  func(self game.Player, spy bool, rng *rand.Rand) Agent
}

// Builtins returns the example bots shipped with the runner.
func Builtins() []Factory {
	return []Factory{
		{Name: "random", New: NewRandom},
		{Name: "hippie", New: NewHippie},
		{Name: "paranoid", New: NewParanoid},
		{Name: "tracker", New: NewTracker},
	}
}

// Find resolves a bot name against the builtin registry.
func Find(name string) (Factory, error) {
	for _, f := range Builtins() {
		if f.Name == name {
			return f, nil
		}
	}
	return Factory{}, fmt.Errorf("unknown bot %q", name)
}

// pick returns count players sampled uniformly without replacement.
func pick(rng *rand.Rand, players []game.Player, count int) []game.Player {
	team := make([]game.Player, count)
	for i, j := range rng.Perm(len(players))[:count] {
		team[i] = players[j]
	}
	sort.Slice(team, func(a, b int) bool { return team[a].Index < team[b].Index })
	return team
}

// pickWithSelf returns a team of count players that always includes self.
func pickWithSelf(rng *rand.Rand, players []game.Player, count int, self game.Player) []game.Player {
	others := make([]game.Player, 0, len(players)-1)
	for _, p := range players {
		if p.Index != self.Index {
			others = append(others, p)
		}
	}
	team := append([]game.Player{self}, pick(rng, others, count-1)...)
	sort.Slice(team, func(a, b int) bool { return team[a].Index < team[b].Index })
	return team
}

package engine

import (
	"golang.org/x/exp/rand"

	"github.com/rs/zerolog/log"

	"github.com/sethillgard/resistance/agent"
	"github.com/sethillgard/resistance/game"
)

// Adapter wraps one third-party agent and isolates its faults from the
// engine. Every callback is guarded: a panicking agent or a malformed
// return is counted as a protocol fault and replaced with a safe default,
// so a single broken bot can never abort a tournament. The adapter holds no
// game state of its own beyond the bound agent and its seat.
type Adapter struct {
	agent  agent.Agent
	self   game.Player
	roster []game.Player
	rng    *rand.Rand
	faults int
}

func newAdapter(a agent.Agent, self game.Player, roster []game.Player, rng *rand.Rand) *Adapter {
	return &Adapter{agent: a, self: self, roster: roster, rng: rng}
}

// Faults returns how many protocol faults this seat has produced so far.
// Safe to call between callbacks only; the engine reads it at game end.
func (a *Adapter) Faults() int {
	return a.faults
}

// fault records a protocol violation and logs it.
func (a *Adapter) fault(callback string, reason any) {
	a.faults++
	log.Warn().Msgf("seat %d (%s): protocol fault in %s: %v", a.self.Index, a.self.Name, callback, reason)
}

// guard runs fn, converting a panic into a recorded fault, and reports
// whether fn survived. Agents whose callbacks error internally keep
// receiving subsequent callbacks.
func (a *Adapter) guard(callback string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.fault(callback, r)
		}
	}()
	fn()
	return true
}

// Agents only ever receive copies, so a misbehaving bot mutating a slice
// cannot corrupt engine state or leak into other seats.
func clone[T any](values []T) []T {
	if values == nil {
		return nil
	}
	return append([]T{}, values...)
}

func (a *Adapter) reveal(players []game.Player, spies []game.Player) {
	a.guard("OnGameRevealed", func() { a.agent.OnGameRevealed(clone(players), clone(spies)) })
}

func (a *Adapter) missionAttempt(mission, attempt int, leader game.Player) {
	a.guard("OnMissionAttempt", func() { a.agent.OnMissionAttempt(mission, attempt, leader) })
}

// selectTeam asks the agent for a team and validates it: exact size, subset
// of the roster, no duplicates. Any violation is replaced with a uniformly
// random valid team.
func (a *Adapter) selectTeam(count int) []game.Player {
	var team []game.Player
	if !a.guard("SelectTeam", func() { team = a.agent.SelectTeam(clone(a.roster), count) }) {
		return randomTeam(a.rng, a.roster, count)
	}

	if err := validateTeam(team, a.roster, count); err != nil {
		a.fault("SelectTeam", err)
		return randomTeam(a.rng, a.roster, count)
	}
	// The agent keeps no alias into the applied team.
	return clone(team)
}

func (a *Adapter) teamSelected(leader game.Player, team []game.Player) {
	a.guard("OnTeamSelected", func() { a.agent.OnTeamSelected(leader, clone(team)) })
}

// vote collects the agent's vote; a panic defaults to reject.
func (a *Adapter) vote(team []game.Player) bool {
	approve := false
	a.guard("Vote", func() { approve = a.agent.Vote(clone(team)) })
	return approve
}

func (a *Adapter) voteComplete(votes []bool) {
	a.guard("OnVoteComplete", func() { a.agent.OnVoteComplete(clone(votes)) })
}

// sabotage collects a spy's sabotage decision; a panic defaults to holding
// back, the least game-deciding choice.
func (a *Adapter) sabotage() bool {
	sabotage := false
	a.guard("Sabotage", func() { sabotage = a.agent.Sabotage() })
	return sabotage
}

func (a *Adapter) missionComplete(sabotaged int) {
	a.guard("OnMissionComplete", func() { a.agent.OnMissionComplete(sabotaged) })
}

func (a *Adapter) gameComplete(winner game.Role, spies []game.Player) {
	a.guard("OnGameComplete", func() { a.agent.OnGameComplete(winner, clone(spies)) })
}

type teamError string

func (e teamError) Error() string { return string(e) }

func validateTeam(team []game.Player, roster []game.Player, count int) error {
	if len(team) != count {
		return teamError("wrong team size")
	}
	seen := make(map[int]bool, len(team))
	for _, p := range team {
		if seen[p.Index] {
			return teamError("duplicate team member")
		}
		seen[p.Index] = true
		if p.Index < 0 || p.Index >= len(roster) || roster[p.Index].Name != p.Name {
			return teamError("team member not in roster")
		}
	}
	return nil
}

func randomTeam(rng *rand.Rand, roster []game.Player, count int) []game.Player {
	team := make([]game.Player, count)
	for i, j := range rng.Perm(len(roster))[:count] {
		team[i] = roster[j]
	}
	return team
}

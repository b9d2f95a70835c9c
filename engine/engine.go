package engine

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/rs/zerolog/log"

	"github.com/sethillgard/resistance/agent"
	"github.com/sethillgard/resistance/game"
)

// Engine drives one full game between a fixed roster of agents:
// role assignment, team proposal, voting, mission execution, scoring, game
// over. One engine instance plays exactly one game; it is not reusable.
//
// All randomness (spy assignment, initial leader, fallback teams) flows
// through the injected rng, and leader rotation is a plain modulo
// increment, so a game replays identically from the same seed and agent
// decisions. Callbacks run sequentially in roster order; no agent observes
// another's decision for the same round before committing its own.
type Engine struct {
	rules    game.Rules
	rng      *rand.Rand
	seats    []agent.Factory
	players  []game.Player
	roles    []game.Role
	spies    []game.Player
	adapters []*Adapter
	leader   int
	done     bool
}

// New binds one agent factory per seat. The roster size must match the
// rules it was built for. No agent is constructed or invoked until Run.
func New(seats []agent.Factory, rules game.Rules, rng *rand.Rand) (*Engine, error) {
	if len(seats) != rules.RosterSize {
		return nil, fmt.Errorf("%d seats for rules of %d players", len(seats), rules.RosterSize)
	}

	e := &Engine{
		rules:   rules,
		rng:     rng,
		seats:   seats,
		players: make([]game.Player, len(seats)),
		roles:   make([]game.Role, len(seats)),
	}
	for i, seat := range seats {
		e.players[i] = game.Player{Index: i, Name: seat.Name}
	}
	return e, nil
}

// assignRoles draws the spies without replacement and the initial leader,
// builds the adapters, and reveals the game. Spy identities go only to spy
// seats; everyone else gets an empty list.
func (e *Engine) assignRoles() {
	n := len(e.players)
	for _, i := range e.rng.Perm(n)[:e.rules.SpyCount] {
		e.roles[i] = game.Spy
	}
	for i, role := range e.roles {
		if role == game.Spy {
			e.spies = append(e.spies, e.players[i])
		}
	}
	e.leader = e.rng.Intn(n)

	e.adapters = make([]*Adapter, n)
	for i, seat := range e.seats {
		spy := e.roles[i] == game.Spy
		e.adapters[i] = newAdapter(seat.New(e.players[i], spy, e.rng), e.players[i], e.players, e.rng)
	}
	for i, a := range e.adapters {
		if e.roles[i] == game.Spy {
			a.reveal(e.players, e.spies)
		} else {
			a.reveal(e.players, nil)
		}
	}
}

// Run plays the game to completion and returns its outcome.
func (e *Engine) Run() game.Outcome {
	if e.done {
		panic("engine is single use: one instance, one game")
	}
	e.done = true

	e.assignRoles()
	outcome := game.Outcome{Spies: e.spies}

	for mission := 1; mission <= game.NumMissions; mission++ {
		sabotaged, executed := e.playMission(mission, &outcome)
		if !executed {
			// Proposal attempts exhausted: the spies win by attrition and
			// the mission is never resolved.
			outcome.Winner = game.Spy
			return e.finish(outcome)
		}

		ms := e.rules.Missions[mission-1]
		if sabotaged >= ms.SabotageThreshold {
			outcome.SpyWins++
		} else {
			outcome.ResistanceWins++
		}
		log.Debug().Msgf("mission %d: %d sabotages (threshold %d), score %d-%d",
			mission, sabotaged, ms.SabotageThreshold, outcome.ResistanceWins, outcome.SpyWins)

		if outcome.ResistanceWins == game.MissionsToWin {
			outcome.Winner = game.Resistance
			return e.finish(outcome)
		}
		if outcome.SpyWins == game.MissionsToWin {
			outcome.Winner = game.Spy
			return e.finish(outcome)
		}
	}
	panic("ran out of missions with no winner")
}

// playMission runs proposal+vote attempts until a team is approved and
// executed, or the attempt limit is hit. Returns the sabotage count and
// whether the mission was executed at all.
func (e *Engine) playMission(mission int, outcome *game.Outcome) (sabotaged int, executed bool) {
	ms := e.rules.Missions[mission-1]

	for try := 1; try <= game.MaxAttempts; try++ {
		leader := e.players[e.leader]
		for _, a := range e.adapters {
			a.missionAttempt(mission, try, leader)
		}

		team := e.adapters[e.leader].selectTeam(ms.TeamSize)
		for _, a := range e.adapters {
			a.teamSelected(leader, team)
		}

		// Votes are collected in roster order and revealed together only
		// after every seat has committed.
		votes := make([]bool, len(e.adapters))
		approvals := 0
		for i, a := range e.adapters {
			votes[i] = a.vote(team)
			if votes[i] {
				approvals++
			}
		}
		for _, a := range e.adapters {
			a.voteComplete(votes)
		}

		approved := 2*approvals > len(e.adapters)
		attempt := game.Attempt{
			Mission:  mission,
			Try:      try,
			Leader:   leader,
			Team:     team,
			Votes:    votes,
			Approved: approved,
			Sabotage: game.NotExecuted,
		}

		// Rotation is a fixed increment over roster order, whatever the
		// vote result.
		e.leader = (e.leader + 1) % len(e.players)

		if !approved {
			outcome.Attempts = append(outcome.Attempts, attempt)
			log.Debug().Msgf("mission %d try %d: team rejected %d-%d", mission, try, approvals, len(votes)-approvals)
			continue
		}

		sabotaged = e.executeMission(team)
		attempt.Sabotage = sabotaged
		outcome.Attempts = append(outcome.Attempts, attempt)
		for _, a := range e.adapters {
			a.missionComplete(sabotaged)
		}
		return sabotaged, true
	}
	return 0, false
}

// executeMission asks each spy on the approved team whether to sabotage.
// Resistance members have no choice to make.
func (e *Engine) executeMission(team []game.Player) int {
	sabotaged := 0
	for _, p := range team {
		if e.roles[p.Index] == game.Spy && e.adapters[p.Index].sabotage() {
			sabotaged++
		}
	}
	return sabotaged
}

// finish reveals the outcome to every agent and attaches per-seat fault
// counts.
func (e *Engine) finish(outcome game.Outcome) game.Outcome {
	for _, a := range e.adapters {
		a.gameComplete(outcome.Winner, e.spies)
	}
	outcome.Faults = make([]int, len(e.adapters))
	for i, a := range e.adapters {
		outcome.Faults[i] = a.Faults()
	}
	log.Debug().Msgf("game over: %s wins %d-%d", outcome.Winner, outcome.ResistanceWins, outcome.SpyWins)
	return outcome
}

// Players returns the seated roster in order.
func (e *Engine) Players() []game.Player {
	return e.players
}

// Roles returns the true allegiance of every seat. It exists for the
// tournament's statistics folding; agents never see it.
func (e *Engine) Roles() []game.Role {
	return e.roles
}

package agent

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/sethillgard/resistance/game"
)

// Base carries the identity every bot needs and provides no-op notification
// callbacks, so bots only spell out the callbacks they care about.
type Base struct {
	Self game.Player
	Spy  bool
	Rng  *rand.Rand
}

func (b *Base) OnGameRevealed(players []game.Player, spies []game.Player) {}

func (b *Base) OnMissionAttempt(mission, attempt int, leader game.Player) {}

func (b *Base) OnTeamSelected(leader game.Player, team []game.Player) {}

func (b *Base) OnVoteComplete(votes []bool) {}

func (b *Base) OnMissionComplete(sabotaged int) {}

func (b *Base) OnGameComplete(winner game.Role, spies []game.Player) {}

// Random decides everything uniformly at random. Useful as a tournament
// baseline: any bot that cannot beat Random is not reading the game at all.
type Random struct {
	Base
}

func NewRandom(self game.Player, spy bool, rng *rand.Rand) Agent {
	return &Random{Base{Self: self, Spy: spy, Rng: rng}}
}

func (r *Random) SelectTeam(players []game.Player, count int) []game.Player {
	return pick(r.Rng, players, count)
}

func (r *Random) Vote(team []game.Player) bool {
	return r.Rng.Intn(2) == 0
}

func (r *Random) Sabotage() bool {
	return r.Rng.Intn(2) == 0
}

// Hippie trusts everyone: approves every team and, as a spy, sabotages
// every mission it reaches.
type Hippie struct {
	Base
}

func NewHippie(self game.Player, spy bool, rng *rand.Rand) Agent {
	return &Hippie{Base{Self: self, Spy: spy, Rng: rng}}
}

func (h *Hippie) SelectTeam(players []game.Player, count int) []game.Player {
	return pickWithSelf(h.Rng, players, count, h.Self)
}

func (h *Hippie) Vote(team []game.Player) bool {
	return true
}

func (h *Hippie) Sabotage() bool {
	return true
}

// Paranoid trusts no one: it rejects every team it did not propose itself.
type Paranoid struct {
	Base
	leader game.Player
}

func NewParanoid(self game.Player, spy bool, rng *rand.Rand) Agent {
	return &Paranoid{Base: Base{Self: self, Spy: spy, Rng: rng}}
}

func (p *Paranoid) OnMissionAttempt(mission, attempt int, leader game.Player) {
	p.leader = leader
}

func (p *Paranoid) SelectTeam(players []game.Player, count int) []game.Player {
	return pickWithSelf(p.Rng, players, count, p.Self)
}

func (p *Paranoid) Vote(team []game.Player) bool {
	return p.leader.Index == p.Self.Index
}

func (p *Paranoid) Sabotage() bool {
	return true
}

// certain marks a player whose membership of a fully-sabotaged team proved
// them a spy.
const certain = 100

// Tracker keeps a per-player suspicion score updated from mission results
// and team composition, proposes the least suspicious teams, and votes
// against teams carrying a likely spy.
type Tracker struct {
	Base
	players   []game.Player
	spies     []game.Player
	team      []game.Player
	attempt   int
	leader    game.Player
	suspicion map[int]float64
}

func NewTracker(self game.Player, spy bool, rng *rand.Rand) Agent {
	return &Tracker{Base: Base{Self: self, Spy: spy, Rng: rng}}
}

func (t *Tracker) OnGameRevealed(players []game.Player, spies []game.Player) {
	t.players = players
	t.spies = spies
	t.suspicion = make(map[int]float64, len(players))
	for _, p := range players {
		t.suspicion[p.Index] = 0
	}
}

func (t *Tracker) OnMissionAttempt(mission, attempt int, leader game.Player) {
	t.attempt = attempt
	t.leader = leader
}

func (t *Tracker) SelectTeam(players []game.Player, count int) []game.Player {
	// Take self plus the least suspicious of the rest. Random jitter breaks
	// ties so repeated proposals do not fixate on roster order.
	others := make([]game.Player, 0, len(players)-1)
	for _, p := range players {
		if p.Index != t.Self.Index {
			others = append(others, p)
		}
	}
	jitter := make(map[int]float64, len(others))
	for _, p := range others {
		jitter[p.Index] = t.Rng.Float64()
	}
	sort.Slice(others, func(a, b int) bool {
		sa := t.suspicion[others[a].Index] + jitter[others[a].Index]
		sb := t.suspicion[others[b].Index] + jitter[others[b].Index]
		return sa < sb
	})
	team := append([]game.Player{t.Self}, others[:count-1]...)
	sort.Slice(team, func(a, b int) bool { return team[a].Index < team[b].Index })
	return team
}

func (t *Tracker) OnTeamSelected(leader game.Player, team []game.Player) {
	t.team = team
	// With no table talk there is no reason for a leader to bench itself.
	if !game.Contains(team, leader) {
		t.suspicion[leader.Index] += 3
	}
}

func (t *Tracker) Vote(team []game.Player) bool {
	if t.Spy {
		// Approve teams a spy can reach; reject spy-free ones.
		for _, s := range t.spies {
			if game.Contains(team, s) {
				return true
			}
		}
		return false
	}
	if t.leader.Index == t.Self.Index || t.attempt == game.MaxAttempts {
		// A rejection on the last attempt hands the game to the spies.
		return true
	}
	for _, p := range team {
		if p.Index != t.Self.Index && t.suspicion[p.Index] >= 3 {
			return false
		}
	}
	return true
}

func (t *Tracker) Sabotage() bool {
	var onTeam []game.Player
	for _, s := range t.spies {
		if game.Contains(t.team, s) {
			onTeam = append(onTeam, s)
		}
	}
	if len(onTeam) <= 1 {
		return true
	}
	// Two spies on one team: only the lowest-indexed one sabotages, so the
	// mission fails by exactly one and exposes as little as possible.
	lowest := onTeam[0]
	for _, s := range onTeam[1:] {
		if s.Index < lowest.Index {
			lowest = s
		}
	}
	return lowest.Index == t.Self.Index
}

func (t *Tracker) OnMissionComplete(sabotaged int) {
	if sabotaged == len(t.team) {
		// Every member sabotaged: the whole team stands revealed.
		for _, p := range t.team {
			t.suspicion[p.Index] += certain
		}
		return
	}
	if !t.Spy && game.Contains(t.team, t.Self) && sabotaged == len(t.team)-1 {
		// Everyone but me sabotaged, and I know I did not.
		for _, p := range t.team {
			if p.Index != t.Self.Index {
				t.suspicion[p.Index] += certain
			}
		}
		return
	}
	for _, p := range t.team {
		if sabotaged > 0 {
			t.suspicion[p.Index]++
		} else {
			t.suspicion[p.Index]--
		}
	}
}

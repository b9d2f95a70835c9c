package stats

import (
	"sort"
	"sync"

	"github.com/sethillgard/resistance/game"
)

// Record accumulates every tracked estimator for one agent name. The same
// record collects samples from every seat that name occupies, across all
// games of the tournament.
type Record struct {
	Name string

	ResistanceWins Estimator // won as resistance
	SpyWins        Estimator // won as spy
	Total          Estimator // won, either role

	VotesRes    Estimator // approved a spy-free team, as resistance
	VotesSpy    Estimator // rejected a team carrying a spy, as resistance
	SpyVoted    Estimator // a resistance member approved a team carrying this spy
	SpySelected Estimator // placed on a resistance leader's team, as spy
	Selections  Estimator // proposed a spy-free team, as resistance leader

	Faults int // protocol faults across all games
}

// Metric selects one estimator from a record, for ranking.
type Metric func(*Record) *Estimator

var (
	ByResistanceWins Metric = func(r *Record) *Estimator { return &r.ResistanceWins }
	BySpyWins        Metric = func(r *Record) *Estimator { return &r.SpyWins }
	ByTotal          Metric = func(r *Record) *Estimator { return &r.Total }
)

// Table is the tournament-wide statistics aggregator: one record per agent
// name, created lazily on first observation. Folding is synchronized, so
// parallel game workers may fold concurrently.
type Table struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewTable() *Table {
	return &Table{records: make(map[string]*Record)}
}

// record returns the named record, creating it on first observation.
func (t *Table) record(name string) *Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[name]
	if !ok {
		r = &Record{Name: name}
		t.records[name] = r
	}
	return r
}

// Fold applies one finished game to the table. players and roles are the
// engine's seating in roster order; outcome is the structured result the
// engine emitted.
func (t *Table) Fold(players []game.Player, roles []game.Role, outcome game.Outcome) {
	spyWon := outcome.Winner == game.Spy

	for i, p := range players {
		r := t.record(p.Name)
		if roles[i] == game.Spy {
			r.SpyWins.SampleBool(spyWon)
		} else {
			r.ResistanceWins.SampleBool(!spyWon)
		}
		r.Total.SampleBool((roles[i] == game.Spy) == spyWon)
		if i < len(outcome.Faults) {
			t.mu.Lock()
			r.Faults += outcome.Faults[i]
			t.mu.Unlock()
		}
	}

	for _, attempt := range outcome.Attempts {
		t.foldAttempt(players, roles, attempt)
	}
}

func (t *Table) foldAttempt(players []game.Player, roles []game.Role, attempt game.Attempt) {
	var spiesOnTeam []game.Player
	for _, p := range attempt.Team {
		if roles[p.Index] == game.Spy {
			spiesOnTeam = append(spiesOnTeam, p)
		}
	}

	// Vote correctness for resistance voters: support clean teams, reject
	// spied ones. Spies on the team hope to draw approvals unnoticed.
	for i, p := range players {
		if roles[i] == game.Spy {
			continue
		}
		vote := attempt.Votes[i]
		r := t.record(p.Name)
		if len(spiesOnTeam) == 0 {
			r.VotesRes.SampleBool(vote)
		} else {
			r.VotesSpy.SampleBool(!vote)
		}
		for _, spy := range spiesOnTeam {
			t.record(spy.Name).SpyVoted.SampleBool(vote)
		}
	}

	// Selection quality, measured only for resistance leaders: a spy
	// proposing itself tells us nothing.
	if roles[attempt.Leader.Index] == game.Spy {
		return
	}
	t.record(attempt.Leader.Name).Selections.SampleBool(len(spiesOnTeam) == 0)
	for i, p := range players {
		if roles[i] == game.Spy {
			t.record(p.Name).SpySelected.SampleBool(game.Contains(attempt.Team, p))
		}
	}
}

// Ranked returns every record sorted descending by the given metric's
// estimate, with name as the deterministic tie-break.
func (t *Table) Ranked(metric Metric) []*Record {
	t.mu.Lock()
	records := make([]*Record, 0, len(t.records))
	for _, r := range t.records {
		records = append(records, r)
	}
	t.mu.Unlock()

	sort.Slice(records, func(a, b int) bool {
		ea, eb := metric(records[a]).Estimate(), metric(records[b]).Estimate()
		if ea != eb {
			return ea > eb
		}
		return records[a].Name < records[b].Name
	})
	return records
}

// Len returns how many agent names have been observed.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

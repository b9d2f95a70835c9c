package tournament

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"

	"github.com/rs/zerolog/log"

	"github.com/sethillgard/resistance/agent"
	"github.com/sethillgard/resistance/engine"
	"github.com/sethillgard/resistance/game"
	"github.com/sethillgard/resistance/stats"
)

// ErrEmptyPool is returned when a tournament is created with no competitors.
var ErrEmptyPool = errors.New("agent pool is empty")

// seedGamma spreads per-game seeds across the 64-bit space so game i is
// reproducible from (seed, i) alone, independent of worker count.
const seedGamma = 0x9E3779B97F4A7C15

type Option func(*Orchestrator)

func WithGames(games int) Option {
	return func(o *Orchestrator) {
		if games > 0 {
			o.games = games
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(o *Orchestrator) {
		o.seed = seed
	}
}

func WithWorkers(workers int) Option {
	return func(o *Orchestrator) {
		if workers > 0 {
			o.workers = workers
		}
	}
}

func WithRosterSize(size int) Option {
	return func(o *Orchestrator) {
		o.rosterSize = size
	}
}

// Orchestrator runs many games between a pool of competitors and folds
// every outcome into a per-agent statistics table. The table is the only
// long-lived state: created empty here, populated while games run, read
// only by Report afterwards.
type Orchestrator struct {
	pool       []agent.Factory
	rules      game.Rules
	rosterSize int
	games      int
	seed       uint64
	workers    int
	table      *stats.Table
	completed  atomic.Int64
}

// New validates the configuration and builds an orchestrator. An empty
// pool or a roster size without a rules-table entry fails here, before any
// game starts.
func New(pool []agent.Factory, options ...Option) (*Orchestrator, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	o := &Orchestrator{
		pool:       pool,
		rosterSize: 5,
		games:      1000,
		workers:    1,
		table:      stats.NewTable(),
	}
	for _, option := range options {
		option(o)
	}

	rules, err := game.StandardRules(o.rosterSize)
	if err != nil {
		return nil, err
	}
	o.rules = rules
	return o, nil
}

// Run plays the configured number of games. Cancelling the context stops
// the tournament between games; a game that has started always reaches game
// over and is counted. Cancellation is not an error: the statistics
// accumulated so far remain valid for Report.
func (o *Orchestrator) Run(ctx context.Context) error {
	log.Info().Msgf("starting tournament: %d games of %d players, %d competitors, seed %d",
		o.games, o.rosterSize, len(o.pool), o.seed)

	task := make(chan int)
	go func() {
		defer close(task)
		for i := 0; i < o.games; i++ {
			select {
			case task <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range task {
				if err := o.playGame(i); err != nil {
					log.Error().Err(err).Msgf("game %d failed", i)
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		log.Info().Msgf("tournament interrupted after %d games", o.completed.Load())
	} else {
		log.Info().Msgf("completed tournament: %d games", o.completed.Load())
	}
	return nil
}

// playGame seats a sampled roster, runs one engine to completion, and folds
// the outcome.
func (o *Orchestrator) playGame(index int) error {
	rng := rand.New(rand.NewSource(o.seed + uint64(index)*seedGamma))

	// Sampling with replacement: the same competitor may hold several seats
	// in one game, each as its own player instance.
	seats := make([]agent.Factory, o.rosterSize)
	for i := range seats {
		seats[i] = o.pool[rng.Intn(len(o.pool))]
	}

	e, err := engine.New(seats, o.rules, rng)
	if err != nil {
		return fmt.Errorf("game %d: %w", index, err)
	}
	outcome := e.Run()
	o.table.Fold(e.Players(), e.Roles(), outcome)

	if n := o.completed.Add(1); n%50 == 0 {
		log.Info().Msgf("played %d of %d games", n, o.games)
	}
	return nil
}

// Games returns how many games have completed so far. Safe to call while
// the tournament runs.
func (o *Orchestrator) Games() int {
	return int(o.completed.Load())
}

// Table exposes the statistics table, for export.
func (o *Orchestrator) Table() *stats.Table {
	return o.table
}

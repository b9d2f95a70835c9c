package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sethillgard/resistance/agent"
	"github.com/sethillgard/resistance/stats"
	"github.com/sethillgard/resistance/tournament"
)

func main() {
	games := flag.Int("games", 1000, "number of games to play")
	bots := flag.String("bots", "random,hippie,paranoid,tracker", "comma-separated bot names")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "tournament seed, for reproducible runs")
	workers := flag.Int("workers", 1, "number of games to run in parallel")
	roster := flag.Int("roster", 5, "players per game")
	csvPath := flag.String("csv", "", "write final standings to this CSV file")
	verbose := flag.Bool("v", false, "log per-game detail")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	pool, err := buildPool(*bots)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bot list")
	}

	o, err := tournament.New(pool,
		tournament.WithGames(*games),
		tournament.WithSeed(*seed),
		tournament.WithWorkers(*workers),
		tournament.WithRosterSize(*roster),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid tournament configuration")
	}

	// An interrupt stops the run between games; the report below still
	// covers everything played so far.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := o.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}

	fmt.Println()
	o.Report().Fprint(os.Stdout)

	if *csvPath != "" {
		if err := stats.WriteStandings(o.Table(), *csvPath); err != nil {
			log.Fatal().Err(err).Msg("failed to write standings")
		}
		log.Info().Msgf("standings written to %s", *csvPath)
	}
}

func buildPool(names string) ([]agent.Factory, error) {
	var pool []agent.Factory
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		factory, err := agent.Find(name)
		if err != nil {
			return nil, err
		}
		pool = append(pool, factory)
	}
	return pool, nil
}

package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteStandings dumps the full table to a CSV file, one row per agent,
// ranked by combined win rate.
func WriteStandings(table *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create standings file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"name", "total", "games",
		"res_wins", "spy_wins",
		"votes_res", "votes_spy",
		"spy_voted", "spy_selected", "selections",
		"faults",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write standings header: %w", err)
	}

	for _, r := range table.Ranked(ByTotal) {
		row := []string{
			r.Name,
			formatEstimate(&r.Total),
			strconv.Itoa(r.Total.Count()),
			formatEstimate(&r.ResistanceWins),
			formatEstimate(&r.SpyWins),
			formatEstimate(&r.VotesRes),
			formatEstimate(&r.VotesSpy),
			formatEstimate(&r.SpyVoted),
			formatEstimate(&r.SpySelected),
			formatEstimate(&r.Selections),
			strconv.Itoa(r.Faults),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write standings row: %w", err)
		}
	}
	return nil
}

func formatEstimate(e *Estimator) string {
	return strconv.FormatFloat(e.Estimate(), 'f', 4, 64)
}

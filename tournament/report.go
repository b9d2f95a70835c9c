package tournament

import (
	"fmt"
	"io"

	"github.com/sethillgard/resistance/stats"
)

// Report is the final ranking, grouped by role the way the original
// competition presented it: spies ranked by spy win rate, resistance by
// resistance win rate, then everyone by combined win rate.
type Report struct {
	Spies      []*stats.Record
	Resistance []*stats.Record
	Total      []*stats.Record
}

// Report snapshots the current standings. Valid mid-run (for progress) and
// after Run returns.
func (o *Orchestrator) Report() Report {
	return Report{
		Spies:      o.table.Ranked(stats.BySpyWins),
		Resistance: o.table.Ranked(stats.ByResistanceWins),
		Total:      o.table.Ranked(stats.ByTotal),
	}
}

// Fprint renders the standings as text.
func (r Report) Fprint(w io.Writer) {
	fmt.Fprintf(w, "SPIES\t\t\t\t(voted, selected)\n")
	for _, rec := range r.Spies {
		fmt.Fprintf(w, "  %-12s %s\t%s  %s\n",
			rec.Name, rec.SpyWins.String(), rec.SpyVoted.String(), rec.SpySelected.String())
	}

	fmt.Fprintf(w, "\nRESISTANCE\t\t\t(vote, select)\n")
	for _, rec := range r.Resistance {
		fmt.Fprintf(w, "  %-12s %s\t%s %s  %s\n",
			rec.Name, rec.ResistanceWins.String(), rec.VotesRes.String(), rec.VotesSpy.String(), rec.Selections.String())
	}

	fmt.Fprintf(w, "\nTOTAL\n")
	for _, rec := range r.Total {
		if rec.Faults > 0 {
			fmt.Fprintf(w, "  %-12s %s\t(faults=%d)\n", rec.Name, rec.Total.String(), rec.Faults)
		} else {
			fmt.Fprintf(w, "  %-12s %s\n", rec.Name, rec.Total.String())
		}
	}
}

package menu

import (
	"errors"
	"fmt"
	"io/fs"

	"pingpong/internal/tracker"
)

// ShowLoadReport prints the startup notes for a load.
func (m *Menu) ShowLoadReport(r tracker.LoadReport) {
	for _, s := range r.Skipped {
		m.println(m.st.red(fmt.Sprintf("Warning: skipped match record %d: %s", s.Seq, s.Reason)))
	}
	switch {
	case errors.Is(r.Err, fs.ErrNotExist):
		m.println(m.st.red("Note: No existing match data found. Starting fresh."))
	case r.Err != nil:
		m.println(m.st.red(fmt.Sprintf("Warning: could not read match data (%v). Starting fresh.", r.Err)))
		m.println(m.st.red("Changes will not be saved this session."))
	case r.Loaded > 0:
		m.println(m.st.green(fmt.Sprintf("Match data loaded successfully (%d matches).", r.Loaded)))
	}
}

// ShowDrift prints each difference between saved and derived player stats.
func (m *Menu) ShowDrift(drift []tracker.Drift) {
	if len(drift) == 0 {
		m.println(m.st.green("Saved player table matches the match log."))
		return
	}
	for _, d := range drift {
		switch {
		case d.Stored == nil:
			m.printf("%s: missing from saved table (derived %d-%d in %d)\n",
				d.Name, d.Derived.Wins, d.Derived.Losses, d.Derived.MatchesPlayed)
		case d.Derived == nil:
			m.printf("%s: saved %d-%d in %d but has no matches\n",
				d.Name, d.Stored.Wins, d.Stored.Losses, d.Stored.MatchesPlayed)
		default:
			m.printf("%s: saved %d-%d in %d, derived %d-%d in %d\n",
				d.Name, d.Stored.Wins, d.Stored.Losses, d.Stored.MatchesPlayed,
				d.Derived.Wins, d.Derived.Losses, d.Derived.MatchesPlayed)
		}
	}
}

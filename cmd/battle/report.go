package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/KirkDiggler/knight-battles/internal/services/tournament"
)

func writeJSON(w io.Writer, report *tournament.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeText prints one "name: hp" line per knight, sorted by name
func writeText(w io.Writer, report *tournament.Report, verbose bool) error {
	if verbose {
		for _, f := range report.Fights {
			_, err := fmt.Fprintf(w, "%s: %d -> %d, %d -> %d\n",
				f.Pairing, f.FirstBefore, f.FirstAfter, f.SecondBefore, f.SecondAfter)
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(report.Results))
	for name := range report.Results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s: %d\n", name, report.Results[name]); err != nil {
			return err
		}
	}

	return nil
}

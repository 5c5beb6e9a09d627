package statistics

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"match", "outcome", "target", "rounds", "wins", "losses", "draws", "seed"}

// WriteCSV writes one row per recorded match, in the order they were added.
func (s *Statistics) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, r := range s.results {
		row := []string{
			strconv.Itoa(i),
			r.Outcome.String(),
			strconv.Itoa(r.TargetWins),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.Draws),
			strconv.FormatInt(r.Seed, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

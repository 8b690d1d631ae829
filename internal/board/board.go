// Package board computes the ranked leaderboard views.
package board

import (
	"context"
	"math"
	"sort"

	"github.com/uwtype/uwtype/internal/model"
)

// Source is the store surface the aggregator reads from.
type Source interface {
	TopScores(ctx context.Context, n int) ([]model.ScoreRecord, error)
	FacultyScores(ctx context.Context) ([]model.ScoreRecord, error)
}

// View is one atomic snapshot of both rankings.
type View struct {
	Individuals []model.IndividualEntry
	Faculties   []model.FacultyEntry
}

// Recompute builds a fresh view from the store. It holds no state
// between calls, so redundant invocations are harmless and concurrent
// ones converge to the same answer. Empty result sets produce empty
// rankings, not errors.
func Recompute(ctx context.Context, src Source, cfg model.BoardConfig) (View, error) {
	top, err := src.TopScores(ctx, cfg.TopIndividuals)
	if err != nil {
		return View{}, err
	}
	individuals := make([]model.IndividualEntry, 0, len(top))
	for i, rec := range top {
		individuals = append(individuals, model.IndividualEntry{Rank: i + 1, Record: rec})
	}

	all, err := src.FacultyScores(ctx)
	if err != nil {
		return View{}, err
	}
	faculties := rankFaculties(all, cfg.TopFaculties)

	return View{Individuals: individuals, Faculties: faculties}, nil
}

// rankFaculties averages WPM per faculty across every contributing
// record, not just the current leaders.
func rankFaculties(records []model.ScoreRecord, top int) []model.FacultyEntry {
	type acc struct {
		sum   int
		count int
	}
	groups := map[string]*acc{}
	for _, rec := range records {
		if rec.Faculty == "" {
			continue
		}
		entry, ok := groups[rec.Faculty]
		if !ok {
			entry = &acc{}
			groups[rec.Faculty] = entry
		}
		entry.sum += rec.WPM
		entry.count++
	}

	entries := make([]model.FacultyEntry, 0, len(groups))
	for faculty, a := range groups {
		entries = append(entries, model.FacultyEntry{
			Faculty: faculty,
			AvgWPM:  int(math.Round(float64(a.sum) / float64(a.count))),
			Count:   a.count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgWPM == entries[j].AvgWPM {
			return entries[i].Faculty < entries[j].Faculty
		}
		return entries[i].AvgWPM > entries[j].AvgWPM
	})
	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

package board

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/uwtype/uwtype/internal/model"
	"github.com/uwtype/uwtype/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insert(t *testing.T, st *store.Store, wpm int, faculty string) {
	t.Helper()
	_, err := st.InsertScore(context.Background(), model.ScoreRecord{
		UserID:    "u-1",
		Email:     "warrior@uwaterloo.ca",
		Faculty:   faculty,
		WPM:       wpm,
		Accuracy:  95,
		CreatedAt: time.Unix(1700000000, 0),
	})
	if err != nil {
		t.Fatalf("insert score: %v", err)
	}
}

func TestRecomputeIndividualRanking(t *testing.T) {
	st := openTestStore(t)
	for _, wpm := range []int{10, 90, 50, 140, 30, 120, 70} {
		insert(t, st, wpm, "")
	}
	view, err := Recompute(context.Background(), st, model.BoardConfig{TopIndividuals: 5, TopFaculties: 5})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	want := []int{140, 120, 90, 70, 50}
	if len(view.Individuals) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(view.Individuals))
	}
	for i, entry := range view.Individuals {
		if entry.Rank != i+1 {
			t.Fatalf("entry %d: expected rank %d, got %d", i, i+1, entry.Rank)
		}
		if entry.Record.WPM != want[i] {
			t.Fatalf("entry %d: expected %d WPM, got %d", i, want[i], entry.Record.WPM)
		}
	}
}

func TestRecomputeFacultyAverages(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, 100, "Eng")
	insert(t, st, 120, "Eng")
	insert(t, st, 90, "Math")
	insert(t, st, 200, "")

	view, err := Recompute(context.Background(), st, model.BoardConfig{TopIndividuals: 5, TopFaculties: 5})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(view.Faculties) != 2 {
		t.Fatalf("expected 2 faculties, got %d", len(view.Faculties))
	}
	eng := view.Faculties[0]
	if eng.Faculty != "Eng" || eng.AvgWPM != 110 || eng.Count != 2 || eng.Rank != 1 {
		t.Fatalf("unexpected Eng entry: %+v", eng)
	}
	math := view.Faculties[1]
	if math.Faculty != "Math" || math.AvgWPM != 90 || math.Count != 1 || math.Rank != 2 {
		t.Fatalf("unexpected Math entry: %+v", math)
	}
}

func TestRecomputeFacultyAveragesUseAllRecords(t *testing.T) {
	// The faculty average reflects every contributor, not just the
	// records inside the top-N individual view.
	st := openTestStore(t)
	insert(t, st, 160, "Eng")
	insert(t, st, 150, "Eng")
	insert(t, st, 20, "Math")
	insert(t, st, 40, "Math")

	view, err := Recompute(context.Background(), st, model.BoardConfig{TopIndividuals: 2, TopFaculties: 5})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(view.Individuals) != 2 {
		t.Fatalf("expected top 2 individuals, got %d", len(view.Individuals))
	}
	if len(view.Faculties) != 2 {
		t.Fatalf("expected both faculties, got %d", len(view.Faculties))
	}
	if view.Faculties[1].Faculty != "Math" || view.Faculties[1].AvgWPM != 30 {
		t.Fatalf("Math average should cover all records: %+v", view.Faculties[1])
	}
}

func TestRecomputeEmptyStore(t *testing.T) {
	st := openTestStore(t)
	view, err := Recompute(context.Background(), st, model.BoardConfig{TopIndividuals: 5, TopFaculties: 5})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(view.Individuals) != 0 || len(view.Faculties) != 0 {
		t.Fatalf("expected empty rankings, got %+v", view)
	}
}

func TestRecomputeFacultyTopM(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, 100, "A")
	insert(t, st, 90, "B")
	insert(t, st, 80, "C")

	view, err := Recompute(context.Background(), st, model.BoardConfig{TopIndividuals: 5, TopFaculties: 2})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(view.Faculties) != 2 {
		t.Fatalf("expected top 2 faculties, got %d", len(view.Faculties))
	}
	if view.Faculties[0].Faculty != "A" || view.Faculties[1].Faculty != "B" {
		t.Fatalf("unexpected faculty order: %+v", view.Faculties)
	}
}

func TestWatcherRecomputesOnChange(t *testing.T) {
	st := openTestStore(t)
	insert(t, st, 50, "Eng")

	watcher, err := NewWatcher(context.Background(), st, model.BoardConfig{TopIndividuals: 5, TopFaculties: 5})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer watcher.Close()

	if got := watcher.View(); len(got.Individuals) != 1 {
		t.Fatalf("expected initial view with 1 entry, got %d", len(got.Individuals))
	}

	insert(t, st, 70, "Math")
	select {
	case view := <-watcher.Updates():
		if len(view.Individuals) != 2 {
			t.Fatalf("expected 2 entries after change, got %d", len(view.Individuals))
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no update delivered after insert")
	}
}

func TestWatcherCloseReleasesSubscription(t *testing.T) {
	st := openTestStore(t)
	watcher, err := NewWatcher(context.Background(), st, model.BoardConfig{TopIndividuals: 5, TopFaculties: 5})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	watcher.Close()
	watcher.Close() // idempotent

	insert(t, st, 50, "")
	select {
	case <-watcher.Updates():
		t.Fatalf("update delivered after close")
	case <-time.After(100 * time.Millisecond):
	}
}

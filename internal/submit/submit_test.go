package submit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uwtype/uwtype/internal/identity"
	"github.com/uwtype/uwtype/internal/model"
	"github.com/uwtype/uwtype/internal/session"
)

type fakeStore struct {
	inserts int
	last    model.ScoreRecord
	err     error
}

func (f *fakeStore) InsertScore(_ context.Context, rec model.ScoreRecord) (int64, error) {
	f.inserts++
	f.last = rec
	if f.err != nil {
		return 0, f.err
	}
	return int64(f.inserts), nil
}

var profile = model.Profile{
	UserID:  "u-1",
	Email:   "warrior@uwaterloo.ca",
	Program: "CS",
	Faculty: "Mathematics",
}

func finishedSession(t *testing.T, elapsed time.Duration) session.Session {
	t.Helper()
	target := "the quick brown fox jumps"
	t0 := time.Unix(0, 0)
	sess := session.New(target)
	sess = sess.ApplyInput(target[:1], t0)
	sess = sess.ApplyInput(target, t0.Add(elapsed))
	if sess.State() != session.Finished {
		t.Fatalf("fixture session not finished")
	}
	return sess
}

func TestSubmitNotFinished(t *testing.T) {
	store := &fakeStore{}
	gateway := NewGateway(store, model.DefaultScoring)

	sess := session.New("abc").ApplyInput("ab", time.Unix(0, 0))
	_, err := gateway.Submit(context.Background(), sess, profile)
	if !errors.Is(err, ErrNotFinished) {
		t.Fatalf("expected ErrNotFinished, got %v", err)
	}
	if store.inserts != 0 {
		t.Fatalf("expected zero store writes, got %d", store.inserts)
	}
}

func TestSubmitBuildsRecord(t *testing.T) {
	store := &fakeStore{}
	gateway := NewGateway(store, model.DefaultScoring)

	// 25 chars in 30s: (25/5)/0.5min = 10 WPM, 100% accuracy.
	rec, err := gateway.Submit(context.Background(), finishedSession(t, 30*time.Second), profile)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if store.inserts != 1 {
		t.Fatalf("expected exactly one insert, got %d", store.inserts)
	}
	if rec.WPM != 10 {
		t.Fatalf("expected 10 WPM, got %d", rec.WPM)
	}
	if rec.Accuracy != 100 {
		t.Fatalf("expected 100 accuracy, got %f", rec.Accuracy)
	}
	if rec.ID != 1 {
		t.Fatalf("expected store-assigned id, got %d", rec.ID)
	}
	if rec.UserID != "u-1" || rec.Email != "warrior@uwaterloo.ca" || rec.Faculty != "Mathematics" {
		t.Fatalf("profile metadata not captured: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
}

func TestSubmitRejectsNonCampusEmail(t *testing.T) {
	store := &fakeStore{}
	gateway := NewGateway(store, model.DefaultScoring)

	outsider := profile
	outsider.Email = "someone@gmail.com"
	_, err := gateway.Submit(context.Background(), finishedSession(t, 30*time.Second), outsider)
	if !errors.Is(err, identity.ErrNotCampusEmail) {
		t.Fatalf("expected ErrNotCampusEmail, got %v", err)
	}
	if store.inserts != 0 {
		t.Fatalf("expected zero store writes, got %d", store.inserts)
	}
}

func TestSubmitSurfacesPersistenceError(t *testing.T) {
	cause := errors.New("disk full")
	store := &fakeStore{err: cause}
	gateway := NewGateway(store, model.DefaultScoring)

	_, err := gateway.Submit(context.Background(), finishedSession(t, 30*time.Second), profile)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("store cause not wrapped: %v", err)
	}
	if store.inserts != 1 {
		t.Fatalf("expected exactly one attempted insert, got %d", store.inserts)
	}
}

func TestSubmitNoAutomaticRetry(t *testing.T) {
	store := &fakeStore{err: errors.New("network down")}
	gateway := NewGateway(store, model.DefaultScoring)
	sess := finishedSession(t, 30*time.Second)

	_, _ = gateway.Submit(context.Background(), sess, profile)
	if store.inserts != 1 {
		t.Fatalf("gateway retried on failure: %d inserts", store.inserts)
	}

	// Re-submission is an explicit caller action.
	store.err = nil
	rec, err := gateway.Submit(context.Background(), sess, profile)
	if err != nil {
		t.Fatalf("explicit re-submit: %v", err)
	}
	if store.inserts != 2 || rec.WPM != 10 {
		t.Fatalf("unexpected re-submit result: inserts=%d rec=%+v", store.inserts, rec)
	}
}

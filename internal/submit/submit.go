// Package submit packages a finished session into a persistence request.
package submit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/uwtype/uwtype/internal/identity"
	"github.com/uwtype/uwtype/internal/model"
	"github.com/uwtype/uwtype/internal/session"
)

// ErrNotFinished is returned when submission is attempted before the
// session reached the finished state. No write is performed.
var ErrNotFinished = errors.New("finish the passage before submitting")

// ErrPersistence wraps a failed store write. There is no automatic
// retry; re-submission is an explicit user action.
var ErrPersistence = errors.New("failed to save score")

// Inserter is the single store capability the gateway needs.
type Inserter interface {
	InsertScore(ctx context.Context, rec model.ScoreRecord) (int64, error)
}

// Gateway builds and persists score records.
type Gateway struct {
	store   Inserter
	scoring model.Scoring
	now     func() time.Time
}

// NewGateway constructs a gateway over the given store.
func NewGateway(store Inserter, scoring model.Scoring) *Gateway {
	return &Gateway{store: store, scoring: scoring, now: time.Now}
}

// Submit validates the session and profile, builds the record, and
// issues exactly one insert. The session is not mutated.
func (g *Gateway) Submit(ctx context.Context, sess session.Session, profile model.Profile) (model.ScoreRecord, error) {
	if sess.State() != session.Finished {
		return model.ScoreRecord{}, ErrNotFinished
	}
	email, err := identity.ValidateEmail(profile.Email)
	if err != nil {
		return model.ScoreRecord{}, err
	}
	now := g.now()
	rec := model.ScoreRecord{
		UserID:    profile.UserID,
		Email:     email,
		Program:   strings.TrimSpace(profile.Program),
		Faculty:   strings.TrimSpace(profile.Faculty),
		WPM:       int(math.Round(sess.WPM(now, g.scoring))),
		Accuracy:  math.Round(sess.Accuracy()*100) / 100,
		CreatedAt: now,
	}
	id, err := g.store.InsertScore(ctx, rec)
	if err != nil {
		return model.ScoreRecord{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	rec.ID = id
	return rec, nil
}

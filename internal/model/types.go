// Package model defines shared data structures.
package model

import "time"

// Scoring defines the constants used to turn keystrokes into WPM.
type Scoring struct {
	CharsPerWord int
	MaxWPM       float64
}

// DefaultScoring matches the values used by the hosted test.
var DefaultScoring = Scoring{CharsPerWord: 5, MaxWPM: 240}

// Profile identifies the submitter of a score.
type Profile struct {
	UserID  string
	Email   string
	Program string
	Faculty string
}

// ScoreRecord is one submitted result, immutable once written.
type ScoreRecord struct {
	ID        int64
	UserID    string
	Email     string
	Program   string
	Faculty   string
	WPM       int
	Accuracy  float64
	CreatedAt time.Time
}

// IndividualEntry is a ranked score on the individual leaderboard.
type IndividualEntry struct {
	Rank   int
	Record ScoreRecord
}

// FacultyEntry is a ranked faculty on the faculty leaderboard.
type FacultyEntry struct {
	Rank    int
	Faculty string
	AvgWPM  int
	Count   int
}

// BoardConfig defines leaderboard sizes.
type BoardConfig struct {
	TopIndividuals int
	TopFaculties   int
}

// DefaultBoardConfig mirrors the hosted leaderboard views.
var DefaultBoardConfig = BoardConfig{TopIndividuals: 10, TopFaculties: 6}

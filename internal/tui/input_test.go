package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uwtype/uwtype/internal/model"
	"github.com/uwtype/uwtype/internal/session"
)

func inputModel(target string) *Model {
	return &Model{
		sess:    session.New(target),
		scoring: model.DefaultScoring,
	}
}

func TestHandleKeyRejectsPastedInput(t *testing.T) {
	m := inputModel("abc def")
	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc def"), Paste: true})

	if len(m.sess.Typed) != 0 {
		t.Fatalf("pasted input applied to session: %q", string(m.sess.Typed))
	}
	if m.sess.State() != session.NotStarted {
		t.Fatalf("pasted input started the session")
	}
	if !m.statusErr {
		t.Fatalf("expected rejection status for pasted input")
	}
}

func TestHandleKeyRejectsBulkRuneBatch(t *testing.T) {
	m := inputModel("abc def")
	batch := make([]rune, maxRunesPerKey+1)
	for i := range batch {
		batch[i] = 'a'
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: batch})

	if len(m.sess.Typed) != 0 {
		t.Fatalf("bulk rune batch applied to session: %q", string(m.sess.Typed))
	}
	if m.sess.State() != session.NotStarted {
		t.Fatalf("bulk rune batch started the session")
	}
}

func TestHandleKeyAcceptsSingleKeystroke(t *testing.T) {
	m := inputModel("abc def")
	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	if got := string(m.sess.Typed); got != "a" {
		t.Fatalf("expected typed %q, got %q", "a", got)
	}
	if m.sess.State() != session.InProgress {
		t.Fatalf("single keystroke did not start the session")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeySpace})
	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if got := string(m.sess.Typed); got != "a b" {
		t.Fatalf("expected typed %q, got %q", "a b", got)
	}
}

// Package tui provides the Bubble Tea typing test interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uwtype/uwtype/internal/model"
	"github.com/uwtype/uwtype/internal/passage"
	"github.com/uwtype/uwtype/internal/session"
	"github.com/uwtype/uwtype/internal/submit"
	"github.com/uwtype/uwtype/internal/tier"
)

const tickInterval = 75 * time.Millisecond

// Pasted input is rejected outright; this threshold catches bulk rune
// batches that arrive without the terminal's paste flag.
const maxRunesPerKey = 4

type tickMsg time.Time

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB300"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7D7D"))
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54F"))
	errStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea typing test UI.
type Model struct {
	selector *passage.Selector
	corpus   []string
	gateway  *submit.Gateway
	profile  model.Profile
	scoring  model.Scoring

	sess session.Session
	now  time.Time

	bestWPM   int
	submitted bool
	status    string
	statusErr bool

	width  int
	height int
}

// NewModel constructs the typing test model with the first passage
// already selected.
func NewModel(selector *passage.Selector, corpus []string, gateway *submit.Gateway, profile model.Profile, scoring model.Scoring, bestWPM int) (*Model, error) {
	m := &Model{
		selector: selector,
		corpus:   corpus,
		gateway:  gateway,
		profile:  profile,
		scoring:  scoring,
		bestWPM:  bestWPM,
		now:      time.Now(),
	}
	if err := m.newPassage(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlN:
		if err := m.newPassage(); err != nil {
			m.setStatus(err.Error(), true)
		}
		return m, nil
	case tea.KeyCtrlR:
		m.resetRun()
		return m, nil
	case tea.KeyEnter:
		if m.sess.State() == session.Finished {
			m.submitScore()
		}
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
		return m, nil
	case tea.KeySpace:
		m.handleRunes([]rune{' '}, false)
		return m, nil
	case tea.KeyRunes:
		m.handleRunes(msg.Runes, msg.Paste)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleBackspace() {
	if m.sess.State() == session.Finished || len(m.sess.Typed) == 0 {
		return
	}
	m.status = ""
	m.sess = m.sess.ApplyInput(string(m.sess.Typed[:len(m.sess.Typed)-1]), time.Now())
}

func (m *Model) handleRunes(runes []rune, pasted bool) {
	if pasted || len(runes) > maxRunesPerKey {
		m.setStatus("Paste rejected. Type the passage yourself.", true)
		return
	}
	if m.sess.State() == session.Finished {
		return
	}
	m.status = ""
	now := time.Now()
	m.now = now
	next := m.sess.ApplyInput(string(m.sess.Typed)+string(runes), now)
	m.sess = next
	if next.State() == session.Finished {
		m.setStatus("Passage complete. Press enter to submit your score.", false)
	}
}

func (m *Model) submitScore() {
	if m.submitted {
		m.setStatus("Score already submitted. Ctrl+N for a new passage.", false)
		return
	}
	rec, err := m.gateway.Submit(context.Background(), m.sess, m.profile)
	if err != nil {
		if errors.Is(err, submit.ErrNotFinished) {
			m.setStatus("Finish the passage to submit your score.", true)
			return
		}
		m.setStatus("Saving failed. Press enter to try again.", true)
		return
	}
	m.submitted = true
	if rec.WPM > m.bestWPM {
		m.bestWPM = rec.WPM
	}
	m.setStatus(fmt.Sprintf("Submitted: %d WPM, %.2f%% accuracy, %s tier.", rec.WPM, rec.Accuracy, tier.Classify(float64(rec.WPM))), false)
}

func (m *Model) newPassage() error {
	text, err := m.selector.Select(m.corpus)
	if err != nil {
		return err
	}
	m.sess = session.New(text)
	m.submitted = false
	m.status = ""
	m.now = time.Now()
	return nil
}

// resetRun clears the attempt but keeps the same passage.
func (m *Model) resetRun() {
	m.sess = session.New(string(m.sess.Target))
	m.submitted = false
	m.status = ""
	m.now = time.Now()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.sess.Target) == 0 {
		return ""
	}
	cursorIndex := -1
	if m.sess.State() != session.Finished && len(m.sess.Typed) < len(m.sess.Target) {
		cursorIndex = len(m.sess.Typed)
	}
	styled := buildStyledRunes(m.sess.Target, m.sess.Typed, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styled)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styled, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)

	lines := []string{m.renderFooter()}
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errStatusStyle
		}
		lines = append(lines, style.Render(m.status))
	}
	footerHeight := len(lines)
	if m.height <= footerHeight+1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, content)
	out := body
	for _, line := range lines {
		out += "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, line)
	}
	return out
}

func (m *Model) renderFooter() string {
	wpm := m.sess.WPM(m.now, m.scoring)
	elapsed := m.sess.ElapsedMs(m.now)
	segments := []string{
		fmt.Sprintf("%.0f WPM", wpm),
		fmt.Sprintf("%.1f%% acc", m.sess.Accuracy()),
		formatElapsed(elapsed),
		fmt.Sprintf("Progress %.0f%%", m.sess.Progress()),
		fmt.Sprintf("%s tier", tier.Classify(wpm)),
	}
	if m.bestWPM > 0 {
		segments = append(segments, fmt.Sprintf("Best %d", m.bestWPM))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatElapsed(ms int64) string {
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

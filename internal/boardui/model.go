// Package boardui provides the Bubble Tea leaderboard interface.
package boardui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uwtype/uwtype/internal/board"
	"github.com/uwtype/uwtype/internal/tier"
)

const (
	tabIndividuals = iota
	tabFaculties
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	liveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

type viewMsg board.View

// Model implements the Bubble Tea leaderboard UI.
type Model struct {
	watcher *board.Watcher

	tabs        []string
	activeTab   int
	individuals table.Model
	faculties   table.Model

	width  int
	height int
}

// NewModel constructs a leaderboard UI over a running watcher.
func NewModel(watcher *board.Watcher) *Model {
	m := &Model{
		watcher: watcher,
		tabs:    []string{"Individuals", "Faculties"},
	}
	m.initTables()
	m.setView(watcher.View())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return viewMsg(<-m.watcher.Updates())
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTables()
		return m, nil
	case viewMsg:
		m.setView(board.View(msg))
		return m, m.waitForUpdate()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.watcher.Close()
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			return m, nil
		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
			return m, nil
		}
	}
	var cmd tea.Cmd
	switch m.activeTab {
	case tabIndividuals:
		m.individuals, cmd = m.individuals.Update(msg)
	case tabFaculties:
		m.faculties, cmd = m.faculties.Update(msg)
	}
	return m, cmd
}

func (m *Model) initTables() {
	m.individuals = table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Email", Width: 32},
			{Title: "WPM", Width: 5},
			{Title: "Accuracy", Width: 9},
			{Title: "Tier", Width: 8},
		}),
		table.WithFocused(true),
	)
	m.faculties = table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Faculty", Width: 24},
			{Title: "Avg WPM", Width: 8},
			{Title: "Typists", Width: 8},
		}),
		table.WithFocused(true),
	)
}

func (m *Model) setView(v board.View) {
	rows := make([]table.Row, 0, len(v.Individuals))
	for _, entry := range v.Individuals {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(entry.Rank),
			entry.Record.Email,
			strconv.Itoa(entry.Record.WPM),
			fmt.Sprintf("%.1f%%", entry.Record.Accuracy),
			tier.Classify(float64(entry.Record.WPM)).String(),
		})
	}
	m.individuals.SetRows(rows)

	facultyRows := make([]table.Row, 0, len(v.Faculties))
	for _, entry := range v.Faculties {
		facultyRows = append(facultyRows, table.Row{
			"#" + strconv.Itoa(entry.Rank),
			entry.Faculty,
			strconv.Itoa(entry.AvgWPM),
			strconv.Itoa(entry.Count),
		})
	}
	m.faculties.SetRows(facultyRows)
}

func (m *Model) resizeTables() {
	height := m.height - 5
	if height < 3 {
		height = 3
	}
	m.individuals.SetHeight(height)
	m.faculties.SetHeight(height)
}

// View implements tea.Model.
func (m *Model) View() string {
	nav := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		style := inactiveNavStyle
		if i == m.activeTab {
			style = activeNavStyle
		}
		nav = append(nav, style.Render(tab))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, nav...)
	header += "  " + liveStyle.Render("● live")

	var body string
	switch m.activeTab {
	case tabIndividuals:
		if len(m.individuals.Rows()) == 0 {
			body = headerStyle.Render("No entries yet. Be the first to complete a test!")
		} else {
			body = m.individuals.View()
		}
	case tabFaculties:
		if len(m.faculties.Rows()) == 0 {
			body = headerStyle.Render("No faculty entries yet.")
		} else {
			body = m.faculties.View()
		}
	}
	footer := headerStyle.Render("tab: switch view  q: quit")
	return header + "\n\n" + body + "\n" + footer
}
